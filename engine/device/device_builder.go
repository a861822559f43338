package device

// ContextBuilderOption is a functional option applied to a device context during construction via NewContext.
type ContextBuilderOption func(*deviceContext)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - ContextBuilderOption: a function that applies the present mode option to a context
func WithPresentMode(mode PresentMode) ContextBuilderOption {
	return func(c *deviceContext) {
		c.presentMode = mode
	}
}

// WithForceFallbackAdapter forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - ContextBuilderOption: a function that applies the fallback adapter option to a context
func WithForceFallbackAdapter(force bool) ContextBuilderOption {
	return func(c *deviceContext) {
		c.forceFallbackAdapter = force
	}
}

// WithLabel sets the debug label of the requested device.
//
// Parameters:
//   - label: the device label
//
// Returns:
//   - ContextBuilderOption: a function that applies the label option to a context
func WithLabel(label string) ContextBuilderOption {
	return func(c *deviceContext) {
		if label != "" {
			c.label = label
		}
	}
}
