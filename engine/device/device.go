package device

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoAdapter is returned when no GPU adapter compatible with the surface is available.
	ErrNoAdapter = errors.New("no compatible GPU adapter")
	// ErrNoDevice is returned when the adapter refuses to create a device.
	ErrNoDevice = errors.New("failed to acquire GPU device")
	// ErrNoSurfaceFormat is returned when the surface reports no supported formats for the adapter.
	ErrNoSurfaceFormat = errors.New("surface reports no supported formats")
	// ErrInvalidSize is returned when the initial surface size is not positive.
	ErrInvalidSize = errors.New("surface size must be positive")
)

// deviceContext is the implementation of the Context interface.
type deviceContext struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	target surfaceTarget
	config SurfaceConfig

	// Pre-creation config collected from builder options
	label                string
	presentMode          PresentMode
	forceFallbackAdapter bool
}

// Context owns the GPU device, its command queue and the presentation surface bound to a window.
// It is created once at startup and mutated only by Resize and SetPresentMode.
// A Context is not safe for concurrent use; it belongs to the thread running the frame loop.
type Context interface {
	// Device returns the GPU device.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue returns the device's command queue.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// Surface returns the presentation surface.
	//
	// Returns:
	//   - *wgpu.Surface: the surface
	Surface() *wgpu.Surface

	// Adapter returns the adapter the device was created from.
	//
	// Returns:
	//   - *wgpu.Adapter: the adapter
	Adapter() *wgpu.Adapter

	// Format returns the chosen swapchain pixel format.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format
	Format() wgpu.TextureFormat

	// Config returns a copy of the current surface configuration.
	//
	// Returns:
	//   - SurfaceConfig: the configuration last applied to the surface
	Config() SurfaceConfig

	// Resize reconfigures the surface for a new size. Requests with a zero or negative
	// dimension are ignored and the previous configuration stays valid; these occur
	// transiently while a window is minimized.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - bool: true if the surface was reconfigured
	Resize(width, height int) bool

	// SetPresentMode changes the present mode and reconfigures the surface at its current size.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release releases the surface, device, queue, adapter and instance.
	Release()
}

var _ Context = &deviceContext{}

// NewContext creates the WebGPU instance and a surface from the window's surface descriptor,
// then blocks while requesting an adapter compatible with that surface and a device from it.
// The surface is configured for render-attachment usage at the given size with the first
// sRGB format it supports.
//
// Failure to obtain an adapter or device is fatal to startup: the returned error wraps
// ErrNoAdapter or ErrNoDevice and every partially created resource is released.
//
// Parameters:
//   - sd: the platform surface descriptor for the window
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: functional options to configure the context
//
// Returns:
//   - Context: the configured device context
//   - error: an error if the context could not be created
func NewContext(sd *wgpu.SurfaceDescriptor, width, height int, options ...ContextBuilderOption) (_ Context, err error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	c := &deviceContext{
		label:       "Main Device",
		presentMode: PresentModeVSync,
	}
	for _, option := range options {
		option(c)
	}

	defer func() {
		if err != nil {
			c.Release()
		}
	}()

	c.instance = wgpu.CreateInstance(nil)
	c.surface = c.instance.CreateSurface(sd)

	c.adapter, err = c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: c.forceFallbackAdapter,
		CompatibleSurface:    c.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}

	c.device, err = c.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: c.label,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	c.queue = c.device.GetQueue()

	capabilities := c.surface.GetCapabilities(c.adapter)
	format, ok := ChooseFormat(capabilities.Formats)
	if !ok {
		return nil, ErrNoSurfaceFormat
	}
	alphaMode := wgpu.CompositeAlphaModeAuto
	if len(capabilities.AlphaModes) > 0 {
		alphaMode = capabilities.AlphaModes[0]
	}

	c.target = &wgpuSurfaceTarget{surface: c.surface, adapter: c.adapter, device: c.device}
	c.config = SurfaceConfig{
		Width:        uint32(width),
		Height:       uint32(height),
		Format:       format,
		PresentMode:  c.presentMode.wgpuPresentMode(),
		AlphaMode:    alphaMode,
		FrameLatency: DefaultFrameLatency,
	}
	c.target.Configure(c.config)

	slog.Info("device context ready",
		"format", format,
		"width", width,
		"height", height,
		"present_mode", c.config.PresentMode,
	)

	return c, nil
}

func (c *deviceContext) Device() *wgpu.Device {
	return c.device
}

func (c *deviceContext) Queue() *wgpu.Queue {
	return c.queue
}

func (c *deviceContext) Surface() *wgpu.Surface {
	return c.surface
}

func (c *deviceContext) Adapter() *wgpu.Adapter {
	return c.adapter
}

func (c *deviceContext) Format() wgpu.TextureFormat {
	return c.config.Format
}

func (c *deviceContext) Config() SurfaceConfig {
	return c.config
}

func (c *deviceContext) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.config.Width = uint32(width)
	c.config.Height = uint32(height)
	c.target.Configure(c.config)
	return true
}

func (c *deviceContext) SetPresentMode(mode PresentMode) {
	c.presentMode = mode
	c.config.PresentMode = mode.wgpuPresentMode()
	c.target.Configure(c.config)
}

func (c *deviceContext) Release() {
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}
