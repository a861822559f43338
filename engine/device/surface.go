package device

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing. Always supported.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a config string ("vsync", "uncapped") to a PresentMode.
// Unknown values fall back to PresentModeVSync.
//
// Parameters:
//   - s: the present mode name
//
// Returns:
//   - PresentMode: the parsed mode
func ParsePresentMode(s string) PresentMode {
	switch s {
	case "uncapped", "immediate":
		return PresentModeUncapped
	default:
		return PresentModeVSync
	}
}

// wgpuPresentMode converts the engine PresentMode into the wgpu present mode.
func (m PresentMode) wgpuPresentMode() wgpu.PresentMode {
	switch m {
	case PresentModeUncapped:
		return wgpu.PresentModeImmediate
	default:
		return wgpu.PresentModeFifo
	}
}

// DefaultFrameLatency is the presentation-latency budget, in frames, requested for the surface.
const DefaultFrameLatency = 2

// SurfaceConfig is the current presentation surface configuration.
type SurfaceConfig struct {
	Width, Height uint32
	Format        wgpu.TextureFormat
	PresentMode   wgpu.PresentMode
	AlphaMode     wgpu.CompositeAlphaMode

	// FrameLatency is the maximum number of frames queued for presentation.
	// Recorded for diagnostics; the wgpu binding applies its own default.
	FrameLatency uint32
}

// surfaceTarget applies a SurfaceConfig to a presentation surface.
type surfaceTarget interface {
	Configure(cfg SurfaceConfig)
}

// wgpuSurfaceTarget configures a wgpu.Surface for render-attachment usage.
type wgpuSurfaceTarget struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
}

func (s *wgpuSurfaceTarget) Configure(cfg SurfaceConfig) {
	s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      cfg.Format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: cfg.PresentMode,
		AlphaMode:   cfg.AlphaMode,
	})
}

// ChooseFormat selects the swapchain pixel format: the first sRGB format the surface supports,
// falling back to the first supported format.
//
// Parameters:
//   - formats: the formats reported by the surface capabilities, in preference order
//
// Returns:
//   - wgpu.TextureFormat: the chosen format
//   - bool: false if formats is empty
func ChooseFormat(formats []wgpu.TextureFormat) (wgpu.TextureFormat, bool) {
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined, false
	}
	for _, f := range formats {
		if IsSrgb(f) {
			return f, true
		}
	}
	return formats[0], true
}

// IsSrgb reports whether the format stores color in the sRGB transfer function.
func IsSrgb(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}
