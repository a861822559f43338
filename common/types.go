// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// NewTextureStagingData copies an RGBA image into tightly packed staging data.
// Row padding from sub-images (Stride larger than 4*width) is removed.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - TextureStagingData: the packed pixel data with its dimensions
func NewTextureStagingData(img *image.RGBA) TextureStagingData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(pixels[y*w*4:], src)
	}
	return TextureStagingData{Pixels: pixels, Width: uint32(w), Height: uint32(h)}
}

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
// Zero values are replaced with engine defaults when the sampler is created.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// Descriptor builds a wgpu.SamplerDescriptor, filling unset fields with defaults
// (clamp-to-edge addressing, linear filtering, LOD 0..32, anisotropy 1). An enum member
// whose value is zero therefore cannot be selected through this type.
//
// Parameters:
//   - label: the debug label for the sampler
//
// Returns:
//   - *wgpu.SamplerDescriptor: the descriptor ready for Device.CreateSampler
func (s SamplerStagingData) Descriptor(label string) *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  Coalesce(s.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  Coalesce(s.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  Coalesce(s.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   Coalesce(s.LodMinClamp, 0.0),
		LodMaxClamp:   Coalesce(s.LodMaxClamp, 32.0),
		MaxAnisotropy: Coalesce(s.MaxAnisotropy, 1),
	}
}
