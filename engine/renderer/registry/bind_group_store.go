package registry

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupAllocator creates bind groups. *wgpu.Device satisfies it.
type BindGroupAllocator interface {
	CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)
}

// LayoutAllocator creates bind group layouts. *wgpu.Device satisfies it.
type LayoutAllocator interface {
	CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)
}

// BindGroupStore is the named store of bind groups.
// Layouts are not stored here: a layout is needed both to create bind groups and to build the
// pipeline that must agree with them, so the caller owns it and passes the same object to both.
type BindGroupStore struct {
	*Store[*wgpu.BindGroup]
	allocator BindGroupAllocator
}

// NewBindGroupStore creates an empty BindGroupStore backed by allocator.
//
// Parameters:
//   - allocator: the bind group allocator, normally the *wgpu.Device
//
// Returns:
//   - *BindGroupStore: the empty bind group store
func NewBindGroupStore(allocator BindGroupAllocator) *BindGroupStore {
	return &BindGroupStore{
		Store:     NewStore("Bind group", releaseBindGroup),
		allocator: allocator,
	}
}

// CreateBindGroup binds the whole of buffer at binding using layout and stores the result under label.
//
// Parameters:
//   - binding: the binding slot inside the group
//   - buffer: the buffer to bind
//   - label: the unique label for the bind group
//   - layout: the layout the bind group must satisfy
//
// Returns:
//   - error: an error if the bind group could not be created
func (s *BindGroupStore) CreateBindGroup(binding uint32, buffer *wgpu.Buffer, label string, layout *wgpu.BindGroupLayout) error {
	s.checkFree(label)
	bg, err := s.allocator.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: binding,
				Buffer:  buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group %q: %w", label, err)
	}
	s.Insert(label, bg)
	return nil
}

// NewUniformLayout creates a bind group layout with a single uniform buffer entry.
//
// Parameters:
//   - allocator: the layout allocator, normally the *wgpu.Device
//   - binding: the binding slot of the uniform
//   - label: the debug label for the layout
//   - visibility: the shader stages that read the uniform
//
// Returns:
//   - *wgpu.BindGroupLayout: the created layout
//   - error: an error if the layout could not be created
func NewUniformLayout(allocator LayoutAllocator, binding uint32, label string, visibility wgpu.ShaderStage) (*wgpu.BindGroupLayout, error) {
	layout, err := allocator.CreateBindGroupLayout(UniformLayoutDescriptor(binding, label, visibility))
	if err != nil {
		return nil, fmt.Errorf("create bind group layout %q: %w", label, err)
	}
	return layout, nil
}

// UniformLayoutDescriptor describes a bind group layout with a single uniform buffer entry.
//
// Parameters:
//   - binding: the binding slot of the uniform
//   - label: the debug label for the layout
//   - visibility: the shader stages that read the uniform
//
// Returns:
//   - *wgpu.BindGroupLayoutDescriptor: the layout descriptor
func UniformLayoutDescriptor(binding uint32, label string, visibility wgpu.ShaderStage) *wgpu.BindGroupLayoutDescriptor {
	return &wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    binding,
				Visibility: visibility,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   0,
				},
			},
		},
	}
}

func releaseBindGroup(bg *wgpu.BindGroup) {
	if bg != nil {
		bg.Release()
	}
}
