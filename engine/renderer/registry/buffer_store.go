package registry

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// BufferAllocator creates GPU buffers. *wgpu.Device satisfies it.
type BufferAllocator interface {
	CreateBuffer(descriptor *wgpu.BufferDescriptor) (*wgpu.Buffer, error)
	CreateBufferInit(descriptor *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error)
}

// BufferStore is the named store of GPU buffers.
// Buffers are created in one of four modes: vertex, index, uniform with initial contents
// and empty uniform of a given size (for data overwritten every frame).
type BufferStore struct {
	*Store[*wgpu.Buffer]
	allocator BufferAllocator
}

// NewBufferStore creates an empty BufferStore backed by allocator.
//
// Parameters:
//   - allocator: the buffer allocator, normally the *wgpu.Device
//
// Returns:
//   - *BufferStore: the empty buffer store
func NewBufferStore(allocator BufferAllocator) *BufferStore {
	return &BufferStore{
		Store:     NewStore("Buffer", releaseBuffer),
		allocator: allocator,
	}
}

// CreateVertexBuffer creates an immutable vertex buffer initialized from contents.
//
// Parameters:
//   - label: the unique label for the buffer
//   - contents: the raw vertex bytes
//
// Returns:
//   - error: an error if the buffer could not be created
func (s *BufferStore) CreateVertexBuffer(label string, contents []byte) error {
	return s.createInit(label, contents, wgpu.BufferUsageVertex)
}

// CreateIndexBuffer creates an immutable index buffer initialized from contents.
//
// Parameters:
//   - label: the unique label for the buffer
//   - contents: the raw index bytes
//
// Returns:
//   - error: an error if the buffer could not be created
func (s *BufferStore) CreateIndexBuffer(label string, contents []byte) error {
	return s.createInit(label, contents, wgpu.BufferUsageIndex)
}

// CreateUniformBufferInit creates a uniform buffer initialized from contents.
// The buffer can be overwritten later through the queue.
//
// Parameters:
//   - label: the unique label for the buffer
//   - contents: the initial uniform bytes
//
// Returns:
//   - error: an error if the buffer could not be created
func (s *BufferStore) CreateUniformBufferInit(label string, contents []byte) error {
	return s.createInit(label, contents, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
}

// CreateUniformBuffer creates an uninitialized uniform buffer of size bytes, meant to be
// overwritten every frame.
//
// Parameters:
//   - label: the unique label for the buffer
//   - size: the buffer size in bytes
//
// Returns:
//   - error: an error if the buffer could not be created
func (s *BufferStore) CreateUniformBuffer(label string, size uint64) error {
	s.checkFree(label)
	buf, err := s.allocator.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer %q: %w", label, err)
	}
	s.Insert(label, buf)
	return nil
}

func (s *BufferStore) createInit(label string, contents []byte, usage wgpu.BufferUsage) error {
	s.checkFree(label)
	buf, err := s.allocator.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		return fmt.Errorf("create buffer %q: %w", label, err)
	}
	s.Insert(label, buf)
	return nil
}

func releaseBuffer(b *wgpu.Buffer) {
	if b != nil {
		b.Release()
	}
}
