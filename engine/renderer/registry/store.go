package registry

import (
	"fmt"
	"log/slog"
	"slices"
)

// Store is a name-keyed container of GPU resources of one kind.
// Labels are assigned when a resource is inserted and are never reused for the lifetime
// of the store. Looking up an unknown label is a wiring bug, not a runtime condition,
// so Get panics with a message naming the label instead of returning an error.
//
// A Store is not safe for concurrent use: resources are created at startup and read
// from the render thread only.
type Store[T any] struct {
	// kind names the resource type in diagnostics ("Buffer", "Bind group").
	kind      string
	resources map[string]T
	order     []string
	retired   map[string]struct{}
	release   func(T)
}

// NewStore creates an empty Store.
//
// Parameters:
//   - kind: human readable resource kind used in diagnostics
//   - release: called for every resource by Release (nil to skip)
//
// Returns:
//   - *Store[T]: the empty store
func NewStore[T any](kind string, release func(T)) *Store[T] {
	return &Store[T]{
		kind:      kind,
		resources: make(map[string]T),
		retired:   make(map[string]struct{}),
		release:   release,
	}
}

// Insert stores resource under label. Panics if label is already in use.
//
// Parameters:
//   - label: the unique label
//   - resource: the resource handle
func (s *Store[T]) Insert(label string, resource T) {
	s.checkFree(label)
	s.resources[label] = resource
	s.order = append(s.order, label)
}

// Get returns the resource stored under label.
// Panics with a message naming label if it was never registered.
//
// Parameters:
//   - label: the label to look up
//
// Returns:
//   - T: the exact handle inserted under label
func (s *Store[T]) Get(label string) T {
	if r, ok := s.resources[label]; ok {
		return r
	}
	slog.Error(s.kind+" name not recognized", "label", label)
	panic(fmt.Sprintf("%s name not recognized: %s.", s.kind, label))
}

// checkFree panics if label is registered or was released.
func (s *Store[T]) checkFree(label string) {
	if _, ok := s.resources[label]; ok {
		slog.Error(s.kind+" name already registered", "label", label)
		panic(fmt.Sprintf("%s name already registered: %s.", s.kind, label))
	}
	if _, ok := s.retired[label]; ok {
		slog.Error(s.kind+" name already released", "label", label)
		panic(fmt.Sprintf("%s name already released: %s.", s.kind, label))
	}
}

// Has reports whether label is registered.
func (s *Store[T]) Has(label string) bool {
	_, ok := s.resources[label]
	return ok
}

// Labels returns the registered labels in insertion order.
func (s *Store[T]) Labels() []string {
	return slices.Clone(s.order)
}

// Len returns the number of registered resources.
func (s *Store[T]) Len() int {
	return len(s.resources)
}

// Release releases every resource in reverse insertion order and empties the store.
// Released labels stay retired: inserting one again panics.
func (s *Store[T]) Release() {
	for i := len(s.order) - 1; i >= 0; i-- {
		label := s.order[i]
		if s.release != nil {
			s.release(s.resources[label])
		}
		delete(s.resources, label)
		s.retired[label] = struct{}{}
	}
	s.order = nil
}
