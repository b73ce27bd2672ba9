package manager

import (
	"fmt"
	"sort"
	"sync"
)

// typeRegistry maps module names to node-type descriptors.
type typeRegistry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
}

var registry = &typeRegistry{
	descriptors: make(map[string]*Descriptor),
}

// Register builds a descriptor for m and registers it under its resolved
// module name. Called once per node type at process start; registering a
// name twice fails with ErrDuplicateModule.
func Register(m ViewManager) (*Descriptor, error) {
	desc, err := NewDescriptor(m)
	if err != nil {
		return nil, err
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.descriptors[desc.name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateModule, desc.name)
	}
	registry.descriptors[desc.name] = desc
	return desc, nil
}

// MustRegister is Register for package init blocks; it panics on error.
func MustRegister(m ViewManager) *Descriptor {
	desc, err := Register(m)
	if err != nil {
		panic(err)
	}
	return desc
}

// Lookup resolves a module name to its descriptor.
func Lookup(name string) (*Descriptor, bool) {
	registry.mu.RLock()
	desc, ok := registry.descriptors[name]
	registry.mu.RUnlock()
	return desc, ok
}

// Descriptors returns all registered descriptors, sorted by module name
// for a stable export order.
func Descriptors() []*Descriptor {
	registry.mu.RLock()
	all := make([]*Descriptor, 0, len(registry.descriptors))
	for _, desc := range registry.descriptors {
		all = append(all, desc)
	}
	registry.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].name < all[j].name })
	return all
}

// ResetForTest clears the node-type registry.
func ResetForTest() {
	registry.mu.Lock()
	registry.descriptors = make(map[string]*Descriptor)
	registry.mu.Unlock()
}
