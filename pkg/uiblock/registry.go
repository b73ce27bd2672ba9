package uiblock

import (
	"errors"
	"sync"
)

// Handle identifies a node in the view registries. Handles are assigned
// by the embedding UI manager when a tree node is created; the same
// handle keys both the shadow instance and the real instance.
type Handle int64

// Sentinel errors for registry and block operations.
var (
	// ErrDuplicateHandle is returned when inserting a handle that is already
	// registered. This is an integrity failure: handles must be unique.
	ErrDuplicateHandle = errors.New("uiblock: duplicate view handle")

	// ErrBlockReused is returned when a mutation block is enqueued or
	// invoked more than once.
	ErrBlockReused = errors.New("uiblock: mutation block reused")

	// ErrNoDispatcher is returned by Flush when no UI-thread dispatch
	// function has been registered.
	ErrNoDispatcher = errors.New("uiblock: no UI dispatcher registered")
)

// Registry maps handles to view instances. One registry holds shadow
// instances and is written from the layout context; a second holds real
// instances and is owned by the UI thread. The registry itself is
// goroutine-safe so blocks can resolve handles while teardown proceeds.
type Registry struct {
	mu    sync.RWMutex
	views map[Handle]any
}

// NewRegistry creates an empty view registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[Handle]any)}
}

// Insert registers view under handle. Inserting a handle that is already
// present fails with ErrDuplicateHandle and leaves the registry unchanged.
func (r *Registry) Insert(handle Handle, view any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.views[handle]; exists {
		return ErrDuplicateHandle
	}
	r.views[handle] = view
	return nil
}

// Remove deletes the view registered under handle, if any. Removing an
// absent handle is a no-op; a block targeting it later resolves to gone.
func (r *Registry) Remove(handle Handle) {
	r.mu.Lock()
	delete(r.views, handle)
	r.mu.Unlock()
}

// Lookup resolves a handle to its view instance. The second result is
// false when the node has been torn down or never existed.
func (r *Registry) Lookup(handle Handle) (any, bool) {
	r.mu.RLock()
	view, ok := r.views[handle]
	r.mu.RUnlock()
	return view, ok
}

// Len returns the number of registered views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Snapshot returns a copy of the current handle-to-view mapping.
func (r *Registry) Snapshot() map[Handle]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	copied := make(map[Handle]any, len(r.views))
	for handle, view := range r.views {
		copied[handle] = view
	}
	return copied
}
