package uiblock

import (
	"sync/atomic"

	"github.com/go-drift/viewbridge/pkg/errors"
)

// Block states. A block moves strictly forward: created, enqueued,
// invoked, discarded. No retries, no re-entry.
const (
	stateCreated int32 = iota
	stateEnqueued
	stateInvoked
	stateDiscarded
)

// Mutation is a single command against one node: a target handle and the
// change to apply once the handle resolves to a live real view. The Apply
// closure must capture plain data describing the change, never a view
// instance; real views are resolved through the registry on the UI thread.
type Mutation struct {
	// Target is the handle of the node to mutate.
	Target Handle
	// Apply performs the change against the resolved real view.
	Apply func(view any)
}

// Block is a single-use unit of deferred mutation work. It is produced in
// the layout context while a node's properties are applied, enqueued on a
// Queue, and invoked exactly once on the UI thread with the finalized
// real-view registry.
type Block struct {
	mutations []Mutation
	state     atomic.Int32
}

// NewBlock creates a block from an ordered list of mutations.
func NewBlock(mutations ...Mutation) *Block {
	return &Block{mutations: mutations}
}

// markEnqueued transitions the block from created to enqueued.
func (b *Block) markEnqueued() error {
	if !b.state.CompareAndSwap(stateCreated, stateEnqueued) {
		return ErrBlockReused
	}
	return nil
}

// invoke runs the block's mutations against views, in order. Targets no
// longer present in the registry are skipped: teardown racing a batch is
// expected and must not fail the rest of the batch. A block that has
// already run is an integrity failure and does nothing.
func (b *Block) invoke(views *Registry) error {
	if !b.state.CompareAndSwap(stateEnqueued, stateInvoked) {
		return ErrBlockReused
	}
	defer b.state.Store(stateDiscarded)
	defer errors.Recover("uiblock.Block.invoke")

	for _, m := range b.mutations {
		view, ok := views.Lookup(m.Target)
		if !ok {
			continue // node torn down before invocation
		}
		if m.Apply != nil {
			m.Apply(view)
		}
	}
	return nil
}

// discard marks a never-invoked block as dead. Used when a whole batch is
// dropped after layout invalidation.
func (b *Block) discard() {
	b.state.Store(stateDiscarded)
}
