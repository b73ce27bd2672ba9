package uiblock

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/go-drift/viewbridge/pkg/errors"
)

// batch is one flush cycle's worth of blocks, in enqueue order.
type batch struct {
	id     uuid.UUID
	blocks []*Block
}

func newBatch() *batch {
	return &batch{id: uuid.New()}
}

// FlushResult describes a dispatched batch.
type FlushResult struct {
	// BatchID identifies the batch across enqueue, drop, and flush logs.
	BatchID uuid.UUID
	// Blocks is the number of blocks handed to the UI thread.
	Blocks int
}

// Queue collects mutation blocks for the current cycle. Enqueue may be
// called from any worker goroutine; Flush closes the current batch and
// hands it to the UI thread, so a flush in progress never races blocks
// enqueued for the next cycle.
type Queue struct {
	mu      sync.Mutex
	current *batch
}

// NewQueue creates an empty queue with a fresh open batch.
func NewQueue() *Queue {
	return &Queue{current: newBatch()}
}

// Enqueue appends block to the current batch. A nil block is ignored,
// matching managers that have no native mutation for this cycle.
// Enqueuing a block that was already enqueued or invoked is an integrity
// failure: it is reported and the block is not queued again.
func (q *Queue) Enqueue(block *Block) {
	if block == nil {
		return
	}
	if err := block.markEnqueued(); err != nil {
		errors.Report(&errors.BridgeError{
			Op:         "uiblock.Enqueue",
			Kind:       errors.KindIntegrity,
			Err:        err,
			StackTrace: errors.CaptureStack(),
		})
		return
	}
	q.mu.Lock()
	q.current.blocks = append(q.current.blocks, block)
	q.mu.Unlock()
}

// Pending returns the number of blocks in the open batch.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.current.blocks)
}

// DropPending discards the entire open batch without invoking any of its
// blocks and opens a fresh batch. Called when layout is invalidated
// mid-cycle: the next cycle supersedes this one wholesale, since partial
// execution of a stale batch is not permitted. Returns the dropped batch
// ID and block count.
func (q *Queue) DropPending() (uuid.UUID, int) {
	q.mu.Lock()
	dropped := q.current
	q.current = newBatch()
	q.mu.Unlock()

	for _, block := range dropped.blocks {
		block.discard()
	}
	return dropped.id, len(dropped.blocks)
}

// Flush closes the current batch and schedules its blocks on the UI
// thread, in enqueue order, each resolving handles through views. The
// batch stays open if no dispatcher is registered, so no work is lost
// while the embedder is still initializing.
func (q *Queue) Flush(views *Registry) (FlushResult, error) {
	q.mu.Lock()
	if !dispatchRegistered() {
		id := q.current.id
		q.mu.Unlock()
		return FlushResult{BatchID: id}, ErrNoDispatcher
	}
	closed := q.current
	q.current = newBatch()
	q.mu.Unlock()

	result := FlushResult{BatchID: closed.id, Blocks: len(closed.blocks)}
	if len(closed.blocks) == 0 {
		return result, nil
	}

	Dispatch(func() {
		for _, block := range closed.blocks {
			if err := block.invoke(views); err != nil {
				errors.Report(&errors.BridgeError{
					Op:         "uiblock.Flush",
					Kind:       errors.KindIntegrity,
					Err:        fmt.Errorf("batch %s: %w", closed.id, err),
					StackTrace: errors.CaptureStack(),
				})
			}
		}
	})
	return result, nil
}
