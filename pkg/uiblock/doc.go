// Package uiblock carries mutations from the layout context to the
// UI-owning thread. Property application and layout run on worker
// goroutines against shadow views; the resulting changes to real native
// views are described as single-use mutation blocks, batched in enqueue
// order, and invoked on the UI thread once layout has stabilized.
//
// Enqueue is the only cross-context handoff point. A batch is closed
// before its blocks run, so enqueues that arrive mid-flush open the next
// batch rather than racing the current one.
package uiblock
