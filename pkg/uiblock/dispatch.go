package uiblock

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on
// the UI-owning thread. The embedding UI manager calls this once during
// initialization with its main-thread trampoline.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread. Returns false if
// no dispatch function is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// dispatchRegistered reports whether a dispatch function is installed.
func dispatchRegistered() bool {
	dispatchMu.RLock()
	defer dispatchMu.RUnlock()
	return dispatchFunc != nil
}
