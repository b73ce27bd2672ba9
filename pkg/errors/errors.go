// Package errors provides structured error handling for the viewbridge layer.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindProperty indicates a declarative property could not be applied.
	KindProperty
	// KindConvert indicates a value conversion failure.
	KindConvert
	// KindRegistry indicates a view or node-type registry error.
	KindRegistry
	// KindDispatch indicates a UI-thread dispatch error.
	KindDispatch
	// KindBridge indicates a scripting-runtime bridge error.
	KindBridge
	// KindIntegrity indicates a broken internal invariant (duplicate handle,
	// reused mutation block). These are programming errors, not bad input.
	KindIntegrity
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindConvert:
		return "convert"
	case KindRegistry:
		return "registry"
	case KindDispatch:
		return "dispatch"
	case KindBridge:
		return "bridge"
	case KindIntegrity:
		return "integrity"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BridgeError represents a structured error in the viewbridge layer.
type BridgeError struct {
	// Op is the operation that failed (e.g., "manager.ApplyProps").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Module is the node-type module name, if applicable.
	Module string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BridgeError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("%s [%s] module=%s: %v", e.Op, e.Kind, e.Module, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "uiblock.Flush").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the viewbridge layer.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BridgeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
