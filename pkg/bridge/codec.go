// Package bridge is the surface between the view-manager layer and the
// scripting runtime: it exports each registered node type's module
// config (name, constants, event descriptors) at attach time and sends
// view events back through the runtime's registration names.
package bridge

import (
	"encoding/json"
	"errors"
)

// MessageCodec encodes and decodes messages crossing the scripting bridge.
type MessageCodec interface {
	// Encode converts a Go value to bytes for transmission to the runtime.
	Encode(value any) ([]byte, error)

	// Decode converts bytes received from the runtime to a Go value.
	Decode(data []byte) (any, error)
}

// JsonCodec implements MessageCodec using JSON encoding. JSON prioritizes
// interoperability with scripting runtimes over compactness.
type JsonCodec struct{}

// Encode serializes the value to JSON bytes.
func (c JsonCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode deserializes JSON bytes to a Go value.
func (c JsonCodec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DefaultCodec is the codec used by the bridge.
var DefaultCodec MessageCodec = JsonCodec{}

// Sentinel errors for bridge operations.
var (
	// ErrBridgeUnavailable indicates no scripting runtime is attached.
	ErrBridgeUnavailable = errors.New("bridge: scripting runtime not attached")

	// ErrUnknownEvent indicates an event name the node type never declared.
	ErrUnknownEvent = errors.New("bridge: unknown event for node type")

	// ErrUnknownModule indicates an unregistered node-type module name.
	ErrUnknownModule = errors.New("bridge: unknown module")

	// ErrIncompatibleRuntime indicates the runtime's protocol version
	// failed the handshake.
	ErrIncompatibleRuntime = errors.New("bridge: incompatible runtime protocol version")
)
