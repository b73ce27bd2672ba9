package bridge

import (
	"fmt"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/go-drift/viewbridge/pkg/errors"
	"github.com/go-drift/viewbridge/pkg/manager"
	"github.com/go-drift/viewbridge/pkg/uiblock"
)

// ProtocolVersion is the version of the module-export and event wire
// contract this library implements.
const ProtocolVersion = "v1.2.0"

// ScriptingBridge is the transport to the scripting runtime. The embedder
// provides an implementation backed by whatever serialization channel it
// uses; this layer only hands it encoded payloads.
type ScriptingBridge interface {
	// RegisterModule delivers one node type's module config to the runtime.
	RegisterModule(name string, config []byte) error

	// EmitEvent delivers an event payload under a registration name.
	EmitEvent(registrationName string, payload []byte) error
}

// Bridge ties the node-type registry to an attached scripting runtime.
type Bridge struct {
	mu      sync.RWMutex
	runtime ScriptingBridge
	min     string
}

// New creates a bridge with the given minimum accepted runtime protocol
// version. cfg may be nil for defaults.
func New(cfg *Config) *Bridge {
	min := ProtocolVersion
	if cfg != nil && cfg.Protocol.MinVersion != "" {
		min = cfg.Protocol.MinVersion
	}
	return &Bridge{min: min}
}

// Handshake validates a runtime's protocol version: it must be valid
// semver, share this library's major version, and be at least the
// configured minimum.
func (b *Bridge) Handshake(runtimeVersion string) error {
	if !semver.IsValid(runtimeVersion) {
		return fmt.Errorf("%w: %q is not valid semver", ErrIncompatibleRuntime, runtimeVersion)
	}
	if semver.Major(runtimeVersion) != semver.Major(ProtocolVersion) {
		return fmt.Errorf("%w: runtime %s, library %s", ErrIncompatibleRuntime, runtimeVersion, ProtocolVersion)
	}
	if semver.Compare(runtimeVersion, b.min) < 0 {
		return fmt.Errorf("%w: runtime %s below minimum %s", ErrIncompatibleRuntime, runtimeVersion, b.min)
	}
	return nil
}

// Attach performs the version handshake and exports every registered
// node type's module config to the runtime. Attach replaces any
// previously attached runtime.
func (b *Bridge) Attach(runtime ScriptingBridge, runtimeVersion string) error {
	if err := b.Handshake(runtimeVersion); err != nil {
		return err
	}
	for _, desc := range manager.Descriptors() {
		if err := b.exportModule(runtime, desc); err != nil {
			return err
		}
	}
	b.mu.Lock()
	b.runtime = runtime
	b.mu.Unlock()
	return nil
}

// ExportModule delivers one descriptor's module config to the attached
// runtime. Used for node types registered after Attach.
func (b *Bridge) ExportModule(desc *manager.Descriptor) error {
	b.mu.RLock()
	runtime := b.runtime
	b.mu.RUnlock()
	if runtime == nil {
		return ErrBridgeUnavailable
	}
	return b.exportModule(runtime, desc)
}

func (b *Bridge) exportModule(runtime ScriptingBridge, desc *manager.Descriptor) error {
	data, err := DefaultCodec.Encode(ModuleConfig(desc))
	if err != nil {
		return fmt.Errorf("bridge: encoding module %q: %w", desc.Name(), err)
	}
	if err := runtime.RegisterModule(desc.Name(), data); err != nil {
		return fmt.Errorf("bridge: registering module %q: %w", desc.Name(), err)
	}
	return nil
}

// DispatchEvent sends a named event for a node to the runtime. The event
// name is resolved to the node type's registration name; an undeclared
// event is reported and dropped rather than crashing the batch.
func (b *Bridge) DispatchEvent(module string, target uiblock.Handle, event string, payload map[string]any) error {
	b.mu.RLock()
	runtime := b.runtime
	b.mu.RUnlock()
	if runtime == nil {
		return ErrBridgeUnavailable
	}
	desc, ok := manager.Lookup(module)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModule, module)
	}
	registration, ok := desc.Events().RegistrationName(event)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownEvent, event)
		errors.Report(&errors.BridgeError{
			Op:     "bridge.DispatchEvent",
			Kind:   errors.KindBridge,
			Module: module,
			Err:    err,
		})
		return err
	}
	body := map[string]any{
		"target":  int64(target),
		"event":   registration,
		"payload": payload,
	}
	data, err := DefaultCodec.Encode(body)
	if err != nil {
		return fmt.Errorf("bridge: encoding event %q: %w", event, err)
	}
	return runtime.EmitEvent(registration, data)
}

// ModuleConfig builds the JS-facing export for one node type, consumed
// once at module-registration time:
//
//	{
//	  "moduleName": "Toggle",
//	  "constants": {...},
//	  "bubblingEventTypes": {"onChange": {"phasedRegistrationNames":
//	      {"bubbled": "onChange", "captured": "onChangeCapture"}}},
//	  "directEventTypes": {"onToggle": {"registrationName": "onToggle"}}
//	}
func ModuleConfig(desc *manager.Descriptor) map[string]any {
	events := desc.Events()
	bubbling := make(map[string]any, len(events.Bubbling))
	for _, e := range events.Bubbling {
		bubbling[e.Name] = map[string]any{
			"phasedRegistrationNames": map[string]any{
				"bubbled":  e.Bubbled,
				"captured": e.Captured,
			},
		}
	}
	direct := make(map[string]any, len(events.Direct))
	for _, e := range events.Direct {
		direct[e.Name] = map[string]any{
			"registrationName": e.RegistrationName,
		}
	}
	config := map[string]any{
		"moduleName":         desc.Name(),
		"bubblingEventTypes": bubbling,
		"directEventTypes":   direct,
	}
	if constants := desc.Constants(); len(constants) > 0 {
		config["constants"] = constants
	}
	return config
}
