package manager

import (
	goerrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-drift/viewbridge/pkg/errors"
	"github.com/go-drift/viewbridge/pkg/uiblock"
)

// Sentinel errors for node-type registration and factory integrity.
var (
	// ErrDuplicateModule indicates two node types resolved to the same
	// module name.
	ErrDuplicateModule = goerrors.New("manager: duplicate module name")

	// ErrInstanceReused indicates a factory returned an instance it had
	// already handed out. Fatal: the default-snapshot and registry
	// bookkeeping invariants both assume pristine, unique instances.
	ErrInstanceReused = goerrors.New("manager: factory returned a reused instance")

	// ErrNilInstance indicates a factory returned nil.
	ErrNilInstance = goerrors.New("manager: factory returned nil")
)

// ViewManager is the per-node-type contract. Concrete node types embed
// BaseViewManager for the generic shadow view and empty metadata, and
// declare their own factories, setter table, events, and constants.
//
// CreateView and CreateShadowView must return a fresh instance on every
// call and never cache or reuse one. Events and Constants are complete
// declarations for the concrete type; nothing is inherited or merged.
type ViewManager interface {
	// CreateView returns a new real (renderable) view instance.
	CreateView() any

	// CreateShadowView returns a new layout-only shadow instance.
	CreateShadowView() any

	// Props returns the node type's property setter table.
	Props() *PropRegistry

	// Events declares the custom events this node type may emit.
	Events() EventSet

	// Constants declares static configuration exported to the scripting
	// runtime at module-registration time.
	Constants() map[string]any

	// UIBlockForPendingChanges produces a deferred mutation block for
	// native changes accumulated on this cycle's shadow views, or nil if
	// no native mutation is needed. shadow is the shadow-view registry as
	// it stands after layout.
	UIBlockForPendingChanges(shadow *uiblock.Registry) *uiblock.Block
}

// ModuleNamer optionally overrides the module name a node type registers
// under. Without it the name is derived from the manager's type name.
type ModuleNamer interface {
	ModuleName() string
}

// BaseViewManager supplies the defaults of the ViewManager contract:
// a generic shadow view, no events, no constants, no mutation block.
// Embed it and override what the node type needs. An overriding Events
// or Constants replaces the declaration completely.
type BaseViewManager struct{}

// CreateShadowView returns a generic shadow view, sufficient for
// layout-only bookkeeping.
func (BaseViewManager) CreateShadowView() any { return NewShadowView() }

// Events declares no custom events.
func (BaseViewManager) Events() EventSet { return EventSet{} }

// Constants declares no constants.
func (BaseViewManager) Constants() map[string]any { return nil }

// UIBlockForPendingChanges produces no mutation block.
func (BaseViewManager) UIBlockForPendingChanges(*uiblock.Registry) *uiblock.Block { return nil }

// DeriveModuleName resolves the module name for a manager: its
// ModuleName override if non-empty, otherwise the manager's type name
// with a trailing "Manager" stripped (ToggleManager registers as
// "Toggle").
func DeriveModuleName(m ViewManager) string {
	if namer, ok := m.(ModuleNamer); ok {
		if name := namer.ModuleName(); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if trimmed := strings.TrimSuffix(name, "Manager"); trimmed != "" {
		return trimmed
	}
	return name
}

// Descriptor is the immutable registration record for one node type:
// resolved module name, setter table, default snapshot, validated events,
// and constants. Built once by Register; one instance per node type for
// the process lifetime.
type Descriptor struct {
	name      string
	manager   ViewManager
	props     *PropRegistry
	defaults  map[string]any
	events    EventSet
	constants map[string]any

	mu         sync.Mutex
	lastView   any
	lastShadow any
}

// NewDescriptor builds a descriptor for m without registering it.
// The default-value snapshot is captured here, from the first instance
// the factory ever produces, before any property is applied; it is never
// recomputed from a mutated instance.
func NewDescriptor(m ViewManager) (*Descriptor, error) {
	name := DeriveModuleName(m)
	events := m.Events()
	if err := events.validate(); err != nil {
		return nil, fmt.Errorf("module %q: %w", name, err)
	}
	props := m.Props()
	if props == nil {
		props = NewProps()
	}
	pristine := m.CreateView()
	if pristine == nil {
		return nil, fmt.Errorf("module %q: %w", name, ErrNilInstance)
	}
	pristineShadow := m.CreateShadowView()
	if pristineShadow == nil {
		return nil, fmt.Errorf("module %q: %w", name, ErrNilInstance)
	}
	// Setters target either the real or the shadow type; snapshot both
	// pristine instances so every property gets its default captured.
	defaults := props.snapshotDefaults(pristine)
	for propName, value := range props.snapshotDefaults(pristineShadow) {
		defaults[propName] = value
	}
	return &Descriptor{
		name:       name,
		manager:    m,
		props:      props,
		defaults:   defaults,
		events:     events,
		constants:  m.Constants(),
		lastView:   pristine,
		lastShadow: pristineShadow,
	}, nil
}

// Name returns the resolved module name.
func (d *Descriptor) Name() string { return d.name }

// Props returns the node type's setter table.
func (d *Descriptor) Props() *PropRegistry { return d.props }

// Events returns the node type's declared event set.
func (d *Descriptor) Events() EventSet { return d.events }

// Constants returns the node type's declared constants.
func (d *Descriptor) Constants() map[string]any { return d.constants }

// Defaults returns the default-value snapshot captured at registration.
func (d *Descriptor) Defaults() map[string]any { return d.defaults }

// CreateView produces a fresh real-view instance. Returning an instance
// that was already handed out breaks the snapshot and handle-uniqueness
// invariants, so it fails with ErrInstanceReused.
func (d *Descriptor) CreateView() (any, error) {
	view := d.manager.CreateView()
	if err := d.checkFresh(&d.lastView, view); err != nil {
		return nil, err
	}
	return view, nil
}

// CreateShadowView produces a fresh shadow-view instance, subject to the
// same freshness check as CreateView.
func (d *Descriptor) CreateShadowView() (any, error) {
	shadow := d.manager.CreateShadowView()
	if err := d.checkFresh(&d.lastShadow, shadow); err != nil {
		return nil, err
	}
	return shadow, nil
}

// UIBlockForPendingChanges delegates to the manager.
func (d *Descriptor) UIBlockForPendingChanges(shadow *uiblock.Registry) *uiblock.Block {
	return d.manager.UIBlockForPendingChanges(shadow)
}

// checkFresh rejects a nil instance or one identical to the previous
// instance this factory produced. Comparing against the last instance is
// a cheap guard that catches the common caching bug without tracking
// every instance ever created.
func (d *Descriptor) checkFresh(last *any, instance any) error {
	if instance == nil {
		err := fmt.Errorf("module %q: %w", d.name, ErrNilInstance)
		d.reportIntegrity(err)
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if samePointer(*last, instance) {
		err := fmt.Errorf("module %q: %w", d.name, ErrInstanceReused)
		d.reportIntegrity(err)
		return err
	}
	*last = instance
	return nil
}

func (d *Descriptor) reportIntegrity(err error) {
	errors.Report(&errors.BridgeError{
		Op:         "manager.Descriptor",
		Kind:       errors.KindIntegrity,
		Module:     d.name,
		Err:        err,
		StackTrace: errors.CaptureStack(),
	})
}

// samePointer reports whether a and b are the same pointer. Non-pointer
// instances are never considered identical.
func samePointer(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Pointer || vb.Kind() != reflect.Pointer {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

// ApplyProp applies one property to target. present=false restores the
// captured default, returning the instance to its as-constructed state.
func (d *Descriptor) ApplyProp(name string, value any, present bool, target any) error {
	return d.props.Apply(name, value, present, target, d.defaults)
}

// ApplyProps applies a declarative property batch to target. A nil value
// means the property was removed from the declarative description and its
// default is restored. Each property is applied independently: unknown or
// mismatched properties are reported and skipped, and the rest of the
// batch proceeds.
func (d *Descriptor) ApplyProps(props map[string]any, target any) {
	for name, value := range props {
		err := d.ApplyProp(name, value, value != nil, target)
		if err == nil {
			continue
		}
		kind := errors.KindProperty
		if goerrors.Is(err, ErrTypeMismatch) {
			kind = errors.KindConvert
		}
		errors.Report(&errors.BridgeError{
			Op:     "manager.ApplyProps",
			Kind:   kind,
			Module: d.name,
			Err:    err,
		})
	}
}
