package manager

import (
	"errors"
	"fmt"

	"github.com/go-drift/viewbridge/pkg/convert"
)

// Sentinel errors for property application.
var (
	// ErrUnknownProp indicates the declarative input named a property with
	// no resolvable setter. Non-fatal: the caller logs it and skips the
	// property, since a stale declarative tree must not crash the UI.
	ErrUnknownProp = errors.New("manager: unknown property")

	// ErrTypeMismatch indicates a value could not be converted to the
	// setter's declared type. The prior value is retained.
	ErrTypeMismatch = errors.New("manager: property type mismatch")

	// ErrBadTarget indicates the target instance is not the concrete type
	// the setter table was built for. This is a pairing bug, not bad input.
	ErrBadTarget = errors.New("manager: wrong target type for property")
)

// PropSpec binds one property name to a typed setter, the converter for
// raw scripting-runtime values, and a getter used to capture the default
// snapshot. Build specs with Prop or the typed helpers.
type PropSpec struct {
	// Name is the declarative property name.
	Name string

	convert func(raw any) (any, bool)
	set     func(target, value any) error
	get     func(target any) (any, bool)
}

// Prop builds a PropSpec for views of concrete type T and values of type V.
// conv converts the raw untyped value; nil means a plain type assertion.
// get reads the property off an instance and is required for default
// restoration; set writes it.
func Prop[T, V any](name string, conv func(any) (V, bool), get func(T) V, set func(T, V)) PropSpec {
	if name == "" {
		panic("manager: property name must not be empty")
	}
	if set == nil {
		panic(fmt.Sprintf("manager: property %q has no setter", name))
	}
	return PropSpec{
		Name: name,
		convert: func(raw any) (any, bool) {
			if conv == nil {
				v, ok := raw.(V)
				return v, ok
			}
			return conv(raw)
		},
		set: func(target, value any) error {
			view, ok := target.(T)
			if !ok {
				return fmt.Errorf("%w: %q on %T", ErrBadTarget, name, target)
			}
			v, ok := value.(V)
			if !ok {
				return fmt.Errorf("%w: %q", ErrTypeMismatch, name)
			}
			set(view, v)
			return nil
		},
		get: func(target any) (any, bool) {
			view, ok := target.(T)
			if !ok || get == nil {
				return nil, false
			}
			return get(view), true
		},
	}
}

// BoolProp builds a boolean property spec.
func BoolProp[T any](name string, get func(T) bool, set func(T, bool)) PropSpec {
	return Prop(name, convert.Bool, get, set)
}

// IntProp builds an integer property spec.
func IntProp[T any](name string, get func(T) int, set func(T, int)) PropSpec {
	return Prop(name, convert.Int, get, set)
}

// Float64Prop builds a float64 property spec.
func Float64Prop[T any](name string, get func(T) float64, set func(T, float64)) PropSpec {
	return Prop(name, convert.Float64, get, set)
}

// StringProp builds a string property spec.
func StringProp[T any](name string, get func(T) string, set func(T, string)) PropSpec {
	return Prop(name, convert.String, get, set)
}

// ColorProp builds a packed-ARGB color property spec. Raw values may be
// numeric, "#RRGGBB"/"#AARRGGBB", or a named color.
func ColorProp[T any](name string, get func(T) uint32, set func(T, uint32)) PropSpec {
	return Prop(name, convert.Color, get, set)
}

// MapProp builds a property spec for nested object values.
func MapProp[T any](name string, get func(T) map[string]any, set func(T, map[string]any)) PropSpec {
	return Prop(name, convert.Map, get, set)
}

// PropRegistry is a node type's explicit setter table, built once at
// registration. Lookup is by property name; there is no name-pattern
// matching at apply time.
type PropRegistry struct {
	specs   map[string]PropSpec
	ignored map[string]struct{}
}

// NewProps creates an empty setter table.
func NewProps() *PropRegistry {
	return &PropRegistry{
		specs:   make(map[string]PropSpec),
		ignored: make(map[string]struct{}),
	}
}

// Register adds specs to the table and returns the registry for chaining.
// Registering the same name twice replaces the earlier spec.
func (p *PropRegistry) Register(specs ...PropSpec) *PropRegistry {
	for _, spec := range specs {
		p.specs[spec.Name] = spec
	}
	return p
}

// Ignore marks property names as documented no-ops for this node type.
// An ignored name shadows any setter registered for it, including setters
// copied in from a shared base table.
func (p *PropRegistry) Ignore(names ...string) *PropRegistry {
	for _, name := range names {
		p.ignored[name] = struct{}{}
	}
	return p
}

// Extend copies every spec and ignore mark from base into a new registry.
// Node types that share a common set of properties start from a base
// table and add their own; the copy keeps the tables independent.
func (p *PropRegistry) Extend() *PropRegistry {
	next := NewProps()
	for name, spec := range p.specs {
		next.specs[name] = spec
	}
	for name := range p.ignored {
		next.ignored[name] = struct{}{}
	}
	return next
}

// Has reports whether name resolves to a setter and is not ignored.
func (p *PropRegistry) Has(name string) bool {
	if _, ignored := p.ignored[name]; ignored {
		return false
	}
	_, ok := p.specs[name]
	return ok
}

// Names returns the registered, non-ignored property names.
func (p *PropRegistry) Names() []string {
	names := make([]string, 0, len(p.specs))
	for name := range p.specs {
		if _, ignored := p.ignored[name]; ignored {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Apply applies one property to target. If present is true, value is
// converted and set; otherwise the captured default from defaults is
// restored, returning the instance to its as-constructed state. Exactly
// one setter invocation happens on success; a failed call invokes none.
func (p *PropRegistry) Apply(name string, value any, present bool, target any, defaults map[string]any) error {
	if _, ignored := p.ignored[name]; ignored {
		return nil
	}
	spec, ok := p.specs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProp, name)
	}
	if present {
		converted, ok := spec.convert(value)
		if !ok {
			return fmt.Errorf("%w: %q got %T", ErrTypeMismatch, name, value)
		}
		return spec.set(target, converted)
	}
	def, ok := defaults[name]
	if !ok {
		return nil // no snapshot entry; nothing to restore
	}
	return spec.set(target, def)
}

// snapshotDefaults reads every gettable property off a pristine instance.
// Called once per node type at registration, before any property has been
// applied; the result is the type's default-value snapshot.
func (p *PropRegistry) snapshotDefaults(pristine any) map[string]any {
	defaults := make(map[string]any, len(p.specs))
	for name, spec := range p.specs {
		if value, ok := spec.get(pristine); ok {
			defaults[name] = value
		}
	}
	return defaults
}
