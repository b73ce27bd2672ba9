package manager

import (
	"errors"
	"fmt"
)

// ErrDuplicateEvent indicates a node type declared two events, or two
// registration names, with the same string. Caught at registration.
var ErrDuplicateEvent = errors.New("manager: duplicate event name")

// BubblingEvent is an event that propagates through the tree. It has two
// JS-facing registration names, one per phase.
type BubblingEvent struct {
	// Name is the event name used for dispatch lookup.
	Name string
	// Bubbled is the bubble-phase registration name.
	Bubbled string
	// Captured is the capture-phase registration name.
	Captured string
}

// DirectEvent is dispatched only to its target node. It has exactly one
// registration name.
type DirectEvent struct {
	// Name is the event name used for dispatch lookup.
	Name string
	// RegistrationName is the JS-facing registration name.
	RegistrationName string
}

// Bubbling declares a bubbling event with conventional registration names:
// the event name for the bubble phase, name+"Capture" for the capture phase.
func Bubbling(name string) BubblingEvent {
	return BubblingEvent{Name: name, Bubbled: name, Captured: name + "Capture"}
}

// Direct declares a direct event registered under its own name.
func Direct(name string) DirectEvent {
	return DirectEvent{Name: name, RegistrationName: name}
}

// EventSet is the complete custom-event declaration for one concrete node
// type. It is never merged with another type's set: a type that embeds a
// base manager and overrides Events replaces the declaration wholesale,
// so an omission is visible rather than silently filled from a supertype.
type EventSet struct {
	Bubbling []BubblingEvent
	Direct   []DirectEvent
}

// validate checks that event names and registration names are unique
// within the set.
func (s EventSet) validate() error {
	names := make(map[string]struct{}, len(s.Bubbling)+len(s.Direct))
	claim := func(name string) error {
		if name == "" {
			return fmt.Errorf("%w: empty name", ErrDuplicateEvent)
		}
		if _, taken := names[name]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicateEvent, name)
		}
		names[name] = struct{}{}
		return nil
	}
	for _, e := range s.Bubbling {
		if err := claim(e.Name); err != nil {
			return err
		}
	}
	for _, e := range s.Direct {
		if err := claim(e.Name); err != nil {
			return err
		}
	}
	regs := make(map[string]struct{}, 2*len(s.Bubbling)+len(s.Direct))
	claimReg := func(name string) error {
		if name == "" {
			return fmt.Errorf("%w: empty registration name", ErrDuplicateEvent)
		}
		if _, taken := regs[name]; taken {
			return fmt.Errorf("%w: registration name %q", ErrDuplicateEvent, name)
		}
		regs[name] = struct{}{}
		return nil
	}
	for _, e := range s.Bubbling {
		if err := claimReg(e.Bubbled); err != nil {
			return err
		}
		if err := claimReg(e.Captured); err != nil {
			return err
		}
	}
	for _, e := range s.Direct {
		if err := claimReg(e.RegistrationName); err != nil {
			return err
		}
	}
	return nil
}

// RegistrationName resolves an event name to the registration name used
// for dispatch: the bubble-phase name for bubbling events, the single
// name for direct events.
func (s EventSet) RegistrationName(event string) (string, bool) {
	for _, e := range s.Bubbling {
		if e.Name == event {
			return e.Bubbled, true
		}
	}
	for _, e := range s.Direct {
		if e.Name == event {
			return e.RegistrationName, true
		}
	}
	return "", false
}
