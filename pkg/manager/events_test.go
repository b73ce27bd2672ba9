package manager

import (
	goerrors "errors"
	"testing"
)

func TestBubblingConventionalNames(t *testing.T) {
	e := Bubbling("onChange")
	if e.Bubbled != "onChange" || e.Captured != "onChangeCapture" {
		t.Fatalf("Bubbling(onChange) = %+v", e)
	}
}

func TestDirectConventionalName(t *testing.T) {
	if e := Direct("onToggle"); e.RegistrationName != "onToggle" {
		t.Fatalf("Direct(onToggle) = %+v", e)
	}
}

func TestEventSetValidateRejectsDuplicates(t *testing.T) {
	cases := []struct {
		name string
		set  EventSet
	}{
		{"duplicate bubbling name", EventSet{
			Bubbling: []BubblingEvent{Bubbling("onChange"), Bubbling("onChange")},
		}},
		{"name shared across kinds", EventSet{
			Bubbling: []BubblingEvent{Bubbling("onPress")},
			Direct:   []DirectEvent{Direct("onPress")},
		}},
		{"duplicate registration name", EventSet{
			Bubbling: []BubblingEvent{{Name: "onA", Bubbled: "onShared", Captured: "onACapture"}},
			Direct:   []DirectEvent{{Name: "onB", RegistrationName: "onShared"}},
		}},
		{"empty name", EventSet{Direct: []DirectEvent{{Name: "", RegistrationName: "onX"}}}},
	}
	for _, c := range cases {
		if err := c.set.validate(); !goerrors.Is(err, ErrDuplicateEvent) {
			t.Errorf("%s: validate() = %v, want ErrDuplicateEvent", c.name, err)
		}
	}
}

func TestEventSetRegistrationName(t *testing.T) {
	set := EventSet{
		Bubbling: []BubblingEvent{Bubbling("onChange")},
		Direct:   []DirectEvent{Direct("onToggle")},
	}
	if reg, ok := set.RegistrationName("onChange"); !ok || reg != "onChange" {
		t.Errorf("RegistrationName(onChange) = %q, %v", reg, ok)
	}
	if reg, ok := set.RegistrationName("onToggle"); !ok || reg != "onToggle" {
		t.Errorf("RegistrationName(onToggle) = %q, %v", reg, ok)
	}
	if _, ok := set.RegistrationName("onMissing"); ok {
		t.Error("RegistrationName should miss for undeclared events")
	}
}

func TestRegisterRejectsInvalidEventSet(t *testing.T) {
	setupTest(t)
	if _, err := Register(clashingEventsManager{}); !goerrors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("Register = %v, want ErrDuplicateEvent", err)
	}
}

type clashingEventsManager struct{ ToggleManager }

func (clashingEventsManager) Events() EventSet {
	return EventSet{Direct: []DirectEvent{Direct("onToggle"), Direct("onToggle")}}
}

// plainManager embeds ToggleManager but overrides Events with its own
// complete declaration.
type plainManager struct{ ToggleManager }

func (plainManager) Events() EventSet { return EventSet{} }

func (plainManager) Constants() map[string]any { return nil }

func TestMetadataIsNotInherited(t *testing.T) {
	setupTest(t)
	desc := MustRegister(plainManager{})

	// The embedded ToggleManager declares onToggle and a constant; the
	// overriding declaration replaces both sets rather than merging.
	events := desc.Events()
	if len(events.Bubbling) != 0 || len(events.Direct) != 0 {
		t.Fatalf("events = %+v, want empty set with no supertype contribution", events)
	}
	if desc.Constants() != nil {
		t.Fatalf("constants = %v, want none", desc.Constants())
	}
}
