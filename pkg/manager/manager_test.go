package manager

import (
	goerrors "errors"
	"testing"

	"github.com/go-drift/viewbridge/pkg/errors"
)

// --- Test helpers ---

// recordingHandler captures reported errors for assertions.
type recordingHandler struct {
	errs   []*errors.BridgeError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.BridgeError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *errors.PanicError)  { h.panics = append(h.panics, err) }

func setupTest(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() {
		errors.SetHandler(nil)
		ResetForTest()
	})
	return h
}

// toggleView is the real view for the Toggle node type.
type toggleView struct {
	on    bool
	tint  uint32
	label string
}

// ToggleManager manages the Toggle node type.
type ToggleManager struct {
	BaseViewManager
}

func (ToggleManager) CreateView() any { return &toggleView{} }

func (ToggleManager) Props() *PropRegistry {
	return NewProps().Register(
		BoolProp("on",
			func(v *toggleView) bool { return v.on },
			func(v *toggleView, b bool) { v.on = b }),
		ColorProp("tintColor",
			func(v *toggleView) uint32 { return v.tint },
			func(v *toggleView, c uint32) { v.tint = c }),
		StringProp("label",
			func(v *toggleView) string { return v.label },
			func(v *toggleView, s string) { v.label = s }),
	)
}

func (ToggleManager) Events() EventSet {
	return EventSet{Direct: []DirectEvent{Direct("onToggle")}}
}

func (ToggleManager) Constants() map[string]any {
	return map[string]any{"maxLabelLength": 64}
}

// cachingManager violates the fresh-instance contract on purpose.
type cachingManager struct {
	BaseViewManager
	cached *toggleView
}

func (m *cachingManager) CreateView() any {
	if m.cached == nil {
		m.cached = &toggleView{}
	}
	return m.cached
}

func (m *cachingManager) Props() *PropRegistry { return NewProps() }

// --- Tests ---

func TestDeriveModuleName(t *testing.T) {
	if name := DeriveModuleName(ToggleManager{}); name != "Toggle" {
		t.Errorf("DeriveModuleName(ToggleManager) = %q, want Toggle", name)
	}
	if name := DeriveModuleName(&cachingManager{}); name != "caching" {
		t.Errorf("DeriveModuleName(*cachingManager) = %q, want caching", name)
	}
}

type renamedManager struct{ ToggleManager }

func (renamedManager) ModuleName() string { return "FancyToggle" }

func TestModuleNameOverride(t *testing.T) {
	if name := DeriveModuleName(renamedManager{}); name != "FancyToggle" {
		t.Errorf("DeriveModuleName = %q, want FancyToggle", name)
	}
}

func TestRegisterRejectsDuplicateModule(t *testing.T) {
	setupTest(t)
	if _, err := Register(ToggleManager{}); err != nil {
		t.Fatal(err)
	}
	if _, err := Register(ToggleManager{}); !goerrors.Is(err, ErrDuplicateModule) {
		t.Fatalf("second Register = %v, want ErrDuplicateModule", err)
	}
}

func TestLookupAndDescriptors(t *testing.T) {
	setupTest(t)
	desc := MustRegister(ToggleManager{})
	got, ok := Lookup("Toggle")
	if !ok || got != desc {
		t.Fatalf("Lookup(Toggle) = %v, %v", got, ok)
	}
	if all := Descriptors(); len(all) != 1 || all[0] != desc {
		t.Fatalf("Descriptors() = %v", all)
	}
}

func TestFactoryReturnsFreshInstances(t *testing.T) {
	setupTest(t)
	desc := MustRegister(ToggleManager{})

	first, err := desc.CreateView()
	if err != nil {
		t.Fatal(err)
	}
	second, err := desc.CreateView()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("CreateView returned the same instance twice")
	}

	// Instances must be independently mutable.
	first.(*toggleView).on = true
	if second.(*toggleView).on {
		t.Fatal("mutating one instance leaked into another")
	}

	s1, err := desc.CreateShadowView()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := desc.CreateShadowView()
	if err != nil {
		t.Fatal(err)
	}
	if s1 == s2 {
		t.Fatal("CreateShadowView returned the same instance twice")
	}
}

func TestCachingFactoryIsIntegrityFailure(t *testing.T) {
	h := setupTest(t)
	desc := MustRegister(&cachingManager{})

	// The pristine snapshot instance is the first (and only) instance the
	// caching factory will ever produce.
	_, err := desc.CreateView()
	if !goerrors.Is(err, ErrInstanceReused) {
		t.Fatalf("CreateView = %v, want ErrInstanceReused", err)
	}
	if len(h.errs) == 0 || h.errs[0].Kind != errors.KindIntegrity {
		t.Fatalf("expected an integrity report, got %v", h.errs)
	}
}

func TestDefaultSnapshotCapturedOncePristine(t *testing.T) {
	setupTest(t)
	desc := MustRegister(ToggleManager{})

	defaults := desc.Defaults()
	if on, ok := defaults["on"].(bool); !ok || on {
		t.Fatalf("defaults[on] = %v, want false", defaults["on"])
	}
	if label, ok := defaults["label"].(string); !ok || label != "" {
		t.Fatalf("defaults[label] = %v, want empty", defaults["label"])
	}

	// Mutating later instances must not bleed into the snapshot.
	view, _ := desc.CreateView()
	desc.ApplyProps(map[string]any{"on": true, "label": "lights"}, view)
	if desc.Defaults()["on"] != false {
		t.Fatal("default snapshot was recomputed from a mutated instance")
	}
}

func TestToggleScenario(t *testing.T) {
	setupTest(t)
	desc := MustRegister(ToggleManager{})
	view, err := desc.CreateView()
	if err != nil {
		t.Fatal(err)
	}

	// First batch sets on=true.
	desc.ApplyProps(map[string]any{"on": true}, view)
	if !view.(*toggleView).on {
		t.Fatal("on = false after applying true")
	}

	// Next batch omits "on" entirely: the default is restored.
	desc.ApplyProps(map[string]any{"on": nil}, view)
	if view.(*toggleView).on {
		t.Fatal("on = true after omission, want restored default false")
	}

	events := desc.Events()
	if len(events.Bubbling) != 0 || len(events.Direct) != 1 {
		t.Fatalf("events = %+v", events)
	}
	if e := events.Direct[0]; e.Name != "onToggle" || e.RegistrationName != "onToggle" {
		t.Fatalf("direct event = %+v", e)
	}
}

func TestApplyPropsSkipsBadEntriesAndProceeds(t *testing.T) {
	h := setupTest(t)
	desc := MustRegister(ToggleManager{})
	view, _ := desc.CreateView()

	desc.ApplyProps(map[string]any{
		"bogus": 1,           // unknown: reported, skipped
		"on":    "not bool",  // mismatch: reported, prior retained
		"label": "survivors", // healthy entry still applies
	}, view)

	if view.(*toggleView).label != "survivors" {
		t.Fatal("healthy property did not apply")
	}
	if view.(*toggleView).on {
		t.Fatal("mismatched property mutated the view")
	}
	if len(h.errs) != 2 {
		t.Fatalf("reported %d errors, want 2", len(h.errs))
	}
	kinds := map[errors.ErrorKind]int{}
	for _, e := range h.errs {
		kinds[e.Kind]++
		if e.Module != "Toggle" {
			t.Errorf("report module = %q", e.Module)
		}
	}
	if kinds[errors.KindProperty] != 1 || kinds[errors.KindConvert] != 1 {
		t.Fatalf("report kinds = %v", kinds)
	}
}

func TestGenericShadowViewTracksDirtyFrames(t *testing.T) {
	shadow := NewShadowView()
	if shadow.Dirty() {
		t.Fatal("fresh shadow view should be clean")
	}
	frame := Frame{X: 1, Y: 2, Width: 30, Height: 40}
	shadow.SetFrame(frame)
	if shadow.Frame() != frame || !shadow.Dirty() {
		t.Fatalf("shadow = %+v dirty=%v", shadow.Frame(), shadow.Dirty())
	}
	shadow.ClearDirty()
	shadow.SetFrame(frame) // unchanged frame stays clean
	if shadow.Dirty() {
		t.Fatal("identical frame should not re-dirty the node")
	}
}
