package shape

import (
	"strings"
	"testing"
)

func TestRegistryCoversAllKinds(t *testing.T) {
	r := NewRegistry()
	for _, kind := range AllKinds {
		u := r.Lookup(kind)
		if u == nil {
			t.Fatalf("Lookup(%q) returned nil", kind)
		}
		if u.Kind() != kind {
			t.Errorf("Lookup(%q).Kind() = %q", kind, u.Kind())
		}
	}
	if len(AllKinds) != 11 {
		t.Errorf("AllKinds has %d kinds, want 11", len(AllKinds))
	}
}

func TestLookupUnknownKindPanics(t *testing.T) {
	r := NewRegistry()
	defer func() {
		if recover() == nil {
			t.Fatal("Lookup of unregistered kind should panic")
		}
	}()
	r.Lookup(Kind("hexagon"))
}

func TestRegistryCreateDelegates(t *testing.T) {
	r := NewRegistry()
	s := r.Create(KindCircle, nil)
	if s.Kind != KindCircle {
		t.Errorf("kind = %q, want circle", s.Kind)
	}
	if s.Radius != 50 {
		t.Errorf("default radius = %f, want 50", s.Radius)
	}
	if !strings.HasPrefix(s.ID, "shape_") {
		t.Errorf("id = %q, want shape_ prefix", s.ID)
	}

	s2 := r.Create(KindCircle, nil)
	if s.ID == s2.ID {
		t.Error("two created shapes share an ID")
	}
}

func TestUtilForResolvesByShapeKind(t *testing.T) {
	r := NewRegistry()
	s := r.Create(KindRectangle, nil)
	if got := r.UtilFor(s).Kind(); got != KindRectangle {
		t.Errorf("UtilFor kind = %q, want rectangle", got)
	}
}

// flagOnlyUtil overrides nothing but its flags; every operation falls
// through to the default behavior.
type flagOnlyUtil struct {
	baseUtil
}

func TestFlagOverrideKeepsDefaultOperations(t *testing.T) {
	r := NewRegistry()
	u := &flagOnlyUtil{baseUtil{
		kind:                 Kind("frozen"),
		canTransform:         false,
		canChangeAspectRatio: true,
		canStyleFill:         true,
	}}
	u.bind(u, r)

	if u.CanTransform() {
		t.Error("CanTransform should be false")
	}

	s := u.Create(nil)
	b := u.Bounds(s)
	if b.Width != 1 || b.Height != 1 {
		t.Errorf("default bounds = %+v, want degenerate 1x1", b)
	}

	u.TranslateBy(s, vec(5, 7))
	if s.Point != vec(5, 7) {
		t.Errorf("point after translate = %+v, want {5 7}", s.Point)
	}

	n := u.Render(s)
	if n.Kind != NodeCircle || n.Radius != 1 {
		t.Errorf("default render = %+v, want unit circle placeholder", n)
	}
}

func TestCapabilityFlagsPerKind(t *testing.T) {
	r := NewRegistry()

	if r.Lookup(KindDot).CanTransform() {
		t.Error("dot should not be transformable")
	}
	if !r.Lookup(KindRectangle).CanTransform() {
		t.Error("rectangle should be transformable")
	}
	if r.Lookup(KindCircle).CanChangeAspectRatio() {
		t.Error("circle should not allow free aspect ratio")
	}
	if r.Lookup(KindLine).CanStyleFill() {
		t.Error("line should not offer fill styling")
	}
	if !r.Lookup(KindDraw).CanStyleFill() {
		t.Error("draw should offer fill styling")
	}
}
