package evergreen

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenFieldsReachesTarget(t *testing.T) {
	a, b := 0.0, 10.0
	g := TweenFields(1, ease.Linear, TweenPair{&a, 1}, TweenPair{&b, 0})

	g.Update(0.5)
	if math.Abs(a-0.5) > 1e-5 || math.Abs(b-5) > 1e-4 {
		t.Errorf("midway = (%v, %v), want (0.5, 5)", a, b)
	}
	if g.Done {
		t.Error("Done before duration elapsed")
	}

	g.Update(0.6)
	if a != 1 || b != 0 {
		t.Errorf("final = (%v, %v), want (1, 0)", a, b)
	}
	if !g.Done {
		t.Error("not Done after duration")
	}

	// Further updates are no-ops.
	a = 42
	g.Update(1)
	if a != 42 {
		t.Error("Update after Done wrote to field")
	}
}

func TestTweenColor(t *testing.T) {
	c := Color{0, 0, 0, 1}
	g := TweenColor(&c, Color{1, 0.5, 0, 0}, 0.25, ease.OutQuad)
	for !g.Done {
		g.Update(1.0 / 60)
	}
	want := Color{1, 0.5, 0, 0}
	if math.Abs(c.R-want.R) > 1e-6 || math.Abs(c.G-want.G) > 1e-6 || c.A != 0 {
		t.Errorf("color = %+v, want %+v", c, want)
	}
}

func TestTweenFieldsTooMany(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for 5 fields")
		}
	}()
	var f [5]float64
	TweenFields(1, ease.Linear,
		TweenPair{&f[0], 1}, TweenPair{&f[1], 1}, TweenPair{&f[2], 1},
		TweenPair{&f[3], 1}, TweenPair{&f[4], 1})
}

func TestNilTweenGroupUpdate(t *testing.T) {
	var g *TweenGroup
	g.Update(1) // must not panic
}
