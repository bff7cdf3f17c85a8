package evergreen

import (
	"math"
	"sync"
	"testing"
)

func TestMorphInitialState(t *testing.T) {
	m := NewMorph()
	if m.State() != TreeShape {
		t.Errorf("initial state = %v, want TREE_SHAPE", m.State())
	}
	if m.Target() != 1 {
		t.Errorf("initial target = %v, want 1", m.Target())
	}
}

func TestMorphToggleTwiceRestores(t *testing.T) {
	m := NewMorph()
	if got := m.Toggle(); got != Scattered {
		t.Fatalf("first toggle = %v, want SCATTERED", got)
	}
	if m.Target() != 0 {
		t.Errorf("scattered target = %v, want 0", m.Target())
	}
	if got := m.Toggle(); got != TreeShape {
		t.Fatalf("second toggle = %v, want TREE_SHAPE", got)
	}
	if m.Toggles() != 2 {
		t.Errorf("Toggles() = %d, want 2", m.Toggles())
	}
}

func TestMorphObserversFire(t *testing.T) {
	m := NewMorph()
	var seen []MorphState
	m.OnToggle(func(s MorphState) { seen = append(seen, s) })

	m.Toggle()
	m.Set(Scattered) // no change, no callback
	m.Set(TreeShape)

	want := []MorphState{Scattered, TreeShape}
	if len(seen) != len(want) {
		t.Fatalf("observer calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestMorphConcurrentToggles(t *testing.T) {
	m := NewMorph()
	const n = 1000
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Toggle()
		}()
	}
	wg.Wait()
	// An even number of flips lands back on the initial state.
	if m.State() != TreeShape {
		t.Errorf("state after %d toggles = %v, want TREE_SHAPE", n, m.State())
	}
	if m.Toggles() != n {
		t.Errorf("Toggles() = %d, want %d", m.Toggles(), n)
	}
}

func TestMorphStateString(t *testing.T) {
	if Scattered.String() != "SCATTERED" || TreeShape.String() != "TREE_SHAPE" {
		t.Errorf("names = %q, %q", Scattered, TreeShape)
	}
}

func TestCursorScenarioToggleThousandFrames(t *testing.T) {
	m := NewMorph()
	c := NewCursor(1, FoliageMorphSpeed)
	m.Toggle()
	for i := 0; i < 1000; i++ {
		c.Step(m.Target(), 1.0/60)
	}
	if c.Value() > 0.01 {
		t.Errorf("cursor = %v after 1000 frames, want < 0.01", c.Value())
	}
}

func TestCursorMonotonicNoOvershoot(t *testing.T) {
	tests := []struct {
		name          string
		start, target float64
		dt            float64
	}{
		{"down 60fps", 1, 0, 1.0 / 60},
		{"up 60fps", 0, 1, 1.0 / 60},
		{"up huge frame", 0.2, 1, 3},
		{"down 30fps", 0.7, 0, 1.0 / 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.start, FoliageMorphSpeed)
			prevDist := math.Abs(tt.target - c.Value())
			for i := 0; i < 500; i++ {
				v := c.Step(tt.target, tt.dt)
				if v < 0 || v > 1 {
					t.Fatalf("step %d: value %v outside [0,1]", i, v)
				}
				dist := math.Abs(tt.target - v)
				if dist > prevDist {
					t.Fatalf("step %d: moved away from target (%v > %v)", i, dist, prevDist)
				}
				if (tt.target-tt.start)*(tt.target-v) < 0 {
					t.Fatalf("step %d: overshot target, value %v", i, v)
				}
				prevDist = dist
			}
		})
	}
}

func TestCursorBoundedStepAfterFlip(t *testing.T) {
	c := NewCursor(1, FoliageMorphSpeed)
	const dt = 1.0 / 60
	before := c.Value()
	after := c.Step(0, dt)
	if before-after > dt*FoliageMorphSpeed+epsilon {
		t.Errorf("cursor jumped by %v in one frame, limit %v", before-after, dt*FoliageMorphSpeed)
	}
}

func TestCursorClampsInitial(t *testing.T) {
	hi, lo, def := NewCursor(3, 1), NewCursor(-2, 1), NewCursor(0, 0)
	if v := hi.Value(); v != 1 {
		t.Errorf("NewCursor(3) = %v, want 1", v)
	}
	if v := lo.Value(); v != 0 {
		t.Errorf("NewCursor(-2) = %v, want 0", v)
	}
	if s := def.Speed(); s != defaultCursorSpeed {
		t.Errorf("default speed = %v, want %v", s, defaultCursorSpeed)
	}
}
