package evergreen

import (
	"errors"
	"math"
	"sync"
	"testing"
)

// testSceneConfig is the default scene shrunk for fast tests.
func testSceneConfig() SceneConfig {
	cfg := DefaultSceneConfig()
	cfg.Foliage.Count = 200
	for i := range cfg.Ornaments {
		cfg.Ornaments[i].Count = 10
	}
	cfg.Sparkles.Count = 20
	return cfg
}

func newTestScene(t *testing.T, mutate func(*SceneConfig)) *Scene {
	t.Helper()
	cfg := testSceneConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewScene(cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

type recordingStore struct {
	events []MorphEvent
}

func (r *recordingStore) EmitMorph(e MorphEvent) { r.events = append(r.events, e) }

func TestNewSceneRejectsInvalidConfig(t *testing.T) {
	cfg := testSceneConfig()
	cfg.Ornaments[1].ScatterRadius = -1
	_, err := NewScene(cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("NewScene = %v, want ErrInvalidConfig", err)
	}
}

func TestSceneIntroAssembly(t *testing.T) {
	s := newTestScene(t, nil)
	if s.State() != TreeShape {
		t.Fatalf("initial state = %v, want TREE_SHAPE", s.State())
	}
	if s.Camera().AutoRotate() != 1 {
		t.Errorf("auto-rotate = %v, want 1 while assembled", s.Camera().AutoRotate())
	}
	if p := s.Tree().Foliage().Progress(); p != 0 {
		t.Fatalf("initial progress = %v, want 0", p)
	}
	if s.Tree().Settled(1e-3) {
		t.Fatal("scattered start reported settled on the tree")
	}
	for i := 0; i < 600; i++ {
		s.Step(frame)
	}
	if !s.Tree().Settled(1e-3) {
		t.Error("tree not settled after 10 seconds")
	}
}

func TestSceneStartAssembled(t *testing.T) {
	s := newTestScene(t, func(c *SceneConfig) { c.StartAssembled = true })
	if !s.Tree().Settled(1e-9) {
		t.Error("StartAssembled scene not settled on the tree")
	}
}

func TestSceneToggleReactions(t *testing.T) {
	s := newTestScene(t, func(c *SceneConfig) { c.StartAssembled = true })
	store := &recordingStore{}
	s.SetEntityStore(store)

	if got := s.Toggle(); got != Scattered {
		t.Fatalf("Toggle = %v, want SCATTERED", got)
	}
	if len(store.events) != 1 || store.events[0].State != Scattered || store.events[0].Toggles != 1 {
		t.Fatalf("events = %+v", store.events)
	}
	if s.hud.labelAlpha != 0 || s.hud.glow != 1 {
		t.Errorf("hud not flashed: glow %v label %v", s.hud.glow, s.hud.labelAlpha)
	}

	for i := 0; i < 120; i++ {
		s.Step(frame)
	}
	if s.Camera().AutoRotate() != 0 {
		t.Errorf("auto-rotate = %v after scattering, want 0", s.Camera().AutoRotate())
	}
	if s.hud.labelAlpha != 1 || s.hud.glow != 0 {
		t.Errorf("hud fade incomplete: glow %v label %v", s.hud.glow, s.hud.labelAlpha)
	}
	if len(store.events) != 1 {
		t.Errorf("Step re-emitted an event: %+v", store.events)
	}
}

func TestSceneObservesToggleFromOtherGoroutine(t *testing.T) {
	s := newTestScene(t, nil)
	store := &recordingStore{}
	s.SetEntityStore(store)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Tree().Toggle()
	}()
	wg.Wait()

	s.Step(frame)
	if len(store.events) != 1 || store.events[0].State != Scattered {
		t.Fatalf("events = %+v, want one SCATTERED event", store.events)
	}
}

func TestSceneStepInvalidDt(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"negative", -1},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t, nil)
			s.Step(tt.dt)
			if s.Tree().Elapsed() != 0 {
				t.Errorf("Elapsed = %v after dt %v", s.Tree().Elapsed(), tt.dt)
			}
			s.Tree().Step(tt.dt)
			s.Step(frame)
			if p := s.Tree().Foliage().Progress(); math.IsNaN(p) || p < 0 || p > 1 {
				t.Errorf("progress = %v after dt %v", p, tt.dt)
			}
			if e := s.Tree().Elapsed(); math.Abs(e-frame) > epsilon {
				t.Errorf("Elapsed = %v, want %v", e, frame)
			}
			if a := s.Camera().Azimuth; math.IsNaN(a) {
				t.Error("camera azimuth is NaN")
			}
		})
	}
}

func TestButtonLabel(t *testing.T) {
	if got := ButtonLabel(TreeShape); got != "Scatter Magic" {
		t.Errorf("TreeShape label = %q", got)
	}
	if got := ButtonLabel(Scattered); got != "Assemble Tree" {
		t.Errorf("Scattered label = %q", got)
	}
}

func TestTreeGroupsOrder(t *testing.T) {
	s := newTestScene(t, nil)
	var names []string
	for _, g := range s.Tree().Groups() {
		names = append(names, g.Name())
	}
	want := []string{"foliage", "gifts", "gold", "silver", "star", "sparkles"}
	if len(names) != len(want) {
		t.Fatalf("groups = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("group %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestTreeWithoutSparkles(t *testing.T) {
	s := newTestScene(t, func(c *SceneConfig) { c.Sparkles.Count = 0 })
	if s.Tree().Sparkles() != nil {
		t.Error("sparkles built with count 0")
	}
	s.Step(frame)
}

type countingGroup struct{ updates int }

func (c *countingGroup) Name() string { return "counter" }
func (c *countingGroup) Update(float64, float64, MorphState) { c.updates++ }

func TestTreeAddGroup(t *testing.T) {
	s := newTestScene(t, nil)
	g := &countingGroup{}
	s.Tree().AddGroup(g)
	s.Step(frame)
	s.Step(frame)
	if g.updates != 2 {
		t.Errorf("updates = %d, want 2", g.updates)
	}
}
