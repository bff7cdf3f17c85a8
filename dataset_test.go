package evergreen

import (
	"errors"
	"math"
	"testing"
)

func TestBuildDatasetFoliageScenario(t *testing.T) {
	cfg := FoliageConfig()
	cfg.Count = 4

	data, err := BuildDataset(cfg, NewRand(2024))
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	if len(data) != 4 {
		t.Fatalf("len = %d, want 4", len(data))
	}
	for i, r := range data {
		if r.ID != i {
			t.Errorf("record %d: ID = %d", i, r.ID)
		}
		if r.Tree.Y < cfg.ConeYOffset || r.Tree.Y > cfg.ConeYOffset+cfg.ConeHeight {
			t.Errorf("record %d: tree y = %v outside [%v, %v]", i, r.Tree.Y, cfg.ConeYOffset, cfg.ConeYOffset+cfg.ConeHeight)
		}
		if n := r.Scatter.Norm(); n > cfg.ScatterRadius {
			t.Errorf("record %d: |scatter| = %v > %v", i, n, cfg.ScatterRadius)
		}
		if r.Kind != KindFoliage {
			t.Errorf("record %d: kind = %v", i, r.Kind)
		}
	}
}

func TestBuildDatasetOrnamentAttributes(t *testing.T) {
	cfg := OrnamentConfig("gold", KindSphere, 200, Hex(0xFFD700))
	data, err := BuildDataset(cfg, NewRand(1))
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	seen := make(map[int]bool, len(data))
	for _, r := range data {
		if seen[r.ID] {
			t.Fatalf("duplicate ID %d", r.ID)
		}
		seen[r.ID] = true
		if r.Scale < 0.2 || r.Scale > 0.4 {
			t.Errorf("record %d: scale %v outside [0.2, 0.4]", r.ID, r.Scale)
		}
		if r.Rotation.X < 0 || r.Rotation.X >= math.Pi || r.Rotation.Y < 0 || r.Rotation.Y >= math.Pi {
			t.Errorf("record %d: rotation %+v outside [0, π)", r.ID, r.Rotation)
		}
		if r.Rotation.Z != 0 {
			t.Errorf("record %d: rotation z = %v, want 0", r.ID, r.Rotation.Z)
		}
		if r.Random < 0 || r.Random >= 1 {
			t.Errorf("record %d: random %v outside [0, 1)", r.ID, r.Random)
		}
	}
}

func TestBuildDatasetDeterministicBySeed(t *testing.T) {
	cfg := OrnamentConfig("box", KindBox, 50, Hex(0x8b0000))
	a, err := BuildDataset(cfg, NewRand(99))
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildDataset(cfg, NewRand(99))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("record %d differs between identical seeds", i)
		}
	}
}

func TestBuildDatasetRejectsInvalid(t *testing.T) {
	base := OrnamentConfig("box", KindBox, 10, ColorWhite)
	tests := []struct {
		name   string
		mutate func(*GroupConfig)
	}{
		{"zero count", func(c *GroupConfig) { c.Count = 0 }},
		{"negative count", func(c *GroupConfig) { c.Count = -5 }},
		{"negative scatter radius", func(c *GroupConfig) { c.ScatterRadius = -1 }},
		{"zero scatter radius", func(c *GroupConfig) { c.ScatterRadius = 0 }},
		{"zero height", func(c *GroupConfig) { c.ConeHeight = 0 }},
		{"negative base radius", func(c *GroupConfig) { c.ConeBaseRadius = -4 }},
		{"NaN height", func(c *GroupConfig) { c.ConeHeight = math.NaN() }},
		{"zero scale", func(c *GroupConfig) { c.Scale = Range{0, 0.4} }},
		{"inverted scale", func(c *GroupConfig) { c.Scale = Range{0.4, 0.2} }},
		{"NaN scale max", func(c *GroupConfig) { c.Scale = Range{0.2, math.NaN()} }},
		{"infinite scale max", func(c *GroupConfig) { c.Scale = Range{0.2, math.Inf(1)} }},
		{"infinite offset", func(c *GroupConfig) { c.ConeYOffset = math.Inf(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			data, err := BuildDataset(cfg, NewRand(1))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			if data != nil {
				t.Errorf("dataset = %d records, want nil", len(data))
			}
		})
	}
}

func TestBuildDatasetPanicsOnNilRand(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil rng")
		}
	}()
	_, _ = BuildDataset(FoliageConfig(), nil)
}
