package evergreen

import (
	"math"

	"github.com/golang/geo/r3"
)

// StarConfig places the tree-top star.
type StarConfig struct {
	// Tree is the star's position when assembled (the cone tip).
	Tree r3.Vector `yaml:"tree"`
	// Scatter is where the star floats while the tree is scattered.
	Scatter r3.Vector `yaml:"scatter"`
	// Scale is the star's size multiplier.
	Scale float64 `yaml:"scale"`
	// Color tints the star.
	Color Color `yaml:"color"`
}

const (
	starYawSpeed   = 0.5
	starRollAmount = 0.1
)

// DefaultStarConfig returns the star placement matching the default cones.
func DefaultStarConfig() StarConfig {
	return StarConfig{
		Tree:    r3.Vector{Y: 8.5},
		Scatter: r3.Vector{Y: 15, Z: -5},
		Scale:   1,
		Color:   Hex(0xFFD700),
	}
}

// Validate rejects a non-positive scale.
func (c StarConfig) Validate() error {
	if !positive(c.Scale) {
		return invalidf("star: scale %v must be positive", c.Scale)
	}
	return nil
}

// Star is the single tree-top element.
type Star struct {
	cfg       StarConfig
	cursor    VecCursor
	yaw       float64
	transform Transform
}

// NewStar returns a star starting at the given blend between its endpoints.
func NewStar(cfg StarConfig, start float64) (*Star, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Star{cfg: cfg}
	s.cursor.Current = lerpVec(cfg.Scatter, cfg.Tree, clamp01(start))
	s.fill(0)
	return s, nil
}

// Name returns "star".
func (s *Star) Name() string { return "star" }

// Config returns the construction parameters.
func (s *Star) Config() StarConfig { return s.cfg }

// Transform returns the transform computed by the last Update.
func (s *Star) Transform() Transform { return s.transform }

// Update chases the selected endpoint, turns the star slowly about Y and
// rocks it about Z.
func (s *Star) Update(dt, elapsed float64, state MorphState) {
	target := s.cfg.Scatter
	if state == TreeShape {
		target = s.cfg.Tree
	}
	s.cursor.Step(target, dt, StarLerpSpeed)
	s.yaw = math.Mod(s.yaw+dt*starYawSpeed, 2*math.Pi)
	s.fill(elapsed)
}

func (s *Star) fill(elapsed float64) {
	s.transform = Transform{
		Position: s.cursor.Current,
		Rotation: Euler{Y: s.yaw, Z: math.Sin(elapsed) * starRollAmount},
		Scale:    s.cfg.Scale,
	}
}
