package evergreen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

// ErrInvalidConfig is returned (wrapped) when a group configuration would
// produce degenerate geometry. No dataset is built in that case.
var ErrInvalidConfig = errors.New("invalid configuration")

// Record is one animated element: the two fixed endpoints it blends between
// plus its static attributes. Records are never mutated after BuildDataset.
type Record struct {
	// ID is the element's index in its dataset. It seeds per-element phase
	// offsets for secondary motion.
	ID int
	// Scatter is the endpoint in the dispersed sphere.
	Scatter r3.Vector
	// Tree is the endpoint in the assembled cone.
	Tree r3.Vector
	// Rotation is a fixed random tilt.
	Rotation Euler
	// Scale is a fixed positive size multiplier.
	Scale float64
	// Random is a per-element value in [0, 1) driving stagger, shimmer and size.
	Random float64
	// Kind is carried for the renderer only.
	Kind Kind
}

// Dataset is the ordered, fixed-length record list for one group.
type Dataset []Record

// GroupConfig is the construction-time parameterization of an animated group.
type GroupConfig struct {
	// Name identifies the group in logs and config files.
	Name string `yaml:"name"`
	// Kind selects the renderer material.
	Kind Kind `yaml:"kind"`
	// Count is the number of elements. Must be positive.
	Count int `yaml:"count"`
	// ConeHeight is the tree cone's height. Must be positive.
	ConeHeight float64 `yaml:"coneHeight"`
	// ConeBaseRadius is the radius of the cone's base. Must be positive.
	ConeBaseRadius float64 `yaml:"coneBaseRadius"`
	// ConeYOffset is the Y coordinate of the cone's base.
	ConeYOffset float64 `yaml:"coneYOffset"`
	// Spiral ties each point's angle to its height.
	Spiral bool `yaml:"spiral"`
	// ScatterRadius is the radius of the scatter sphere. Must be positive.
	ScatterRadius float64 `yaml:"scatterRadius"`
	// Scale is the range each element's fixed scale is drawn from.
	Scale Range `yaml:"scale"`
	// Color tints the whole group.
	Color Color `yaml:"color"`
}

// Validate reports the first field that would make the group degenerate.
// Every returned error wraps ErrInvalidConfig.
func (c GroupConfig) Validate() error {
	switch {
	case c.Count <= 0:
		return fmt.Errorf("group %q: count %d must be positive: %w", c.Name, c.Count, ErrInvalidConfig)
	case !positive(c.ConeHeight):
		return fmt.Errorf("group %q: cone height %v must be positive: %w", c.Name, c.ConeHeight, ErrInvalidConfig)
	case !positive(c.ConeBaseRadius):
		return fmt.Errorf("group %q: cone base radius %v must be positive: %w", c.Name, c.ConeBaseRadius, ErrInvalidConfig)
	case !positive(c.ScatterRadius):
		return fmt.Errorf("group %q: scatter radius %v must be positive: %w", c.Name, c.ScatterRadius, ErrInvalidConfig)
	case !positive(c.Scale.Min) || !positive(c.Scale.Max) || c.Scale.Max < c.Scale.Min:
		return fmt.Errorf("group %q: scale range [%v, %v] must be positive and ordered: %w",
			c.Name, c.Scale.Min, c.Scale.Max, ErrInvalidConfig)
	case math.IsNaN(c.ConeYOffset) || math.IsInf(c.ConeYOffset, 0):
		return fmt.Errorf("group %q: cone y offset %v must be finite: %w", c.Name, c.ConeYOffset, ErrInvalidConfig)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// BuildDataset generates cfg.Count records from rng. Each record draws one
// scatter point and one tree point from the shared sampling primitives, a
// random tilt in [0, π) about X and Y, a scale within cfg.Scale and a random
// scalar. IDs are assigned by index.
func BuildDataset(cfg GroupConfig, rng *rand.Rand) (Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		panic("evergreen: BuildDataset with nil rng")
	}

	data := make(Dataset, cfg.Count)
	for i := range data {
		data[i] = Record{
			ID:      i,
			Scatter: ScatterPoint(rng, cfg.ScatterRadius),
			Tree:    TreePoint(rng, cfg.ConeHeight, cfg.ConeBaseRadius, cfg.ConeYOffset, cfg.Spiral),
			Rotation: Euler{
				X: rng.Float64() * math.Pi,
				Y: rng.Float64() * math.Pi,
			},
			Scale:  cfg.Scale.Random(rng),
			Random: rng.Float64(),
			Kind:   cfg.Kind,
		}
	}
	return data, nil
}

// FoliageConfig returns the point-cloud preset: a tall spiraled cone with
// many small points.
func FoliageConfig() GroupConfig {
	return GroupConfig{
		Name:           "foliage",
		Kind:           KindFoliage,
		Count:          15000,
		ConeHeight:     12,
		ConeBaseRadius: 4.5,
		ConeYOffset:    -4,
		Spiral:         true,
		ScatterRadius:  18,
		Scale:          Range{Min: 1, Max: 1},
		Color:          Hex(0x0b4f32),
	}
}

// OrnamentConfig returns the instanced ornament preset: a slightly smaller,
// volume-filled cone with fewer, larger elements.
func OrnamentConfig(name string, kind Kind, count int, color Color) GroupConfig {
	return GroupConfig{
		Name:           name,
		Kind:           kind,
		Count:          count,
		ConeHeight:     11,
		ConeBaseRadius: 4.2,
		ConeYOffset:    -4,
		ScatterRadius:  20,
		Scale:          Range{Min: 0.2, Max: 0.4},
		Color:          color,
	}
}

// invalidf formats a configuration error wrapping ErrInvalidConfig.
func invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidConfig)...)
}
