package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

// sparkle holds per-point drift state. Unexported; managed by Sparkles.
type sparkle struct {
	pos   r3.Vector
	rise  float64 // upward speed in units per second
	phase float64 // twinkle phase offset
	size  float64
	alpha float64
}

// SparkleConfig controls the ambient sparkle field that hangs around the tree
// regardless of morph state.
type SparkleConfig struct {
	// Count is the pool size. Zero disables sparkles.
	Count int `yaml:"count"`
	// Extent is the edge length of the cube sparkles live in, centered on
	// the scene origin.
	Extent float64 `yaml:"extent"`
	// Speed is the range of upward drift speeds in units per second.
	Speed Range `yaml:"speed"`
	// Size is the range of unattenuated point sizes in pixels.
	Size Range `yaml:"size"`
	// Opacity is the peak alpha.
	Opacity float64 `yaml:"opacity"`
	// Color tints every sparkle.
	Color Color `yaml:"color"`
}

// DefaultSparkleConfig returns 200 dim gold sparkles in a 20-unit cube.
func DefaultSparkleConfig() SparkleConfig {
	return SparkleConfig{
		Count:   200,
		Extent:  20,
		Speed:   Range{Min: 0.2, Max: 0.6},
		Size:    Range{Min: 3, Max: 5},
		Opacity: 0.5,
		Color:   Hex(0xFFD700),
	}
}

// Validate rejects negative counts, degenerate extents and speeds that would
// carry points out through the bottom face.
func (c SparkleConfig) Validate() error {
	switch {
	case c.Count < 0:
		return invalidf("sparkles: count %d must not be negative", c.Count)
	case c.Count > 0 && !positive(c.Extent):
		return invalidf("sparkles: extent %v must be positive", c.Extent)
	case !(c.Speed.Min >= 0) || math.IsInf(c.Speed.Max, 0) || !(c.Speed.Max >= c.Speed.Min):
		return invalidf("sparkles: speed range [%v, %v] must be finite, non-negative and ordered",
			c.Speed.Min, c.Speed.Max)
	}
	return nil
}

// Sparkles is a fixed pool of drifting points. Points leaving the top of the
// cube re-enter at the bottom, so the pool never grows or shrinks.
type Sparkles struct {
	config    SparkleConfig
	particles []sparkle
	verts     []PointVertex
}

// NewSparkles creates the pool and scatters points through the cube.
func NewSparkles(cfg SparkleConfig, rng *rand.Rand) (*Sparkles, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sparkles{
		config:    cfg,
		particles: make([]sparkle, cfg.Count),
		verts:     make([]PointVertex, cfg.Count),
	}
	half := cfg.Extent / 2
	for i := range s.particles {
		p := &s.particles[i]
		p.pos = r3.Vector{
			X: (rng.Float64()*2 - 1) * half,
			Y: (rng.Float64()*2 - 1) * half,
			Z: (rng.Float64()*2 - 1) * half,
		}
		p.rise = cfg.Speed.Random(rng)
		p.phase = rng.Float64() * 2 * math.Pi
		p.size = cfg.Size.Random(rng)
		p.alpha = cfg.Opacity
	}
	s.fill()
	return s, nil
}

// Name returns "sparkles".
func (s *Sparkles) Name() string { return "sparkles" }

// Config returns a pointer to the config for live tuning of Opacity and Color.
func (s *Sparkles) Config() *SparkleConfig { return &s.config }

// Len returns the pool size.
func (s *Sparkles) Len() int { return len(s.particles) }

// Vertices returns the point buffer recomputed by the last Update.
func (s *Sparkles) Vertices() []PointVertex { return s.verts }

// Update drifts every sparkle upward, wrapping at the cube's top face, and
// recomputes its twinkle.
func (s *Sparkles) Update(dt, elapsed float64, _ MorphState) {
	half := s.config.Extent / 2
	for i := range s.particles {
		p := &s.particles[i]
		p.pos.Y += p.rise * dt
		if p.pos.Y > half {
			p.pos.Y -= s.config.Extent
		}
		twinkle := 0.5 + 0.5*math.Sin(elapsed*p.rise*8+p.phase)
		p.alpha = s.config.Opacity * twinkle
	}
	s.fill()
}

func (s *Sparkles) fill() {
	for i := range s.particles {
		p := &s.particles[i]
		s.verts[i] = PointVertex{
			Position: p.pos,
			Anchor:   p.pos,
			Random:   p.phase / (2 * math.Pi),
			Alpha:    p.alpha,
			Size:     p.size,
		}
	}
}
