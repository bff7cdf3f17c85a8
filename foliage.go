package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

// Foliage secondary-motion tuning. These are aesthetic constants, not
// invariants.
const (
	// foliageStagger is the largest per-point start delay, as a fraction of
	// morph progress.
	foliageStagger = 0.2
	// breatheAmplitude is the radial pulse distance, in world units.
	breatheAmplitude = 0.05
	breatheFrequency = 2.0
	// floatAmplitude is the vertical wind offset at progress 0.
	floatAmplitude = 0.2
	// floatCutoff is the progress above which the wind offset is off.
	floatCutoff = 0.5
	shimmerBase      = 0.6
	shimmerDepth     = 0.4
	shimmerFrequency = 3.0
	// pointSizeBase and pointSizeRange give a point's size before perspective
	// attenuation: base + range*Random.
	pointSizeBase  = 5.0
	pointSizeRange = 12.0
	phaseSpread    = 10.0
)

// PointVertex is one foliage point as the renderer consumes it.
type PointVertex struct {
	// Position is the displayed position for this frame.
	Position r3.Vector
	// Anchor is the fixed tree endpoint, used for bounds.
	Anchor r3.Vector
	// Random is the per-point scalar driving stagger, shimmer and size.
	Random float64
	// Alpha is the shimmer opacity in [0.2, 1].
	Alpha float64
	// Size is the unattenuated point size in pixels.
	Size float64
}

// Uniforms are the two per-frame globals a device-side point renderer needs
// to reproduce the CPU path.
type Uniforms struct {
	Time          float64
	MorphProgress float64
}

// Box is an axis-aligned 3D bounding box.
type Box struct {
	Min, Max r3.Vector
}

// Foliage is the point-cloud group. All points share one morph cursor; each
// point staggers its own assembly by its Random value.
type Foliage struct {
	cfg      GroupConfig
	data     Dataset
	cursor   Cursor
	verts    []PointVertex
	uniforms Uniforms
	bounds   Box
	dirty    bool
}

// NewFoliage builds the foliage dataset and a cursor starting at the given
// blend (0 = scattered, 1 = assembled).
func NewFoliage(cfg GroupConfig, rng *rand.Rand, start float64) (*Foliage, error) {
	data, err := BuildDataset(cfg, rng)
	if err != nil {
		return nil, err
	}
	f := &Foliage{
		cfg:    cfg,
		data:   data,
		cursor: NewCursor(start, FoliageMorphSpeed),
		verts:  make([]PointVertex, len(data)),
	}
	f.bounds = Box{Min: data[0].Tree, Max: data[0].Tree}
	for i := range data {
		r := &data[i]
		f.verts[i] = PointVertex{
			Position: r.Tree,
			Anchor:   r.Tree,
			Random:   r.Random,
			Size:     pointSizeBase + pointSizeRange*r.Random,
			Alpha:    shimmerBase,
		}
		f.bounds.Min = minVec(f.bounds.Min, r.Tree)
		f.bounds.Max = maxVec(f.bounds.Max, r.Tree)
	}
	f.fill(0)
	return f, nil
}

// Name returns the configured group name.
func (f *Foliage) Name() string { return f.cfg.Name }

// Config returns the construction parameters.
func (f *Foliage) Config() GroupConfig { return f.cfg }

// Len returns the number of points.
func (f *Foliage) Len() int { return len(f.data) }

// Dataset returns the fixed records. The returned slice MUST NOT be mutated.
func (f *Foliage) Dataset() Dataset { return f.data }

// Progress returns the group's morph cursor.
func (f *Foliage) Progress() float64 { return f.cursor.Value() }

// Uniforms returns the globals written by the last Update.
func (f *Foliage) Uniforms() Uniforms { return f.uniforms }

// Bounds returns the AABB of the assembled tree positions.
func (f *Foliage) Bounds() Box { return f.bounds }

// Vertices returns the point buffer recomputed by the last Update. The
// returned slice is reused every frame and MUST NOT be retained.
func (f *Foliage) Vertices() []PointVertex { return f.verts }

// Dirty reports whether the buffer changed since ClearDirty.
func (f *Foliage) Dirty() bool { return f.dirty }

// ClearDirty marks the buffer as consumed by the renderer.
func (f *Foliage) ClearDirty() { f.dirty = false }

// Update advances the morph cursor and recomputes every point in place.
func (f *Foliage) Update(dt, elapsed float64, state MorphState) {
	f.cursor.Step(state.Target(), dt)
	f.fill(elapsed)
}

func (f *Foliage) fill(elapsed float64) {
	progress := f.cursor.Value()
	f.uniforms = Uniforms{Time: elapsed, MorphProgress: progress}
	for i := range f.data {
		r := &f.data[i]
		v := &f.verts[i]
		v.Position = pointPosition(r, progress, elapsed)
		v.Alpha = pointAlpha(r.Random, elapsed)
	}
	f.dirty = true
}

// pointPosition is the displayed position of a foliage point: a staggered
// blend between its endpoints plus a radial breathing pulse, plus a vertical
// wind offset while mostly scattered.
func pointPosition(r *Record, progress, elapsed float64) r3.Vector {
	p := lerpVec(r.Scatter, r.Tree, pointBlend(r.Random, progress))

	breathe := math.Sin(elapsed*breatheFrequency+r.Random*phaseSpread) * breatheAmplitude
	p = p.Add(p.Normalize().Mul(breathe))

	if progress < floatCutoff {
		p.Y += math.Sin(elapsed+r.Random*phaseSpread) * floatAmplitude * (1 - progress)
	}
	return p
}

// pointBlend delays a point's assembly by up to foliageStagger of the
// group's progress and eases it in with smoothstep.
func pointBlend(random, progress float64) float64 {
	return smoothstep(random*foliageStagger, 1, progress)
}

// pointAlpha is the shimmer opacity, independent of the morph.
func pointAlpha(random, elapsed float64) float64 {
	return shimmerBase + shimmerDepth*math.Sin(elapsed*shimmerFrequency+random*2*phaseSpread)
}

func minVec(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxVec(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}
