package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

const (
	// ornamentBob is the vertical float amplitude, phased by record ID.
	ornamentBob = 0.05
	// Spin rates in rad/s before the per-axis weights below. Scattered
	// ornaments tumble; assembled ones barely turn.
	ornamentSpinScattered = 1.0
	ornamentSpinTree      = 0.2
	ornamentSpinWeightX   = 0.1
	ornamentSpinWeightY   = 0.2
)

// Instance is one ornament's render transform plus its material tag.
type Instance struct {
	Transform
	Kind Kind
}

// Ornaments is an instanced group. Each instance keeps its own current
// position and chases whichever endpoint the morph state selects.
type Ornaments struct {
	cfg       GroupConfig
	data      Dataset
	current   []VecCursor
	instances []Instance
	spinBlend Cursor
	spin      float64
	dirty     bool
}

// NewOrnaments builds the ornament dataset. Instances start at the given
// blend between their scatter and tree endpoints.
func NewOrnaments(cfg GroupConfig, rng *rand.Rand, start float64) (*Ornaments, error) {
	data, err := BuildDataset(cfg, rng)
	if err != nil {
		return nil, err
	}
	start = clamp01(start)
	o := &Ornaments{
		cfg:       cfg,
		data:      data,
		current:   make([]VecCursor, len(data)),
		instances: make([]Instance, len(data)),
		spinBlend: NewCursor(start, OrnamentLerpSpeed),
	}
	for i := range data {
		o.current[i].Current = lerpVec(data[i].Scatter, data[i].Tree, start)
		o.instances[i].Kind = data[i].Kind
	}
	o.fill(0)
	return o, nil
}

// Name returns the configured group name.
func (o *Ornaments) Name() string { return o.cfg.Name }

// Config returns the construction parameters.
func (o *Ornaments) Config() GroupConfig { return o.cfg }

// Len returns the number of instances.
func (o *Ornaments) Len() int { return len(o.data) }

// Dataset returns the fixed records. The returned slice MUST NOT be mutated.
func (o *Ornaments) Dataset() Dataset { return o.data }

// Instances returns the transform buffer recomputed by the last Update. The
// returned slice is reused every frame and MUST NOT be retained.
func (o *Ornaments) Instances() []Instance { return o.instances }

// Current returns instance i's interpolated position without secondary motion.
func (o *Ornaments) Current(i int) r3.Vector { return o.current[i].Current }

// Dirty reports whether the buffer changed since ClearDirty.
func (o *Ornaments) Dirty() bool { return o.dirty }

// ClearDirty marks the buffer as consumed by the renderer.
func (o *Ornaments) ClearDirty() { o.dirty = false }

// SpinRate returns the current tumble rate in rad/s.
func (o *Ornaments) SpinRate() float64 {
	return lerp(ornamentSpinScattered, ornamentSpinTree, o.spinBlend.Value())
}

// Update moves every instance toward its target endpoint and recomputes the
// transform buffer in place.
func (o *Ornaments) Update(dt, elapsed float64, state MorphState) {
	tree := state == TreeShape
	for i := range o.data {
		r := &o.data[i]
		target := r.Scatter
		if tree {
			target = r.Tree
		}
		o.current[i].Step(target, dt, OrnamentLerpSpeed)
	}

	// Spin is integrated rather than derived from elapsed time so changing
	// the rate never snaps the orientation.
	o.spinBlend.Step(state.Target(), dt)
	o.spin += dt * o.SpinRate()

	o.fill(elapsed)
}

func (o *Ornaments) fill(elapsed float64) {
	for i := range o.data {
		r := &o.data[i]
		pos := o.current[i].Current
		pos.Y += math.Sin(elapsed+float64(r.ID)) * ornamentBob
		o.instances[i].Transform = Transform{
			Position: pos,
			Rotation: r.Rotation.Add(Euler{
				X: o.spin * ornamentSpinWeightX,
				Y: o.spin * ornamentSpinWeightY,
			}),
			Scale: r.Scale,
		}
	}
	o.dirty = true
}
