package evergreen

import (
	"math"

	"github.com/golang/geo/r3"
)

// Group is an animated element set driven once per frame. Update must not
// allocate and must tolerate any dt >= 0.
type Group interface {
	Name() string
	Update(dt, elapsed float64, state MorphState)
}

// Tree owns the morph state and every animated group of a scene. It has no
// rendering dependencies; Scene draws it and the terminal viewer prints it.
type Tree struct {
	cfg       SceneConfig
	morph     *Morph
	foliage   *Foliage
	ornaments []*Ornaments
	star      *Star
	sparkles  *Sparkles
	groups    []Group
	elapsed   float64
}

// NewTree validates cfg and builds every group from a single seeded source.
// Groups start scattered and assemble on the first frames unless
// cfg.StartAssembled is set.
func NewTree(cfg SceneConfig) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := 0.0
	if cfg.StartAssembled {
		start = 1
	}
	rng := NewRand(cfg.Seed)

	t := &Tree{cfg: cfg, morph: NewMorph()}
	var err error
	if t.foliage, err = NewFoliage(cfg.Foliage, rng, start); err != nil {
		return nil, err
	}
	t.groups = append(t.groups, t.foliage)
	for _, oc := range cfg.Ornaments {
		o, err := NewOrnaments(oc, rng, start)
		if err != nil {
			return nil, err
		}
		t.ornaments = append(t.ornaments, o)
		t.groups = append(t.groups, o)
	}
	if t.star, err = NewStar(cfg.Star, start); err != nil {
		return nil, err
	}
	t.groups = append(t.groups, t.star)
	if cfg.Sparkles.Count > 0 {
		if t.sparkles, err = NewSparkles(cfg.Sparkles, rng); err != nil {
			return nil, err
		}
		t.groups = append(t.groups, t.sparkles)
	}
	return t, nil
}

// AddGroup appends a custom group to the per-frame update list.
func (t *Tree) AddGroup(g Group) {
	if g == nil {
		panic("evergreen: AddGroup with nil group")
	}
	t.groups = append(t.groups, g)
}

// Step advances time by dt seconds and updates every group against the
// current morph state. Negative or NaN dt is treated as zero.
func (t *Tree) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	t.elapsed += dt
	state := t.morph.State()
	for _, g := range t.groups {
		g.Update(dt, t.elapsed, state)
	}
}

// Toggle flips the morph state and returns the new value.
func (t *Tree) Toggle() MorphState { return t.morph.Toggle() }

// State returns the current morph state.
func (t *Tree) State() MorphState { return t.morph.State() }

// Morph returns the underlying state machine, e.g. to register observers.
func (t *Tree) Morph() *Morph { return t.morph }

// Elapsed returns the accumulated animation time in seconds.
func (t *Tree) Elapsed() float64 { return t.elapsed }

// Config returns the validated configuration the tree was built from.
func (t *Tree) Config() SceneConfig { return t.cfg }

// Offset is the translation applied to every group at render time.
func (t *Tree) Offset() r3.Vector { return t.cfg.Offset }

// Foliage returns the point-cloud group.
func (t *Tree) Foliage() *Foliage { return t.foliage }

// Ornaments returns the instanced groups in config order.
func (t *Tree) Ornaments() []*Ornaments { return t.ornaments }

// Star returns the tree-top star.
func (t *Tree) Star() *Star { return t.star }

// Sparkles returns the ambient sparkle pool, or nil when disabled.
func (t *Tree) Sparkles() *Sparkles { return t.sparkles }

// Groups returns every group in update order.
func (t *Tree) Groups() []Group { return t.groups }

// Settled reports whether every morphing group is within tol of the
// endpoints selected by the current state. Secondary motion (bob, spin,
// breathing) is ignored.
func (t *Tree) Settled(tol float64) bool {
	state := t.morph.State()
	target := state.Target()
	if !t.foliage.cursor.Settled(target, tol) {
		return false
	}
	for _, o := range t.ornaments {
		for i := range o.data {
			end := o.data[i].Scatter
			if state == TreeShape {
				end = o.data[i].Tree
			}
			if o.current[i].Current.Sub(end).Norm() > tol {
				return false
			}
		}
	}
	end := t.cfg.Star.Scatter
	if state == TreeShape {
		end = t.cfg.Star.Tree
	}
	return t.star.cursor.Current.Sub(end).Norm() <= tol
}
