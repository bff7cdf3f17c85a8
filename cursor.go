package evergreen

import "github.com/golang/geo/r3"

// Group speeds, in 1/s, for the exponential approach toward the target.
const (
	FoliageMorphSpeed  = 2.0
	OrnamentLerpSpeed  = 2.5
	StarLerpSpeed      = 2.0
	defaultCursorSpeed = 2.0
)

// Cursor is a group's scalar morph progress in [0, 1]. It only ever moves by
// a fraction of the remaining distance per step, so flipping the target never
// makes it jump.
type Cursor struct {
	value float64
	speed float64
}

// NewCursor returns a cursor starting at initial (clamped to [0, 1]) that
// approaches its target at speed per second.
func NewCursor(initial, speed float64) Cursor {
	if speed <= 0 {
		speed = defaultCursorSpeed
	}
	return Cursor{value: clamp01(initial), speed: speed}
}

// Value returns the current progress.
func (c *Cursor) Value() float64 {
	return c.value
}

// Speed returns the approach rate in 1/s.
func (c *Cursor) Speed() float64 {
	return c.speed
}

// Step advances the cursor toward target by dt seconds and returns the new
// value: v += (target - v) * min(1, dt*speed).
func (c *Cursor) Step(target, dt float64) float64 {
	c.value = clamp01(c.value + (clamp01(target)-c.value)*approachFactor(dt, c.speed))
	return c.value
}

// Settled reports whether the cursor is within tol of target.
func (c *Cursor) Settled(target, tol float64) bool {
	d := c.value - target
	return d <= tol && d >= -tol
}

// VecCursor is the per-instance analogue of Cursor: a current position that
// approaches one of two endpoints.
type VecCursor struct {
	Current r3.Vector
}

// Step moves the position toward target with the same capped exponential
// weight Cursor uses.
func (c *VecCursor) Step(target r3.Vector, dt, speed float64) r3.Vector {
	c.Current = lerpVec(c.Current, target, approachFactor(dt, speed))
	return c.Current
}
