package evergreen

import (
	"math"

	"github.com/golang/geo/r3"
)

// Euler is an XYZ-ordered rotation in radians.
type Euler struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two rotations.
func (e Euler) Add(o Euler) Euler {
	return Euler{e.X + o.X, e.Y + o.Y, e.Z + o.Z}
}

// Apply rotates v by e. Composition order is Rx * Ry * Rz, so Z is applied
// first and X last.
func (e Euler) Apply(v r3.Vector) r3.Vector {
	sx, cx := math.Sincos(e.X)
	sy, cy := math.Sincos(e.Y)
	sz, cz := math.Sincos(e.Z)

	// Rz
	x := v.X*cz - v.Y*sz
	y := v.X*sz + v.Y*cz
	z := v.Z

	// Ry
	x, z = x*cy+z*sy, -x*sy+z*cy

	// Rx
	y, z = y*cx-z*sx, y*sx+z*cx

	return r3.Vector{X: x, Y: y, Z: z}
}

// Transform is the per-element render output: world position, orientation
// and uniform scale.
type Transform struct {
	Position r3.Vector
	Rotation Euler
	Scale    float64
}

// Apply maps a model-space vertex into world space: scale, rotate, translate.
func (t Transform) Apply(v r3.Vector) r3.Vector {
	return t.Rotation.Apply(v.Mul(t.Scale)).Add(t.Position)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpVec linearly interpolates between a and b by t.
func lerpVec(a, b r3.Vector, t float64) r3.Vector {
	return r3.Vector{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// smoothstep is the Hermite threshold used for staggered assembly. Returns 0
// below edge0, 1 above edge1.
func smoothstep(edge0, edge1, x float64) float64 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// approachFactor is the per-frame exponential smoothing weight for a given
// speed, capped at 1 so a long frame lands on the target instead of past it.
func approachFactor(dt, speed float64) float64 {
	f := dt * speed
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}
