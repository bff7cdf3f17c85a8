package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

// spiralTurns is the angular sweep of a spiraled cone from base to tip,
// in radians (ten full turns).
const spiralTurns = 20 * math.Pi

// spiralJitter is the random angular offset added to each spiral sample.
const spiralJitter = 0.5

// NewRand returns a deterministic PCG generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ScatterPoint samples a point uniformly by volume inside a sphere of the
// given radius centered on the origin.
//
// The polar angle is drawn as acos(2v-1) so directions do not bunch at the
// poles, and the distance as radius*cbrt(w) because shell volume grows with r³.
func ScatterPoint(rng *rand.Rand, radius float64) r3.Vector {
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)
	r := math.Cbrt(rng.Float64()) * radius

	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return r3.Vector{
		X: r * sinPhi * cosTheta,
		Y: r * sinPhi * sinTheta,
		Z: r * cosPhi,
	}
}

// TreePoint samples a point inside a cone standing on the XZ plane. The base
// sits at yOffset and the tip at yOffset+height; the radius tapers linearly
// from baseRadius to zero.
//
// With spiral set the angle is tied to height, which draws a garland winding
// around the trunk; otherwise the slice is filled uniformly. Distance from the
// axis is sqrt(u)*radius so each disk slice has uniform areal density.
func TreePoint(rng *rand.Rand, height, baseRadius, yOffset float64, spiral bool) r3.Vector {
	h := rng.Float64()
	rAtHeight := baseRadius * (1 - h)

	var theta float64
	if spiral {
		theta = h*spiralTurns + rng.Float64()*spiralJitter
	} else {
		theta = rng.Float64() * 2 * math.Pi
	}

	r := math.Sqrt(rng.Float64()) * rAtHeight
	sin, cos := math.Sincos(theta)
	return r3.Vector{
		X: r * cos,
		Y: h*height + yOffset,
		Z: r * sin,
	}
}
