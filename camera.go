package evergreen

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraConfig describes the orbit camera's starting pose and limits.
type CameraConfig struct {
	// Position is the initial eye position; it is converted to an orbit
	// around Target.
	Position r3.Vector `yaml:"position"`
	// Target is the point the camera orbits and looks at.
	Target r3.Vector `yaml:"target"`
	// FOV is the vertical field of view in degrees.
	FOV float64 `yaml:"fov"`
	// AutoRotateSpeed matches the orbit-controls convention: 1.0 is one
	// revolution per minute.
	AutoRotateSpeed float64 `yaml:"autoRotateSpeed"`
	// AutoRotateRamp is how long, in seconds, auto-rotation takes to start
	// or stop.
	AutoRotateRamp float64 `yaml:"autoRotateRamp"`
	// MinDistance and MaxDistance clamp zoom.
	MinDistance float64 `yaml:"minDistance"`
	MaxDistance float64 `yaml:"maxDistance"`
	// MinPolar and MaxPolar clamp the angle from the +Y axis, in radians.
	MinPolar float64 `yaml:"minPolar"`
	MaxPolar float64 `yaml:"maxPolar"`
	// Near is the closest depth that is still drawn.
	Near float64 `yaml:"near"`
}

// DefaultCameraConfig returns a camera slightly above the tree looking at the
// origin from 22 units away.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:        r3.Vector{Y: 2, Z: 22},
		FOV:             45,
		AutoRotateSpeed: 0.5,
		AutoRotateRamp:  1.2,
		MinDistance:     10,
		MaxDistance:     35,
		MinPolar:        math.Pi / 4,
		MaxPolar:        math.Pi / 2,
		Near:            0.1,
	}
}

// Validate rejects configurations that cannot produce a projection.
func (c CameraConfig) Validate() error {
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return invalidf("camera: fov %v must be in (0, 180)", c.FOV)
	case !positive(c.MinDistance) || c.MaxDistance < c.MinDistance:
		return invalidf("camera: distance range [%v, %v] must be positive and ordered", c.MinDistance, c.MaxDistance)
	case c.MinPolar < 0 || c.MaxPolar > math.Pi || c.MaxPolar < c.MinPolar:
		return invalidf("camera: polar range [%v, %v] must lie in [0, π]", c.MinPolar, c.MaxPolar)
	case !positive(c.Near):
		return invalidf("camera: near %v must be positive", c.Near)
	}
	return nil
}

// Camera is a perspective orbit camera. Azimuth and Polar are spherical
// angles of the eye around Target; Polar is measured from +Y.
type Camera struct {
	Target   r3.Vector
	Distance float64
	Azimuth  float64
	Polar    float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	cfg CameraConfig

	// autoRotate scales AutoRotateSpeed in [0, 1]; spinTween ramps it.
	autoRotate float64
	spinTween  *gween.Tween

	eye, right, up, forward r3.Vector
	focal                   float64
	dirty                   bool
}

// NewCamera converts cfg.Position into orbit coordinates around cfg.Target.
func NewCamera(cfg CameraConfig, viewport Rect) *Camera {
	off := cfg.Position.Sub(cfg.Target)
	dist := off.Norm()
	c := &Camera{
		Target:   cfg.Target,
		Distance: dist,
		Azimuth:  math.Atan2(off.X, off.Z),
		FOV:      cfg.FOV,
		Viewport: viewport,
		cfg:      cfg,
		dirty:    true,
	}
	if dist > 0 {
		c.Polar = math.Acos(clampRange(off.Y/dist, -1, 1))
	}
	c.clamp()
	return c
}

// SetAutoRotate ramps auto-rotation on or off over AutoRotateRamp seconds.
func (c *Camera) SetAutoRotate(on bool) {
	to := 0.0
	if on {
		to = 1
	}
	if c.cfg.AutoRotateRamp <= 0 {
		c.autoRotate = to
		c.spinTween = nil
		return
	}
	c.spinTween = gween.New(float32(c.autoRotate), float32(to), float32(c.cfg.AutoRotateRamp), ease.InOutSine)
}

// SnapAutoRotate sets auto-rotation on or off without a ramp.
func (c *Camera) SnapAutoRotate(on bool) {
	c.spinTween = nil
	c.autoRotate = 0
	if on {
		c.autoRotate = 1
	}
}

// AutoRotate returns the current auto-rotation factor in [0, 1].
func (c *Camera) AutoRotate() float64 {
	return c.autoRotate
}

// Orbit rotates the camera by a pointer drag of (dx, dy) pixels. A drag the
// full viewport height turns one revolution.
func (c *Camera) Orbit(dx, dy float64) {
	h := c.Viewport.Height
	if h <= 0 {
		return
	}
	c.Azimuth -= 2 * math.Pi * dx / h
	c.Polar -= 2 * math.Pi * dy / h
	c.clamp()
	c.dirty = true
}

// Zoom dollies by wheel steps; positive steps move closer.
func (c *Camera) Zoom(steps float64) {
	c.Distance *= math.Pow(0.95, steps)
	c.clamp()
	c.dirty = true
}

// Update advances auto-rotation by dt seconds. Scene calls it every tick.
func (c *Camera) Update(dt float64) {
	if c.spinTween != nil {
		v, done := c.spinTween.Update(float32(dt))
		c.autoRotate = float64(v)
		if done {
			c.spinTween = nil
		}
	}
	if c.autoRotate > 0 && c.cfg.AutoRotateSpeed != 0 {
		// One revolution per minute per unit of speed.
		c.Azimuth -= dt * 2 * math.Pi / 60 * c.cfg.AutoRotateSpeed * c.autoRotate
		c.dirty = true
	}
}

func (c *Camera) clamp() {
	c.Distance = clampRange(c.Distance, c.cfg.MinDistance, c.cfg.MaxDistance)
	c.Polar = clampRange(c.Polar, c.cfg.MinPolar, c.cfg.MaxPolar)
	c.Azimuth = math.Remainder(c.Azimuth, 2*math.Pi)
}

// Eye returns the world-space eye position.
func (c *Camera) Eye() r3.Vector {
	c.computeBasis()
	return c.eye
}

// computeBasis recomputes the cached view basis if dirty.
func (c *Camera) computeBasis() {
	if !c.dirty {
		return
	}
	c.dirty = false

	sinP, cosP := math.Sincos(c.Polar)
	sinA, cosA := math.Sincos(c.Azimuth)
	c.eye = c.Target.Add(r3.Vector{
		X: c.Distance * sinP * sinA,
		Y: c.Distance * cosP,
		Z: c.Distance * sinP * cosA,
	})
	c.forward = c.Target.Sub(c.eye).Normalize()
	c.right = c.forward.Cross(r3.Vector{Y: 1}).Normalize()
	c.up = c.right.Cross(c.forward)
	c.focal = (c.Viewport.Height / 2) / math.Tan(c.FOV*math.Pi/360)
}

// MarkDirty forces a recomputation of the view basis. Call after changing
// exported fields directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// Project maps a world point to screen pixels. depth is the distance along
// the view axis; ok is false for points closer than the near plane.
func (c *Camera) Project(p r3.Vector) (sx, sy, depth float64, ok bool) {
	c.computeBasis()
	v := p.Sub(c.eye)
	depth = v.Dot(c.forward)
	if depth < c.cfg.Near {
		return 0, 0, depth, false
	}
	s := c.focal / depth
	sx = c.Viewport.X + c.Viewport.Width/2 + v.Dot(c.right)*s
	sy = c.Viewport.Y + c.Viewport.Height/2 - v.Dot(c.up)*s
	return sx, sy, depth, true
}

// PixelsPerUnit returns how many screen pixels one world unit spans at depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	c.computeBasis()
	if depth <= 0 {
		return 0
	}
	return c.focal / depth
}

// Facing reports whether a surface at p with outward normal n faces the eye.
func (c *Camera) Facing(p, n r3.Vector) bool {
	c.computeBasis()
	return n.Dot(c.eye.Sub(p)) > 0
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
