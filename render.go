package evergreen

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/golang/geo/r3"
	"github.com/hajimehoshi/ebiten/v2"
)

// Material tuning.
const (
	// pointSizeScale converts a point's size to pixels at unit depth for a
	// 720-pixel-tall viewport.
	pointSizeScale    = 10.0
	referenceHeight   = 720.0
	minPointPixels    = 1.0
	foliageGoldMix    = 0.35
	sphereRadius      = 0.5
	boxHalf           = 0.5
	starRadius        = 0.8
	starHaloRadius    = 2.4
	starHaloAlpha     = 0.35
	ambientLight      = 0.3
	starAmbientLight  = 0.65
	solidCommandGuess = 512
)

// lightDir points from the tree toward the key light.
var lightDir = r3.Vector{X: 10, Y: 20, Z: 10}.Normalize()

var goldTint = Hex(0xFFD700)

// solidKind selects how a solidCommand is tessellated.
type solidKind uint8

const (
	solidBox solidKind = iota
	solidSphere
	solidStar
)

// solidCommand is one depth-sorted ornament or star draw.
type solidCommand struct {
	depth     float64
	kind      solidKind
	transform Transform // world space, offset applied
	color     Color
}

// Draw renders the scene onto screen: foliage and sparkles as additive
// points, then ornaments and the star sorted back to front, then the HUD.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	b := screen.Bounds()
	s.setViewport(float64(b.Dx()), float64(b.Dy()))
	screen.Fill(s.ClearColor.toRGBA())
	atlas := s.ensureAtlas()

	foliage := s.tree.Foliage()
	tint := foliage.Config().Color.Lerp(goldTint, foliageGoldMix)
	s.appendPoints(foliage.Vertices(), tint)
	if sp := s.tree.Sparkles(); sp != nil {
		cfg := sp.Config()
		s.appendPoints(sp.Vertices(), cfg.Color)
	}
	stats.points = len(s.batchVerts) / 4
	s.collectSolids()
	stats.solids = len(s.solids)

	if s.debug {
		stats.projectTime = time.Since(t0)
		t0 = time.Now()
	}

	s.flushBatch(screen, atlas, BlendAdd)
	s.appendHalo()
	s.flushBatch(screen, atlas, BlendAdd)
	for i := range s.solids {
		s.appendSolid(&s.solids[i])
	}
	s.flushBatch(screen, atlas, BlendNormal)
	foliage.ClearDirty()
	for _, o := range s.tree.Ornaments() {
		o.ClearDirty()
	}

	s.hud.draw(screen, s.tree.State())
	if s.ShowFPS {
		s.drawFPS(screen)
	}
	s.flushScreenshots(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCalls = s.drawCalls
		s.debugLog(stats)
	}
	s.drawCalls = 0
}

// setViewport resizes the camera and HUD when the screen size changes.
func (s *Scene) setViewport(w, h float64) {
	vp := s.camera.Viewport
	if vp.Width == w && vp.Height == h {
		return
	}
	s.camera.Viewport = Rect{Width: w, Height: h}
	s.camera.MarkDirty()
	s.hud.layout(w, h)
}

// appendPoints projects a point buffer and appends one soft-dot quad per
// visible point, tinted by c and faded by the point's shimmer alpha.
func (s *Scene) appendPoints(verts []PointVertex, c Color) {
	cam := s.camera
	off := s.tree.Offset()
	sizeScale := pointSizeScale * cam.Viewport.Height / referenceHeight
	for i := range verts {
		v := &verts[i]
		sx, sy, depth, ok := cam.Project(v.Position.Add(off))
		if !ok {
			continue
		}
		px := math.Max(v.Size*sizeScale/depth, minPointPixels)
		a := c.A * v.Alpha
		s.appendQuad(sx, sy, px/2, cellDot, Color{c.R, c.G, c.B, a})
	}
}

// collectSolids gathers every ornament instance and the star into
// s.solids, sorted far to near.
func (s *Scene) collectSolids() {
	s.solids = s.solids[:0]
	off := s.tree.Offset()
	for _, o := range s.tree.Ornaments() {
		kind := solidSphere
		if o.Config().Kind == KindBox {
			kind = solidBox
		}
		col := o.Config().Color
		for _, inst := range o.Instances() {
			s.pushSolid(kind, inst.Transform, off, col)
		}
	}
	star := s.tree.Star()
	s.pushSolid(solidStar, star.Transform(), off, star.Config().Color)

	slices.SortFunc(s.solids, func(a, b solidCommand) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

func (s *Scene) pushSolid(kind solidKind, tr Transform, off r3.Vector, c Color) {
	tr.Position = tr.Position.Add(off)
	_, _, depth, ok := s.camera.Project(tr.Position)
	if !ok {
		return
	}
	s.solids = append(s.solids, solidCommand{depth: depth, kind: kind, transform: tr, color: c})
}

// appendHalo adds the star's additive glow.
func (s *Scene) appendHalo() {
	star := s.tree.Star()
	tr := star.Transform()
	sx, sy, depth, ok := s.camera.Project(tr.Position.Add(s.tree.Offset()))
	if !ok {
		return
	}
	r := starHaloRadius * tr.Scale * s.camera.PixelsPerUnit(depth)
	c := star.Config().Color
	c.A *= starHaloAlpha
	s.appendQuad(sx, sy, r, cellDot, c)
}

func (s *Scene) appendSolid(cmd *solidCommand) {
	switch cmd.kind {
	case solidBox:
		s.appendBox(cmd)
	case solidSphere:
		sx, sy, depth, _ := s.camera.Project(cmd.transform.Position)
		r := sphereRadius * cmd.transform.Scale * s.camera.PixelsPerUnit(depth)
		s.appendQuad(sx, sy, r, cellBall, cmd.color)
	case solidStar:
		s.appendStar(cmd)
	}
}

// boxFaces lists each cube face as an outward normal and its four corners
// in winding order.
var boxFaces = [6]struct {
	normal  r3.Vector
	corners [4]r3.Vector
}{
	{r3.Vector{X: 1}, [4]r3.Vector{{X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}}},
	{r3.Vector{X: -1}, [4]r3.Vector{{X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}}},
	{r3.Vector{Y: 1}, [4]r3.Vector{{X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}}},
	{r3.Vector{Y: -1}, [4]r3.Vector{{X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}}},
	{r3.Vector{Z: 1}, [4]r3.Vector{{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}},
	{r3.Vector{Z: -1}, [4]r3.Vector{{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}}},
}

// appendBox emits the camera-facing faces of a flat-shaded cube. Faces of a
// convex solid never overlap once back faces are culled, so no per-face
// sort is needed.
func (s *Scene) appendBox(cmd *solidCommand) {
	tr := cmd.transform
	for fi := range boxFaces {
		f := &boxFaces[fi]
		n := tr.Rotation.Apply(f.normal)
		center := tr.Apply(f.normal.Mul(boxHalf))
		if !s.camera.Facing(center, n) {
			continue
		}
		shade := ambientLight + (1-ambientLight)*math.Max(0, n.Dot(lightDir))
		var pts [4]Vec2
		visible := true
		for i, c := range f.corners {
			sx, sy, _, ok := s.camera.Project(tr.Apply(c.Mul(boxHalf)))
			if !ok {
				visible = false
				break
			}
			pts[i] = Vec2{sx, sy}
		}
		if !visible {
			continue
		}
		c := shadeColor(cmd.color, shade)
		s.appendTriangle(pts[0], pts[1], pts[2], c)
		s.appendTriangle(pts[0], pts[2], pts[3], c)
	}
}

// starVerts are the octahedron's six tips; starFaces index them.
var (
	starVerts = [6]r3.Vector{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}}
	starFaces = [8][3]int{
		{0, 2, 4}, {4, 2, 1}, {1, 2, 5}, {5, 2, 0},
		{4, 3, 0}, {1, 3, 4}, {5, 3, 1}, {0, 3, 5},
	}
)

// appendStar emits the star as a flat-shaded octahedron.
func (s *Scene) appendStar(cmd *solidCommand) {
	tr := cmd.transform
	var world [6]r3.Vector
	var screen [6]Vec2
	for i, v := range starVerts {
		world[i] = tr.Apply(v.Mul(starRadius))
		sx, sy, _, ok := s.camera.Project(world[i])
		if !ok {
			return
		}
		screen[i] = Vec2{sx, sy}
	}
	for _, f := range starFaces {
		a, b, c := world[f[0]], world[f[1]], world[f[2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		if !s.camera.Facing(center, n) {
			continue
		}
		shade := starAmbientLight + (1-starAmbientLight)*math.Max(0, n.Dot(lightDir))
		s.appendTriangle(screen[f[0]], screen[f[1]], screen[f[2]], shadeColor(cmd.color, shade))
	}
}

func shadeColor(c Color, shade float64) Color {
	return Color{c.R * shade, c.G * shade, c.B * shade, c.A}
}
