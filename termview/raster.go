package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r3"

	"github.com/phanxgames/evergreen"
)

// Glyphs by element kind. Foliage picks by brightness.
var foliageRamp = []rune{'.', ':', '*', '✦'}

const (
	glyphBox     = '■'
	glyphSphere  = '●'
	glyphStar    = '★'
	glyphSparkle = '·'
)

// Cell is one rasterized character.
type Cell struct {
	Rune  rune
	Style tcell.Style
	depth float64
}

// Raster is a depth-tested character buffer for one tree.
type Raster struct {
	w, h       int
	cells      []Cell
	cam        *evergreen.Camera
	background tcell.Color
}

// NewRaster creates a w x h raster viewed through a camera built from cfg.
func NewRaster(cfg evergreen.CameraConfig, background evergreen.Color, w, h int) *Raster {
	r := &Raster{
		cam:        evergreen.NewCamera(cfg, evergreen.Rect{}),
		background: toTcell(background),
	}
	r.Resize(w, h)
	return r
}

// Camera returns the raster's orbit camera.
func (r *Raster) Camera() *evergreen.Camera { return r.cam }

// Size returns the grid dimensions in cells.
func (r *Raster) Size() (int, int) { return r.w, r.h }

// Resize reallocates the grid and refits the camera viewport.
func (r *Raster) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	r.w, r.h = w, h
	if cap(r.cells) >= w*h {
		r.cells = r.cells[:w*h]
	} else {
		r.cells = make([]Cell, w*h)
	}
	r.cam.Viewport = evergreen.Rect{Width: float64(w), Height: float64(2 * h)}
	r.cam.MarkDirty()
}

// Cell returns the cell at (x, y); out-of-range coordinates return a blank.
func (r *Raster) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return Cell{Rune: ' '}
	}
	return r.cells[y*r.w+x]
}

// Render clears the grid and rasterizes every group of tree.
func (r *Raster) Render(tree *evergreen.Tree) {
	blank := Cell{Rune: ' ', Style: tcell.StyleDefault.Background(r.background), depth: math.Inf(1)}
	for i := range r.cells {
		r.cells[i] = blank
	}
	off := tree.Offset()

	if sp := tree.Sparkles(); sp != nil {
		col := sp.Config().Color
		for _, v := range sp.Vertices() {
			r.plot(v.Position.Add(off), glyphSparkle, col.Lerp(evergreen.Color{A: 1}, 1-v.Alpha))
		}
	}

	f := tree.Foliage()
	base := f.Config().Color
	for _, v := range f.Vertices() {
		idx := int(v.Alpha * float64(len(foliageRamp)))
		idx = min(max(idx, 0), len(foliageRamp)-1)
		lit := base.Lerp(evergreen.Hex(0xFFD700), 0.5*v.Random)
		r.plot(v.Position.Add(off), foliageRamp[idx], lit)
	}

	for _, o := range tree.Ornaments() {
		glyph := glyphSphere
		if o.Config().Kind == evergreen.KindBox {
			glyph = glyphBox
		}
		col := o.Config().Color
		for _, inst := range o.Instances() {
			r.plot(inst.Position.Add(off), glyph, col)
		}
	}

	star := tree.Star()
	r.plot(star.Transform().Position.Add(off), glyphStar, star.Config().Color)
}

// plot depth-tests one point against the grid.
func (r *Raster) plot(p r3.Vector, glyph rune, c evergreen.Color) {
	sx, sy, depth, ok := r.cam.Project(p)
	if !ok {
		return
	}
	x, y := int(math.Floor(sx)), int(math.Floor(sy/2))
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	cell := &r.cells[y*r.w+x]
	if depth >= cell.depth {
		return
	}
	cell.Rune = glyph
	cell.Style = tcell.StyleDefault.Foreground(toTcell(c)).Background(r.background)
	cell.depth = depth
}

// Draw copies the grid to screen. The caller calls screen.Show.
func (r *Raster) Draw(screen tcell.Screen) {
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			c := &r.cells[y*r.w+x]
			screen.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
}

func toTcell(c evergreen.Color) tcell.Color {
	ch := func(v float64) int32 { return int32(math.Round(math.Max(0, math.Min(1, v)) * 255)) }
	return tcell.NewRGBColor(ch(c.R), ch(c.G), ch(c.B))
}
