package evergreen

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r3"
	"github.com/hajimehoshi/ebiten/v2"
)

// Atlas layout: three square cells side by side on one page so every draw
// in a frame samples the same image.
const (
	atlasCell   = 32
	cellDot     = 0 // soft radial glow for points and halos
	cellBall    = 1 // lit sphere for baubles
	cellSolid   = 2 // opaque white for flat-shaded faces
	atlasWidth  = atlasCell * 3
	atlasHeight = atlasCell
)

// cellUV returns the source rectangle of an atlas cell. The solid cell is
// sampled well inside its edges so filtering never picks up a neighbour.
func cellUV(cell int) (u0, v0, u1, v1 float32) {
	x := float32(cell * atlasCell)
	if cell == cellSolid {
		return x + 8, 8, x + atlasCell - 8, atlasCell - 8
	}
	return x, 0, x + atlasCell, atlasCell
}

// ensureAtlas lazily uploads the procedural texture page.
func (s *Scene) ensureAtlas() *ebiten.Image {
	if s.atlas == nil {
		s.atlas = ebiten.NewImageFromImage(buildAtlas())
	}
	return s.atlas
}

// buildAtlas paints the three material cells. Pixels are premultiplied.
func buildAtlas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, atlasWidth, atlasHeight))
	const half = atlasCell / 2.0
	half3 := r3.Vector{X: -0.4, Y: 0.6, Z: 0.7}.Normalize()
	view := r3.Vector{Z: 1}
	highlight := half3.Add(view).Normalize()
	for y := 0; y < atlasCell; y++ {
		for x := 0; x < atlasCell; x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			d := math.Hypot(dx, dy)

			// Soft dot: bright core falling off to the rim.
			glow := clamp01(1 - d)
			glow = math.Pow(glow, 1.5)
			img.SetRGBA(cellDot*atlasCell+x, y, premul(1, 1, 1, glow))

			// Ball: diffuse plus a specular glint, antialiased edge.
			if d < 1 {
				nz := math.Sqrt(1 - d*d)
				n := r3.Vector{X: dx, Y: -dy, Z: nz}
				diff := math.Max(0, n.Dot(half3))
				glint := math.Pow(math.Max(0, n.Dot(highlight)), 24)
				lum := clamp01(ambientLight + 0.7*diff)
				edge := clamp01((1 - d) * half)
				white := clamp01(glint * 0.9)
				img.SetRGBA(cellBall*atlasCell+x, y,
					premul(lum+white, lum+white, lum+white, edge))
			}

			img.SetRGBA(cellSolid*atlasCell+x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	return img
}

func premul(r, g, b, a float64) color.RGBA {
	a = clamp01(a)
	return color.RGBA{
		R: uint8(clamp01(r) * a * 255),
		G: uint8(clamp01(g) * a * 255),
		B: uint8(clamp01(b) * a * 255),
		A: uint8(a * 255),
	}
}
