package evergreen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/basicfont"
)

const (
	buttonWidth   = 220
	buttonHeight  = 44
	buttonMargin  = 48
	titleScale    = 3
	subtitleScale = 1.5
	labelScale    = 1.5
)

var (
	hudGold    = Hex(0xFFD700)
	hudDeep    = Hex(0x000502)
	hudSubtext = Color{1, 1, 1, 0.6}
)

// ButtonLabel returns the toggle button's caption: the action a press will
// perform from state.
func ButtonLabel(state MorphState) string {
	if state == TreeShape {
		return "Scatter Magic"
	}
	return "Assemble Tree"
}

// hud draws the title and the toggle button.
type hud struct {
	face   *text.GoXFace
	button Rect
	hover  bool
	down   bool

	// glow flashes on toggle and decays; labelAlpha fades the new caption in.
	glow       float64
	labelAlpha float64
	fade       *TweenGroup
}

func newHUD(w, h float64) hud {
	hd := hud{labelAlpha: 1}
	hd.layout(w, h)
	return hd
}

// layout centers the button near the bottom edge.
func (h *hud) layout(w, hgt float64) {
	h.button = Rect{
		X:      (w - buttonWidth) / 2,
		Y:      hgt - buttonMargin - buttonHeight,
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// onToggle starts the flash and caption fade.
func (h *hud) onToggle() {
	h.glow = 1
	h.labelAlpha = 0
	h.fade = TweenFields(0.6, ease.OutQuad,
		TweenPair{&h.glow, 0},
		TweenPair{&h.labelAlpha, 1},
	)
}

func (h *hud) update(dt float64) {
	if h.fade == nil {
		return
	}
	h.fade.Update(float32(dt))
	if h.fade.Done {
		h.fade = nil
	}
}

func (h *hud) ensureFace() *text.GoXFace {
	if h.face == nil {
		h.face = text.NewGoXFace(basicfont.Face7x13)
	}
	return h.face
}

func (h *hud) draw(screen *ebiten.Image, state MorphState) {
	face := h.ensureFace()
	w := float64(screen.Bounds().Dx())

	h.drawText(screen, face, "MERRY CHRISTMAS", w/2, 40, titleScale, hudGold)
	h.drawText(screen, face, "Evergreen", w/2, 40+13*titleScale+8, subtitleScale, hudSubtext)

	b := h.button
	fill := hudDeep
	fill.A = 0.6
	if h.hover {
		fill = fill.Lerp(hudGold, 0.15)
	}
	if h.down {
		fill = fill.Lerp(hudGold, 0.3)
	}
	fill = fill.Lerp(hudGold, h.glow*0.6)
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
		fill.toRGBA(), true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
		2, hudGold.toRGBA(), true)

	label := hudGold
	label.A = h.labelAlpha
	h.drawText(screen, face, ButtonLabel(state), b.X+b.Width/2, b.Y+(b.Height-13*labelScale)/2, labelScale, label)
}

// drawText draws s horizontally centered on cx with its top at y.
func (h *hud) drawText(screen *ebiten.Image, face text.Face, s string, cx, y, scale float64, c Color) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	text.Draw(screen, s, face, op)
}
