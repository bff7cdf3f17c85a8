package evergreen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the readout text is rebuilt.
const fpsRefresh = 0.5

// fpsCounter throttles the FPS/TPS readout.
type fpsCounter struct {
	since float64
	text  string
	img   *ebiten.Image
}

func (f *fpsCounter) tick(dt float64) {
	f.since += dt
}

// drawFPS draws the readout in the top-left corner, refreshing its text
// about twice a second.
func (s *Scene) drawFPS(screen *ebiten.Image) {
	f := &s.fps
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.since = fpsRefresh
	}
	if f.since >= fpsRefresh {
		f.since = 0
		f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		f.img.Clear()
		// Semi-transparent background for readability
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, f.text)
	}
	screen.DrawImage(f.img, nil)
}
