package evergreen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrScriptFailed is returned by Run when a test script's expectations fail.
var ErrScriptFailed = errors.New("test script failed")

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if r := g.scene.testRunner; r != nil && g.cfg.ExitWhenScriptDone && r.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and drives scene until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if scene == nil {
		panic("evergreen: Run with nil scene")
	}
	def := DefaultRunConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	scene.ShowFPS = scene.ShowFPS || cfg.ShowFPS

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(&game{scene: scene, cfg: cfg}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if r := scene.testRunner; r != nil && len(r.Failures()) > 0 {
		return fmt.Errorf("%w: %s", ErrScriptFailed, strings.Join(r.Failures(), "; "))
	}
	return nil
}
