// Evergreen-term draws the morphing tree in a terminal. Space toggles
// between the scattered cloud and the tree, arrows orbit, +/- zoom and q
// quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/termview"
)

const (
	frameRate  = 30
	orbitStep  = 3.0 // raster pixels per arrow press
	statusRows = 1
)

type viewer struct {
	screen tcell.Screen
	tree   *evergreen.Tree
	raster *termview.Raster
	chime  *termview.Chime
	seen   evergreen.MorphState
	status tcell.Style
}

func main() {
	var (
		configPath = flag.String("config", "", "scene config YAML (defaults built in)")
		seed       = flag.Uint64("seed", 0, "override the config seed when non-zero")
		foliage    = flag.Int("foliage", 2500, "foliage points; the terminal needs far fewer than the window")
		sound      = flag.Bool("sound", true, "play a chime on each toggle")
	)
	flag.Parse()

	cfg := evergreen.DefaultSceneConfig()
	if *configPath != "" {
		var err error
		if cfg, err = evergreen.LoadSceneConfig(*configPath); err != nil {
			log.Fatalf("[Config] %v", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *foliage > 0 {
		cfg.Foliage.Count = *foliage
	}

	tree, err := evergreen.NewTree(cfg)
	if err != nil {
		log.Fatalf("[Scene] %v", err)
	}

	var chime *termview.Chime
	if *sound {
		if chime, err = termview.NewChime(); err != nil {
			// Non-fatal, the viewer runs silently.
			log.Printf("[Audio] %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("[Screen] %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("[Screen] %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	w, h := screen.Size()
	v := &viewer{
		screen: screen,
		tree:   tree,
		raster: termview.NewRaster(cfg.Camera, cfg.Background, w, h-statusRows),
		chime:  chime,
		seen:   tree.State(),
		status: tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 215, 0)),
	}
	v.raster.Camera().SnapAutoRotate(v.seen == evergreen.TreeShape)
	v.run()
}

func (v *viewer) run() {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			v.frame(dt)
		}
	}
}

// handle applies one terminal event; false means quit.
func (v *viewer) handle(ev tcell.Event) bool {
	cam := v.raster.Camera()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		v.raster.Resize(w, h-statusRows)
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			v.tree.Toggle()
		case tcell.KeyLeft:
			cam.Orbit(-orbitStep, 0)
		case tcell.KeyRight:
			cam.Orbit(orbitStep, 0)
		case tcell.KeyUp:
			cam.Orbit(0, -orbitStep)
		case tcell.KeyDown:
			cam.Orbit(0, orbitStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				v.tree.Toggle()
			case '+', '=':
				cam.Zoom(1)
			case '-', '_':
				cam.Zoom(-1)
			}
		}
	}
	return true
}

func (v *viewer) frame(dt float64) {
	if state := v.tree.State(); state != v.seen {
		v.seen = state
		v.raster.Camera().SetAutoRotate(state == evergreen.TreeShape)
		v.chime.Play(state)
	}
	v.tree.Step(dt)
	v.raster.Camera().Update(dt)
	v.raster.Render(v.tree)

	v.screen.Clear()
	v.raster.Draw(v.screen)
	_, rows := v.raster.Size()
	line := fmt.Sprintf(" [space] %s   [arrows] orbit   [+/-] zoom   [q] quit ", evergreen.ButtonLabel(v.seen))
	for i, r := range line {
		v.screen.SetContent(i, rows, r, nil, v.status)
	}
	v.screen.Show()
}
