// Evergreen opens a window with the morphing Christmas tree. Click the
// button or press Space to scatter and reassemble it; drag to orbit and use
// the wheel to zoom.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/phanxgames/evergreen"
)

func main() {
	var (
		configPath = flag.String("config", "", "scene config YAML (defaults built in)")
		seed       = flag.Uint64("seed", 0, "override the config seed when non-zero")
		debug      = flag.Bool("debug", false, "print frame timing to stderr")
		script     = flag.String("script", "", "run a YAML/JSON test script, then exit")
		fps        = flag.Bool("fps", false, "show the FPS counter")
		shots      = flag.String("screenshots", "screenshots", "directory for script screenshots")
		dump       = flag.Bool("dump-config", false, "print the effective config and exit")
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
	cfg.Debug = cfg.Debug || *debug

	if *dump {
		data, err := evergreen.MarshalSceneConfig(cfg)
		if err != nil {
			log.Fatalf("[Config] %v", err)
		}
		_, _ = os.Stdout.Write(data)
		return
	}

	scene, err := evergreen.NewScene(cfg)
	if err != nil {
		log.Fatalf("[Scene] %v", err)
	}
	scene.ScreenshotDir = *shots

	run := evergreen.DefaultRunConfig()
	run.ShowFPS = *fps

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("[Script] %v", err)
		}
		runner, err := evergreen.LoadTestScript(data)
		if err != nil {
			log.Fatalf("[Script] %s: %v", *script, err)
		}
		scene.SetTestRunner(runner)
		run.ExitWhenScriptDone = true
		log.Printf("[Script] running %s", *script)
	}

	log.Printf("[Scene] seed %d, %d foliage points, %d ornament groups",
		cfg.Seed, cfg.Foliage.Count, len(cfg.Ornaments))

	if err := evergreen.Run(scene, run); err != nil {
		if errors.Is(err, evergreen.ErrScriptFailed) {
			log.Printf("[Script] %v", err)
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
