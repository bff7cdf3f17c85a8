// Package evergreen renders a decorative 3D Christmas tree for [Ebitengine]
// that morphs between a scattered cloud and an assembled cone.
//
// Every element of the tree carries two fixed positions generated once at
// startup: a point inside a sphere (scatter) and a point inside a cone
// (tree). Each frame the current positions are interpolated toward the
// endpoint selected by the [MorphState], so flipping the state mid-flight
// reverses smoothly without jumps.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene, err := evergreen.NewScene(evergreen.DefaultSceneConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	evergreen.Run(scene, evergreen.DefaultRunConfig())
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Groups
//
// A [Tree] owns the [Morph] state machine and its groups:
//
//   - [Foliage] is a point cloud whose points assemble with a per-point
//     stagger, breathe and shimmer.
//   - [Ornaments] is an instanced set of boxes or spheres that lerp per
//     instance, bob and spin.
//   - [Star] sits on top of the tree and spins slowly.
//   - [Sparkles] drift upward regardless of the morph state.
//
// All of them implement [Group]. Custom groups can be added with
// [Tree.AddGroup]. A Tree has no rendering dependencies; the termview
// package draws the same tree into a terminal.
//
// # Toggling
//
// [Scene.Toggle] (also bound to the on-screen button, Space and Enter) flips
// the state. [Tree.Toggle] may be called from any goroutine; the scene
// notices the change on its next tick.
//
// # Configuration
//
// [SceneConfig] holds the seed, every group's generation parameters, the
// camera and the colors. [LoadSceneConfig] reads a YAML file over
// [DefaultSceneConfig], so a file only needs the fields it changes:
//
//	seed: 42
//	foliage:
//	  count: 8000
//	background: "#000502"
//
// Invalid values are reported with errors wrapping [ErrInvalidConfig].
//
// # Scripted runs
//
// [LoadTestScript] parses a list of actions (toggle, click, drag, zoom,
// wait, waitSettled, screenshot, expect). Attach it with
// [Scene.SetTestRunner] to drive the scene headlessly in CI or capture
// screenshots.
//
// [Ebitengine]: https://ebitengine.org
package evergreen
