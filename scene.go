package evergreen

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration. When set on a
// Scene, every morph state change is forwarded to the store from the frame
// goroutine.
type EntityStore interface {
	EmitMorph(event MorphEvent)
}

// MorphEvent describes one observed state change.
type MorphEvent struct {
	State MorphState
	// Toggles is the total number of state changes so far.
	Toggles uint64
	// Elapsed is the scene time at which the change was observed.
	Elapsed float64
}

const (
	defaultSolidCap   = 1024
	defaultScreenshot = "screenshots"
)

// Scene is the top-level object that owns the tree, the camera, the HUD,
// input state and render buffers. Drive it with Update and Draw from an
// ebiten.Game, or call Run.
type Scene struct {
	tree   *Tree
	camera *Camera
	hud    hud
	store  EntityStore
	debug  bool

	// ClearColor fills the screen before anything is drawn.
	ClearColor Color
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// seen is the morph state last reacted to; changes made on other
	// goroutines are picked up on the next Step.
	seen MorphState

	// Render state
	atlas      *ebiten.Image
	batchVerts []ebiten.Vertex
	batchInds  []uint32
	chunkInds  []uint32
	solids     []solidCommand
	drawCalls  int
	fps        fpsCounter
	stats      statsThrottle

	// Input state
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	pinch        pinchState

	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene builds the tree described by cfg and a camera for a 1280x720
// viewport. The viewport follows the screen size on the first Draw.
func NewScene(cfg SceneConfig) (*Scene, error) {
	tree, err := NewTree(cfg)
	if err != nil {
		return nil, err
	}
	const w, h = 1280, 720
	s := &Scene{
		tree:          tree,
		camera:        NewCamera(cfg.Camera, Rect{Width: w, Height: h}),
		hud:           newHUD(w, h),
		debug:         cfg.Debug,
		ClearColor:    cfg.Background,
		ScreenshotDir: defaultScreenshot,
		seen:          tree.State(),
		solids:        make([]solidCommand, 0, defaultSolidCap),
		dragDeadZone:  defaultDragDeadZone,
	}
	s.camera.SnapAutoRotate(s.seen == TreeShape)
	return s, nil
}

// Tree returns the animated content.
func (s *Scene) Tree() *Tree { return s.tree }

// Camera returns the orbit camera.
func (s *Scene) Camera() *Camera { return s.camera }

// State returns the current morph state.
func (s *Scene) State() MorphState { return s.tree.State() }

// ButtonBounds returns the toggle button's screen rectangle.
func (s *Scene) ButtonBounds() Rect { return s.hud.button }

// Toggle flips the morph state and starts the camera and HUD reactions.
// Call it from the frame goroutine; other goroutines should use
// Tree().Toggle(), which the scene picks up on its next Step.
func (s *Scene) Toggle() MorphState {
	next := s.tree.Toggle()
	s.syncState()
	return next
}

// Update processes input and advances the animation by one tick.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.Step(dt)
}

// Step advances everything except input by dt seconds.
func (s *Scene) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.syncState()
	s.camera.Update(dt)
	s.hud.update(dt)
	s.tree.Step(dt)
	s.fps.tick(dt)
	if s.debug {
		s.stats.update = time.Since(t0)
	}
}

// syncState reacts to a state change observed since the last call.
func (s *Scene) syncState() {
	state := s.tree.State()
	if state == s.seen {
		return
	}
	s.seen = state
	s.camera.SetAutoRotate(state == TreeShape)
	s.hud.onToggle()
	if s.store != nil {
		s.store.EmitMorph(MorphEvent{
			State:   state,
			Toggles: s.tree.Morph().Toggles(),
			Elapsed: s.tree.Elapsed(),
		})
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables per-frame timing stats on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetDragDeadZone sets the distance in pixels a press must travel before it
// starts orbiting the camera.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}
