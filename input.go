package evergreen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	maxPointers         = 10 // pointer 0 is the mouse, 1-9 are touches
	defaultDragDeadZone = 4.0
)

// pointerTarget is what a press landed on.
type pointerTarget uint8

const (
	targetNone pointerTarget = iota
	targetButton
	targetOrbit
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	target   pointerTarget
	dragging bool
}

// --- Pinch state ---

type pinchState struct {
	active   bool
	pointer0 int
	pointer1 int
	prevDist float64
}

// processInput is called from Scene.Update() to handle keyboard, wheel,
// mouse and touch input.
func (s *Scene) processInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Toggle()
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.camera.Zoom(wy)
	}

	// Synthetic events replace the real mouse for the frame they run in.
	if !s.processInjectedInput() {
		s.processMousePointer()
	}
	s.processTouchPointers()
	s.detectPinch()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer. A
// press and release both inside the button toggles the morph; a press
// anywhere else drags the orbit camera once it leaves the dead zone.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &s.pointers[pointerID]
	inButton := s.hud.button.Contains(x, y)
	if pointerID == 0 {
		s.hud.hover = inButton
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false
		ps.target = targetOrbit
		if inButton {
			ps.target = targetButton
			s.hud.down = true
		}

	case !pressed && ps.down:
		if ps.target == targetButton {
			s.hud.down = false
			if inButton {
				s.Toggle()
			}
		}
		ps.down = false
		ps.dragging = false
		ps.target = targetNone

	case pressed && ps.down:
		if ps.target == targetOrbit && (x != ps.lastX || y != ps.lastY) {
			if !ps.dragging && math.Hypot(x-ps.startX, y-ps.startY) > s.dragDeadZone {
				ps.dragging = true
			}
			if ps.dragging && !s.pinch.active {
				s.camera.Orbit(x-ps.lastX, y-ps.lastY)
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// --- Pinch detection ---

// detectPinch zooms the camera while exactly two touches are down outside
// the button.
func (s *Scene) detectPinch() {
	var ids [2]int
	count := 0
	for i := 1; i < maxPointers; i++ {
		if s.pointers[i].down && s.pointers[i].target == targetOrbit {
			if count < 2 {
				ids[count] = i
			}
			count++
		}
	}
	if count != 2 {
		s.pinch.active = false
		return
	}
	p0, p1 := &s.pointers[ids[0]], &s.pointers[ids[1]]
	dist := math.Hypot(p1.lastX-p0.lastX, p1.lastY-p0.lastY)
	if !s.pinch.active || s.pinch.pointer0 != ids[0] || s.pinch.pointer1 != ids[1] {
		s.pinch = pinchState{active: true, pointer0: ids[0], pointer1: ids[1], prevDist: dist}
		return
	}
	if dist > 0 && s.pinch.prevDist > 0 && dist != s.pinch.prevDist {
		s.camera.Zoom(math.Log(dist/s.pinch.prevDist) / -math.Log(0.95))
	}
	s.pinch.prevDist = dist
}
