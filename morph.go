package evergreen

import "sync/atomic"

// Morph is the scene-wide SCATTERED/TREE_SHAPE toggle. The logical state
// flips instantly; groups smooth the visual transition on their own.
//
// State is stored atomically so a toggle raised off the frame goroutine is
// never observed torn. Observers registered with OnToggle run synchronously on
// the toggling goroutine.
type Morph struct {
	state     atomic.Int32
	observers []func(MorphState)
	toggles   atomic.Uint64
}

// NewMorph returns a Morph in the initial TreeShape state.
func NewMorph() *Morph {
	m := &Morph{}
	m.state.Store(int32(TreeShape))
	return m
}

// State returns the current logical state.
func (m *Morph) State() MorphState {
	return MorphState(m.state.Load())
}

// Target returns 1 when assembled and 0 when scattered.
func (m *Morph) Target() float64 {
	return m.State().Target()
}

// Toggle flips the state unconditionally and returns the new value.
func (m *Morph) Toggle() MorphState {
	var next MorphState
	for {
		cur := m.state.Load()
		next = Scattered
		if MorphState(cur) == Scattered {
			next = TreeShape
		}
		if m.state.CompareAndSwap(cur, int32(next)) {
			break
		}
	}
	m.toggles.Add(1)
	for _, fn := range m.observers {
		fn(next)
	}
	return next
}

// Set forces a state. Observers fire only when the value changes.
func (m *Morph) Set(s MorphState) {
	if MorphState(m.state.Swap(int32(s))) == s {
		return
	}
	m.toggles.Add(1)
	for _, fn := range m.observers {
		fn(s)
	}
}

// Toggles returns how many times the state has changed.
func (m *Morph) Toggles() uint64 {
	return m.toggles.Load()
}

// OnToggle registers fn to run after every state change. Register observers
// before the frame loop starts; the list itself is not synchronized.
func (m *Morph) OnToggle(fn func(MorphState)) {
	if fn == nil {
		panic("evergreen: OnToggle with nil func")
	}
	m.observers = append(m.observers, fn)
}
