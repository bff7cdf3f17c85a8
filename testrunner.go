package evergreen

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a test script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	// State is the expected state name for "expect".
	State string `yaml:"state,omitempty"`
	// Steps is the wheel amount for "zoom".
	Steps float64 `yaml:"steps,omitempty"`
}

type testScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script actions.
const (
	actionToggle      = "toggle"
	actionClick       = "click"
	actionClickButton = "clickButton"
	actionDrag        = "drag"
	actionZoom        = "zoom"
	actionWait        = "wait"
	actionWaitSettled = "waitSettled"
	actionScreenshot  = "screenshot"
	actionExpect      = "expect"
)

// settleTolerance is the distance waitSettled accepts as arrived.
const settleTolerance = 1e-3

// TestRunner sequences toggles, injected input, waits and screenshots
// across frames for automated visual testing. Attach to a Scene via
// SetTestRunner.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	settling  bool
	done      bool
	failures  []string
}

// LoadTestScript parses a test script. Scripts are YAML; JSON scripts are
// accepted too since JSON is valid YAML.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case actionToggle, actionClick, actionClickButton, actionDrag, actionZoom,
			actionWait, actionWaitSettled, actionScreenshot:
		case actionExpect:
			if st.State != Scattered.String() && st.State != TreeShape.String() {
				return nil, fmt.Errorf("parse test script: step %d: unknown state %q", i, st.State)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before processInput each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of failed "expect" steps.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.settling {
		if !s.tree.Settled(settleTolerance) && r.waitCount > 0 {
			r.waitCount--
			return
		}
		r.settling = false
		r.waitCount = 0
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case actionToggle:
		s.Toggle()
	case actionScreenshot:
		s.Screenshot(st.Label)
	case actionClick:
		s.InjectClick(st.X, st.Y)
	case actionClickButton:
		s.ClickButton()
	case actionDrag:
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case actionZoom:
		s.camera.Zoom(st.Steps)
	case actionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case actionWaitSettled:
		r.settling = true
		r.waitCount = st.Frames
		if r.waitCount <= 0 {
			r.waitCount = 600
		}
	case actionExpect:
		if got := s.tree.State().String(); got != st.State {
			r.failures = append(r.failures,
				fmt.Sprintf("step %d: state = %s, want %s", r.cursor-1, got, st.State))
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.settling && len(s.injectQueue) == 0 {
		r.done = true
	}
}
