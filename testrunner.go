package grove

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Key    string  `yaml:"key,omitempty"`

	key ebiten.Key
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected input events across frames for automated
// testing. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML (or JSON) test script and returns a
// TestRunner ready to be attached to a Scene via SetTestRunner.
//
// Supported actions: click (x, y), drag (fromX, fromY, toX, toY, frames),
// wait (frames) and key (key, an ebiten key name such as "Space").
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "click", "drag", "wait":
		case "key":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
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

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 || len(s.keyQueue) > 0 {
		return
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
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "key":
		s.InjectKey(st.key)
	}
	logger.Debug("test step", zap.Int("step", r.cursor-1), zap.String("action", st.Action))

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 && len(s.keyQueue) == 0 {
		r.done = true
	}
}
