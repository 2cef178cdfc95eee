package grove

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`
steps:
  - action: click
    x: 100
    y: 200
  - action: wait
    frames: 3
  - action: key
    key: Space
`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "click" || runner.steps[0].X != 100 || runner.steps[0].Y != 200 {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "wait" || runner.steps[1].Frames != 3 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].key != ebiten.KeySpace {
		t.Errorf("step 2 key = %v, want Space", runner.steps[2].key)
	}
}

func TestLoadTestScript_JSON(t *testing.T) {
	data := []byte(`{"steps": [{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 6}]}`)
	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := runner.steps[0]
	if st.FromX != 1 || st.FromY != 2 || st.ToX != 3 || st.ToY != 4 || st.Frames != 6 {
		t.Errorf("drag step = %+v", st)
	}
}

func TestLoadTestScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid", `steps: [`, "parse test script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`, `unknown action "screenshot"`},
		{"bad key", `{"steps": [{"action": "key", "key": "NotAKey"}]}`, "step 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestRunnerStep_Click(t *testing.T) {
	s := NewScene()
	rec := Attach(s.Root(), &mouseRecorder{})

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	// First step call: click queues press+release (2 events).
	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	s.processInjectedInput(0)
	s.processInjectedInput(0)
	assertKinds(t, rec.kinds(), []PointerKind{PointerDown, PointerClick, PointerUp})

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "click", "x": 1, "y": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1 runs the wait; frames 2 and 3 count down.
	for i := 0; i < 3; i++ {
		runner.step(s)
		if len(s.injectQueue) != 0 {
			t.Fatalf("frame %d: click should not run during wait", i+1)
		}
	}

	// Frame 4 runs the click.
	runner.step(s)
	if len(s.injectQueue) != 2 {
		t.Errorf("expected click to be queued, got %d events", len(s.injectQueue))
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	s := NewScene()
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", len(s.injectQueue))
	}
}

func TestRunnerStep_Key(t *testing.T) {
	s := NewScene()
	rec := Attach(s.Root(), &keyRecorder{})
	runner, err := LoadTestScript([]byte("steps:\n  - action: key\n    key: Enter\n"))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	if len(s.keyQueue) != 2 {
		t.Fatalf("expected 2 queued key events, got %d", len(s.keyQueue))
	}
	if runner.Done() {
		t.Error("runner should wait for the key queue")
	}
	s.processKeys(0)
	if len(rec.events) < 2 || rec.events[0].Key != ebiten.KeyEnter {
		t.Errorf("key events = %+v", rec.events)
	}
	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerDone(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "wait"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if runner.Done() {
		t.Error("runner should not be done before any steps")
	}

	runner.step(s)
	if !runner.Done() {
		t.Error("runner should be done after a single zero-frame wait")
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	s := NewScene()

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "click", "x": 60, "y": 60}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(s)
	runner.step(s)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	s.injectQueue = s.injectQueue[:0]
	runner.step(s)
	if runner.cursor != 2 {
		t.Errorf("cursor = %d, want 2", runner.cursor)
	}
}
