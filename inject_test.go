package grove

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInjectClick(t *testing.T) {
	s := NewScene()
	rec := Attach(s.Root(), &mouseRecorder{})

	s.InjectClick(50, 50)
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(s.injectQueue))
	}

	// Frame 1: press
	s.processInjectedInput(0)
	if len(s.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(s.injectQueue))
	}
	assertKinds(t, rec.kinds(), []PointerKind{PointerDown})

	// Frame 2: release, click fires
	s.processInjectedInput(0)
	if len(s.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(s.injectQueue))
	}
	assertKinds(t, rec.kinds(), []PointerKind{PointerDown, PointerClick, PointerUp})
	if rec.events[1].X != 50 || rec.events[1].Y != 50 {
		t.Errorf("click at (%v, %v), want (50, 50)", rec.events[1].X, rec.events[1].Y)
	}
}

func TestInjectDrag(t *testing.T) {
	s := NewScene()
	rec := Attach(s.Root(), &mouseRecorder{})

	// frame 0: press at (10,10)
	// frames 1-3: interpolated moves
	// frame 4: release at (200,200)
	s.InjectDrag(10, 10, 200, 200, 5)
	if len(s.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(s.injectQueue))
	}
	for i := 0; i < 5; i++ {
		s.processInjectedInput(0)
	}

	assertKinds(t, rec.kinds(), []PointerKind{
		PointerDown,
		PointerDragStart, PointerDrag,
		PointerDrag,
		PointerDrag,
		PointerDragEnd, PointerUp,
	})
	end := rec.events[5]
	if end.X != 200 || end.StartX != 10 {
		t.Errorf("DragEnd at %v start %v, want 200 start 10", end.X, end.StartX)
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	s := NewScene()
	s.InjectDrag(0, 0, 100, 100, 1) // clamped to 2
	if len(s.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", len(s.injectQueue))
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewScene()

	s.InjectPress(10, 20)
	s.InjectMove(30, 40)
	s.InjectRelease(50, 60)

	if len(s.injectQueue) != 3 {
		t.Fatalf("expected 3 events, got %d", len(s.injectQueue))
	}
	if !s.injectQueue[0].pressed || s.injectQueue[0].x != 10 {
		t.Error("first event should be press at (10,20)")
	}
	if !s.injectQueue[1].pressed || s.injectQueue[1].x != 30 {
		t.Error("second event should be move at (30,40)")
	}
	if s.injectQueue[2].pressed || s.injectQueue[2].x != 50 {
		t.Error("third event should be release at (50,60)")
	}
}

func TestInjectedPointerIsLeftButtonPointerZero(t *testing.T) {
	s := NewScene()
	rec := Attach(s.Root(), &mouseRecorder{})

	s.InjectClick(5, 6)
	s.processInjectedInput(ModShift)
	s.processInjectedInput(ModShift)

	if len(rec.events) != 3 {
		t.Fatalf("events = %d, want 3", len(rec.events))
	}
	for i, e := range rec.events {
		if e.PointerID != 0 || e.Button != MouseButtonLeft || e.Modifiers != ModShift {
			t.Errorf("event %d = %+v, want pointer 0, left button, shift", i, e)
		}
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewScene()
	if s.processInjectedInput(0) {
		t.Error("should not consume when queue is empty")
	}
}

func TestInjectKey(t *testing.T) {
	s := NewScene()
	rec := Attach(s.Root(), &keyRecorder{})

	s.InjectKey(ebiten.KeySpace)
	if len(s.keyQueue) != 2 {
		t.Fatalf("expected 2 queued key events, got %d", len(s.keyQueue))
	}
	s.processKeys(ModCtrl)

	if len(s.keyQueue) != 0 {
		t.Errorf("key queue should drain, got %d", len(s.keyQueue))
	}
	if len(rec.events) < 2 {
		t.Fatalf("key events = %d, want at least 2", len(rec.events))
	}
	if rec.events[0].Kind != KeyDown || rec.events[0].Key != ebiten.KeySpace {
		t.Errorf("first event = %+v, want KeyDown Space", rec.events[0])
	}
	if rec.events[1].Kind != KeyUp {
		t.Errorf("second event = %+v, want KeyUp", rec.events[1])
	}
	if rec.events[0].Modifiers != ModCtrl {
		t.Errorf("Modifiers = %v, want current modifiers", rec.events[0].Modifiers)
	}
}
