package grove

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(nil, 0.5)
	g.Update(nil, 0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", node.X)
	}
	if math.Abs(node.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", node.Y)
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewContainer("scale")

	g := TweenScale(node, 2.0, 3.0, 0.5, ease.Linear)
	g.Update(nil, 0.25)
	g.Update(nil, 0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.ScaleX-2.0) > 0.01 {
		t.Errorf("ScaleX = %f, want ~2.0", node.ScaleX)
	}
	if math.Abs(node.ScaleY-3.0) > 0.01 {
		t.Errorf("ScaleY = %f, want ~3.0", node.ScaleY)
	}
}

func TestTweenAlphaMidpoint(t *testing.T) {
	node := NewContainer("alpha")
	g := TweenAlpha(node, 0, 1.0, ease.Linear)

	g.Update(nil, 0.5)
	if g.Done {
		t.Fatal("should not be done halfway")
	}
	if math.Abs(node.Alpha-0.5) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.5", node.Alpha)
	}
}

func TestTweenRotationReachesTarget(t *testing.T) {
	node := NewContainer("rot")
	g := TweenRotation(node, math.Pi, 0.5, ease.Linear)
	g.Update(nil, 0.5)
	if !g.Done || math.Abs(node.Rotation-math.Pi) > 0.01 {
		t.Errorf("Rotation = %f, Done = %v", node.Rotation, g.Done)
	}
}

func TestTweenAttachesAndDetaches(t *testing.T) {
	s := NewScene()
	node := NewNode("n")
	s.Root().AddChild(node)

	completed := 0
	g := TweenPosition(node, 10, 0, 0.5, ease.Linear)
	g.OnComplete = func() { completed++ }
	if !node.HasComponent(g) {
		t.Fatal("tween should attach to its node")
	}

	s.update(0.25)
	if completed != 0 || !node.HasComponent(g) {
		t.Fatal("tween should still run halfway")
	}
	s.update(0.25)
	if completed != 1 {
		t.Errorf("OnComplete ran %d times, want 1", completed)
	}
	if node.HasComponent(g) {
		t.Error("finished tween should detach")
	}
	if s.Root().ComponentCountInDescendants(UpdateComponentType) != 0 {
		t.Error("root update count should be 0")
	}

	s.update(0.25)
	if completed != 1 {
		t.Error("OnComplete must not run again")
	}
}

func TestTweenStop(t *testing.T) {
	node := NewContainer("stop")
	completed := false
	g := TweenPosition(node, 100, 0, 1.0, ease.Linear)
	g.OnComplete = func() { completed = true }

	g.Update(nil, 0.5)
	g.Stop()
	x := node.X

	g.Update(nil, 0.5)
	if node.X != x {
		t.Error("stopped tween should not write values")
	}
	if completed {
		t.Error("OnComplete should not run after Stop")
	}
	if node.HasComponent(g) {
		t.Error("Stop should detach the tween")
	}
}

func TestTweenDisposedNode(t *testing.T) {
	node := NewContainer("gone")
	g := TweenPosition(node, 100, 0, 1.0, ease.Linear)
	node.Dispose()

	g.Update(nil, 0.5)
	if !g.Done {
		t.Error("tween on a disposed node should stop")
	}
}

func TestTweenNilNodePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil node")
		}
	}()
	TweenAlpha(nil, 0, 1, ease.Linear)
}
