package grove

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates up to 4 float64 fields on a Node simultaneously. It is an
// UpdateComponent: the constructors (TweenPosition, TweenScale, ...) attach it
// to the node, the scene advances it every tick, and it detaches itself when
// every field has reached its target. If the node is disposed the tween
// stops immediately.
type Tween struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnComplete, if set, runs once after the final values are written.
	OnComplete func()
}

// ComponentType implements Component.
func (*Tween) ComponentType() *ComponentType { return UpdateComponentType }

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (tw *Tween) Update(_ *Scene, dt float64) {
	if tw.Done {
		return
	}

	if tw.target != nil && tw.target.IsDisposed() {
		tw.Done = true
		return
	}

	allDone := true
	for i := 0; i < tw.count; i++ {
		val, finished := tw.tweens[i].Update(float32(dt))
		*tw.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if !allDone {
		return
	}
	tw.Done = true
	tw.target.RemoveComponent(tw)
	if tw.OnComplete != nil {
		tw.OnComplete()
	}
}

// Stop halts the tween where it is and detaches it. Values are not snapped
// to their targets and OnComplete does not run.
func (tw *Tween) Stop() {
	if tw.Done {
		return
	}
	tw.Done = true
	tw.target.RemoveComponent(tw)
}

func newTween(node *Node, count int) *Tween {
	if node == nil {
		panic("grove: cannot tween nil node")
	}
	return &Tween{count: count, target: node}
}

// TweenPosition attaches a Tween that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := newTween(node, 2)
	tw.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	tw.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	tw.fields[0] = &node.X
	tw.fields[1] = &node.Y
	return Attach(node, tw)
}

// TweenScale attaches a Tween that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := newTween(node, 2)
	tw.tweens[0] = gween.New(float32(node.ScaleX), float32(toSX), duration, fn)
	tw.tweens[1] = gween.New(float32(node.ScaleY), float32(toSY), duration, fn)
	tw.fields[0] = &node.ScaleX
	tw.fields[1] = &node.ScaleY
	return Attach(node, tw)
}

// TweenAlpha attaches a Tween that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := newTween(node, 1)
	tw.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	tw.fields[0] = &node.Alpha
	return Attach(node, tw)
}

// TweenRotation attaches a Tween that animates node.Rotation to the target
// value over the specified duration using the easing function.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	tw := newTween(node, 1)
	tw.tweens[0] = gween.New(float32(node.Rotation), float32(to), duration, fn)
	tw.fields[0] = &node.Rotation
	return Attach(node, tw)
}
