package grove

import "github.com/hajimehoshi/ebiten/v2"

// Event is anything routed through Scene.Dispatch. The built-in input events
// are PointerEvent, KeyEvent, GestureEvent, GamepadEvent and ResizeEvent;
// games may dispatch their own types.
type Event any

// PointerKind identifies a pointer event.
type PointerKind uint8

const (
	PointerDown      PointerKind = iota // a button was pressed
	PointerUp                           // the button was released
	PointerMove                         // moved with no button held
	PointerClick                        // released without exceeding the drag dead zone
	PointerDragStart                    // moved past the drag dead zone while held
	PointerDrag                         // moved while dragging
	PointerDragEnd                      // released after dragging
)

var pointerKindNames = [...]string{
	PointerDown:      "down",
	PointerUp:        "up",
	PointerMove:      "move",
	PointerClick:     "click",
	PointerDragStart: "dragstart",
	PointerDrag:      "drag",
	PointerDragEnd:   "dragend",
}

func (k PointerKind) String() string {
	if int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return "unknown"
}

// PointerEvent carries mouse or touch data. PointerID 0 is the mouse.
type PointerEvent struct {
	Kind      PointerKind
	PointerID int
	X, Y      float64
	// StartX/StartY are where the press began; DeltaX/DeltaY is the movement
	// since the previous event (drag kinds only).
	StartX, StartY float64
	DeltaX, DeltaY float64
	Button         MouseButton
	Modifiers      KeyModifiers
}

// KeyKind identifies a keyboard event.
type KeyKind uint8

const (
	KeyDown  KeyKind = iota // key went down this tick
	KeyUp                   // key went up this tick
	KeyTyped                // a character was typed; Char is set
)

// KeyEvent carries keyboard data.
type KeyEvent struct {
	Kind      KeyKind
	Key       ebiten.Key
	Char      rune
	Modifiers KeyModifiers
}

// GestureEvent carries two-finger pinch/rotate data. Scale and Rotation are
// relative to the gesture start, the deltas to the previous tick.
type GestureEvent struct {
	CenterX, CenterY  float64
	Scale, ScaleDelta float64
	Rotation          float64
	RotDelta          float64
	Modifiers         KeyModifiers
}

// GamepadKind identifies a gamepad event.
type GamepadKind uint8

const (
	GamepadConnected GamepadKind = iota
	GamepadDisconnected
	GamepadButtonDown
	GamepadButtonUp
)

// GamepadEvent carries gamepad data. Button is only set for button kinds and
// uses the standard layout.
type GamepadEvent struct {
	Kind   GamepadKind
	ID     ebiten.GamepadID
	Button ebiten.StandardGamepadButton
}

// ResizeEvent reports a change of the scene's layout size.
type ResizeEvent struct {
	Width, Height         int
	PrevWidth, PrevHeight int
}

// --- Event subscriptions ---

type eventFunc struct {
	fn func(Event)
}

func (*eventFunc) ComponentType() *ComponentType { return EventComponentType }
func (c *eventFunc) OnEvent(_ *Scene, e Event) { c.fn(e) }

// OnEvent attaches an event component that calls fn for every event
// dispatched through the scene while this node is in it.
func (n *Node) OnEvent(fn func(Event)) ComponentHandle {
	if fn == nil {
		panic("grove: nil event handler")
	}
	c := &eventFunc{fn: fn}
	return n.AttachHandle(c)
}

// OnEventOf attaches an event component that calls fn only for events whose
// dynamic type is E (or implements E when E is an interface).
func OnEventOf[E any](n *Node, fn func(E)) ComponentHandle {
	if fn == nil {
		panic("grove: nil event handler")
	}
	return n.OnEvent(func(e Event) {
		if te, ok := e.(E); ok {
			fn(te)
		}
	})
}
