package grove

import "github.com/hajimehoshi/ebiten/v2"

// ComponentType is an identity tag for a category of components. Two tags are
// equal only if they are the same pointer; the name is for diagnostics.
type ComponentType struct {
	name string
}

// NewComponentType creates a new, distinct component tag.
func NewComponentType(name string) *ComponentType {
	return &ComponentType{name: name}
}

// String returns the tag's name.
func (t *ComponentType) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

// Built-in tags. The Scene dispatches input, update, resize and draw work to
// components registered under these.
var (
	MouseComponentType   = NewComponentType("mouse")
	TouchComponentType   = NewComponentType("touch")
	KeyComponentType     = NewComponentType("key")
	GestureComponentType = NewComponentType("gesture")
	GamepadComponentType = NewComponentType("gamepad")
	EventComponentType   = NewComponentType("event")
	UpdateComponentType  = NewComponentType("update")
	ResizeComponentType  = NewComponentType("resize")
	DrawComponentType    = NewComponentType("draw")
)

// Component is a unit of behavior attached to a Node. Components are compared
// by identity, so implementations should be pointer types.
type Component interface {
	ComponentType() *ComponentType
}

// MouseComponent receives pointer events from the mouse (pointer 0).
type MouseComponent interface {
	Component
	OnMouseEvent(s *Scene, e PointerEvent)
}

// TouchComponent receives pointer events from touch slots 1-9.
type TouchComponent interface {
	Component
	OnTouchEvent(s *Scene, e PointerEvent)
}

// KeyComponent receives keyboard events.
type KeyComponent interface {
	Component
	OnKeyEvent(s *Scene, e KeyEvent)
}

// GestureComponent receives two-finger pinch/rotate gestures.
type GestureComponent interface {
	Component
	OnGestureEvent(s *Scene, e GestureEvent)
}

// GamepadComponent receives gamepad connection and button events.
type GamepadComponent interface {
	Component
	OnGamepadEvent(s *Scene, e GamepadEvent)
}

// EventComponent receives every event passed to Scene.Dispatch, including
// all built-in input events.
type EventComponent interface {
	Component
	OnEvent(s *Scene, e Event)
}

// UpdateComponent is called once per tick during the update pass.
type UpdateComponent interface {
	Component
	Update(s *Scene, dt float64)
}

// ResizeComponent is notified when the scene's layout size changes.
type ResizeComponent interface {
	Component
	OnResize(s *Scene, e ResizeEvent)
}

// DrawComponent renders during Scene.Draw.
type DrawComponent interface {
	Component
	Draw(s *Scene, screen *ebiten.Image)
}

// Attacher is implemented by components that want to know when they are
// attached to a node.
type Attacher interface {
	OnAttach(n *Node)
}

// Detacher is implemented by components that need teardown. OnDetach fires
// once per successful removal.
type Detacher interface {
	OnDetach(n *Node)
}

// ComponentHandle removes a component that was attached by one of the
// subscription helpers (OnEvent, OnUpdate, ...).
type ComponentHandle struct {
	node *Node
	comp Component
}

// Component returns the attached component, or nil for a zero handle.
func (h ComponentHandle) Component() Component {
	return h.comp
}

// AttachHandle attaches c and returns a handle that removes it.
func (n *Node) AttachHandle(c Component) ComponentHandle {
	n.AddComponent(c)
	return ComponentHandle{node: n, comp: c}
}

// Remove detaches the component. Calling Remove more than once is a no-op.
func (h ComponentHandle) Remove() {
	if h.node == nil || h.comp == nil {
		return
	}
	h.node.RemoveComponent(h.comp)
}

// CollectStats records how much work a recursive collection did.
type CollectStats struct {
	Iterations int // nodes visited with a non-zero subtree count
	Results    int // components appended
}

// Reset zeroes the counters.
func (st *CollectStats) Reset() {
	st.Iterations = 0
	st.Results = 0
}
