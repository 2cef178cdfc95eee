package grove

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Scene owns the node tree, input state, and the per-tick dispatch of
// components. All methods must be called from the goroutine running the
// game loop.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen at the start of Draw when its alpha is
	// non-zero.
	ClearColor Color

	width, height int

	updateFunc func() error
	testRunner *TestRunner

	// Dispatch buffers, used as a stack so a component may trigger a nested
	// dispatch without clobbering the outer iteration.
	bufs     [][]Component
	bufDepth int
	stats    CollectStats
	frame    uint64

	// Input state
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	pinch        pinchState
	keyBuf       []ebiten.Key
	charBuf      []rune
	gamepads     []ebiten.GamepadID
	gamepadBuf   []ebiten.GamepadID
	buttonBuf    []ebiten.StandardGamepadButton
	injectQueue  []injectedPointer
	keyQueue     []KeyEvent
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:         NewContainer("root"),
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Size returns the last layout size passed to Layout or Resize.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// Frame returns the number of completed update passes.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// SetUpdateFunc registers game logic that Run calls before Scene.Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update processes input then runs every UpdateComponent in the tree.
func (s *Scene) Update() {
	s.update(1.0 / float64(ebiten.TPS()))
}

func (s *Scene) update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
		s.stats.Reset()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	buf := s.acquire()
	buf = s.root.CollectComponents(UpdateComponentType, buf, &s.stats)
	for _, c := range buf {
		if uc, ok := c.(UpdateComponent); ok {
			uc.Update(s, dt)
		}
	}
	s.release(buf)
	s.frame++

	if s.debug {
		logger.Debug("update",
			zap.Uint64("frame", s.frame),
			zap.Int("iterations", s.stats.Iterations),
			zap.Int("components", s.stats.Results),
			zap.Duration("elapsed", time.Since(t0)))
	}
}

// Draw fills ClearColor and runs every DrawComponent in visible subtrees,
// parents before children.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.drawNode(s.root, screen)
}

func (s *Scene) drawNode(n *Node, screen *ebiten.Image) {
	if !n.Visible || n.ComponentCountInDescendants(DrawComponentType) == 0 {
		return
	}
	for _, c := range n.ComponentsOfType(DrawComponentType) {
		if dc, ok := c.(DrawComponent); ok {
			dc.Draw(s, screen)
		}
	}
	for _, child := range n.children {
		s.drawNode(child, screen)
	}
}

// Layout records the outside size and notifies ResizeComponents when it
// changed. It returns the size unchanged so it can back ebiten.Game.Layout.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Resize sets the scene size, dispatching a ResizeEvent if it changed.
func (s *Scene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	e := ResizeEvent{Width: width, Height: height, PrevWidth: s.width, PrevHeight: s.height}
	s.width, s.height = width, height

	buf := s.acquire()
	buf = s.root.CollectComponents(ResizeComponentType, buf, nil)
	for _, c := range buf {
		if rc, ok := c.(ResizeComponent); ok {
			rc.OnResize(s, e)
		}
	}
	s.release(buf)
	s.Dispatch(e)
}

// Dispatch sends e to every EventComponent in the tree.
func (s *Scene) Dispatch(e Event) {
	buf := s.acquire()
	buf = s.root.CollectComponents(EventComponentType, buf, &s.stats)
	for _, c := range buf {
		if ec, ok := c.(EventComponent); ok {
			ec.OnEvent(s, e)
		}
	}
	s.release(buf)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth, child count and duplicate-attach warnings are
// logged, and per-frame dispatch stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		logLevel.SetLevel(zap.DebugLevel)
	} else {
		logLevel.SetLevel(zap.WarnLevel)
	}
}

// SetLogger replaces the package logger. Passing nil restores the default.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = newLogger()
	}
	logger = l
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// --- Dispatch buffers ---

func (s *Scene) acquire() []Component {
	if s.bufDepth == len(s.bufs) {
		s.bufs = append(s.bufs, nil)
	}
	buf := s.bufs[s.bufDepth][:0]
	s.bufDepth++
	return buf
}

// release returns buf (possibly grown since acquire) to the stack, dropping
// references so detached components can be collected.
func (s *Scene) release(buf []Component) {
	clear(buf)
	s.bufDepth--
	s.bufs[s.bufDepth] = buf[:0]
}
