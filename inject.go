package grove

import "github.com/hajimehoshi/ebiten/v2"

// injectedPointer is one queued left-button sample in screen space.
type injectedPointer struct {
	x, y    float64
	pressed bool
}

func (s *Scene) queuePointer(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, injectedPointer{x: x, y: y, pressed: pressed})
}

// InjectPress queues a left-button press at screen position (x, y).
//
// Queued pointer samples drain one per update as pointer 0 and are routed
// to MouseComponents exactly like real mouse input. A frame that consumes a
// sample ignores the real mouse.
func (s *Scene) InjectPress(x, y float64) { s.queuePointer(x, y, true) }

// InjectMove queues a held-button sample at (x, y). Between a press and a
// release it drives the drag state machine.
func (s *Scene) InjectMove(x, y float64) { s.queuePointer(x, y, true) }

// InjectRelease queues a left-button release at (x, y).
func (s *Scene) InjectRelease(x, y float64) { s.queuePointer(x, y, false) }

// InjectClick queues a press and a release at (x, y), two updates in all.
func (s *Scene) InjectClick(x, y float64) {
	s.queuePointer(x, y, true)
	s.queuePointer(x, y, false)
}

// InjectDrag queues a press at the start point, frames-2 evenly spaced
// moves, and a release at the end point. frames is raised to 2 if smaller.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.queuePointer(fromX, fromY, true)
	moves := frames - 2
	for i := 1; i <= moves; i++ {
		f := float64(i) / float64(moves+1)
		s.queuePointer(fromX+(toX-fromX)*f, fromY+(toY-fromY)*f, true)
	}
	s.queuePointer(toX, toY, false)
}

// InjectKey queues a key down followed by a key up for k. Both are
// delivered on the next update, ahead of real keyboard input.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.keyQueue = append(s.keyQueue,
		KeyEvent{Kind: KeyDown, Key: k},
		KeyEvent{Kind: KeyUp, Key: k},
	)
}

// processInjectedInput routes the oldest queued sample as pointer 0 and
// reports whether one was consumed.
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(0, evt.x, evt.y, evt.pressed, MouseButtonLeft, mods)
	return true
}
