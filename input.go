package grove

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	button   MouseButton // button captured at press time
}

// --- Pinch state ---

type pinchState struct {
	active       bool
	pointer0     int
	pointer1     int
	initialDist  float64
	initialAngle float64
	prevDist     float64
	prevAngle    float64
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update before the update pass.
// Subtrees without a matching component are never visited, so a scene with
// no input components pays only for reading ebiten state.
func (s *Scene) processInput() {
	mods := readModifiers()

	if !s.processInjectedInput(mods) {
		s.processMousePointer(mods)
	}
	s.processTouchPointers(mods)
	s.detectPinch(mods)
	s.processKeys(mods)
	s.processGamepads()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down, keep the stored button to avoid
	// changing mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	ev := PointerEvent{PointerID: pointerID, X: x, Y: y, Modifiers: mods}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false

		ev.Kind = PointerDown
		ev.Button = button
		ev.StartX, ev.StartY = x, y
		s.firePointer(ev)

	case !pressed && ps.down:
		ev.Button = ps.button
		ev.StartX, ev.StartY = ps.startX, ps.startY
		ev.DeltaX, ev.DeltaY = x-ps.lastX, y-ps.lastY
		if ps.dragging {
			ev.Kind = PointerDragEnd
		} else {
			ev.Kind = PointerClick
		}
		s.firePointer(ev)

		ev.Kind = PointerUp
		s.firePointer(ev)

		ps.down = false
		ps.dragging = false
		ps.lastX, ps.lastY = x, y

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			ev.Button = ps.button
			ev.StartX, ev.StartY = ps.startX, ps.startY
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					ev.Kind = PointerDragStart
					ev.DeltaX, ev.DeltaY = dx, dy
					s.firePointer(ev)
				}
			}
			if ps.dragging {
				ev.Kind = PointerDrag
				ev.DeltaX, ev.DeltaY = x-ps.lastX, y-ps.lastY
				s.firePointer(ev)
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		// Hover move.
		if x != ps.lastX || y != ps.lastY {
			ev.Kind = PointerMove
			ev.Button = button
			s.firePointer(ev)
			ps.lastX, ps.lastY = x, y
		}
	}
}

// --- Pinch detection ---

func (s *Scene) detectPinch(mods KeyModifiers) {
	var p0, p1, count int
	for i := 1; i < maxPointers; i++ {
		if !s.pointers[i].down {
			continue
		}
		if count == 0 {
			p0 = i
		} else if count == 1 {
			p1 = i
		}
		count++
	}

	if count != 2 {
		s.pinch.active = false
		return
	}

	ps0 := &s.pointers[p0]
	ps1 := &s.pointers[p1]

	cx := (ps0.lastX + ps1.lastX) / 2
	cy := (ps0.lastY + ps1.lastY) / 2
	dx := ps1.lastX - ps0.lastX
	dy := ps1.lastY - ps0.lastY
	dist := math.Sqrt(dx*dx + dy*dy)
	angle := math.Atan2(dy, dx)

	if !s.pinch.active {
		s.pinch = pinchState{
			active:       true,
			pointer0:     p0,
			pointer1:     p1,
			initialDist:  dist,
			initialAngle: angle,
			prevDist:     dist,
			prevAngle:    angle,
		}
	} else {
		scale := 1.0
		if s.pinch.initialDist > 0 {
			scale = dist / s.pinch.initialDist
		}
		scaleDelta := 0.0
		if s.pinch.prevDist > 0 {
			scaleDelta = dist/s.pinch.prevDist - 1.0
		}
		s.fireGesture(GestureEvent{
			CenterX:    cx,
			CenterY:    cy,
			Scale:      scale,
			ScaleDelta: scaleDelta,
			Rotation:   angle - s.pinch.initialAngle,
			RotDelta:   angle - s.pinch.prevAngle,
			Modifiers:  mods,
		})
		s.pinch.prevDist = dist
		s.pinch.prevAngle = angle
	}

	// Pinch pointers never drag.
	ps0.dragging = false
	ps1.dragging = false
}

// --- Keyboard ---

func (s *Scene) processKeys(mods KeyModifiers) {
	for _, e := range s.keyQueue {
		if e.Modifiers == 0 {
			e.Modifiers = mods
		}
		s.fireKey(e)
	}
	clear(s.keyQueue)
	s.keyQueue = s.keyQueue[:0]

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.fireKey(KeyEvent{Kind: KeyDown, Key: k, Modifiers: mods})
	}
	s.keyBuf = inpututil.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.fireKey(KeyEvent{Kind: KeyUp, Key: k, Modifiers: mods})
	}
	s.charBuf = ebiten.AppendInputChars(s.charBuf[:0])
	for _, r := range s.charBuf {
		s.fireKey(KeyEvent{Kind: KeyTyped, Char: r, Modifiers: mods})
	}
}

// --- Gamepads ---

func (s *Scene) processGamepads() {
	s.gamepadBuf = inpututil.AppendJustConnectedGamepadIDs(s.gamepadBuf[:0])
	for _, id := range s.gamepadBuf {
		s.gamepads = append(s.gamepads, id)
		s.fireGamepad(GamepadEvent{Kind: GamepadConnected, ID: id})
	}

	kept := s.gamepads[:0]
	for _, id := range s.gamepads {
		if inpututil.IsGamepadJustDisconnected(id) {
			s.fireGamepad(GamepadEvent{Kind: GamepadDisconnected, ID: id})
			continue
		}
		kept = append(kept, id)
	}
	s.gamepads = kept

	for _, id := range s.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		s.buttonBuf = inpututil.AppendJustPressedStandardGamepadButtons(id, s.buttonBuf[:0])
		for _, b := range s.buttonBuf {
			s.fireGamepad(GamepadEvent{Kind: GamepadButtonDown, ID: id, Button: b})
		}
		s.buttonBuf = inpututil.AppendJustReleasedStandardGamepadButtons(id, s.buttonBuf[:0])
		for _, b := range s.buttonBuf {
			s.fireGamepad(GamepadEvent{Kind: GamepadButtonUp, ID: id, Button: b})
		}
	}
}

// --- Event dispatch ---

// firePointer routes mouse events (pointer 0) to MouseComponents and touch
// events to TouchComponents, then through Dispatch.
func (s *Scene) firePointer(e PointerEvent) {
	t := MouseComponentType
	if e.PointerID > 0 {
		t = TouchComponentType
	}
	buf := s.acquire()
	buf = s.root.CollectComponents(t, buf, &s.stats)
	for _, c := range buf {
		if e.PointerID == 0 {
			if mc, ok := c.(MouseComponent); ok {
				mc.OnMouseEvent(s, e)
			}
		} else if tc, ok := c.(TouchComponent); ok {
			tc.OnTouchEvent(s, e)
		}
	}
	s.release(buf)
	s.Dispatch(e)
}

func (s *Scene) fireKey(e KeyEvent) {
	buf := s.acquire()
	buf = s.root.CollectComponents(KeyComponentType, buf, &s.stats)
	for _, c := range buf {
		if kc, ok := c.(KeyComponent); ok {
			kc.OnKeyEvent(s, e)
		}
	}
	s.release(buf)
	s.Dispatch(e)
}

func (s *Scene) fireGesture(e GestureEvent) {
	buf := s.acquire()
	buf = s.root.CollectComponents(GestureComponentType, buf, &s.stats)
	for _, c := range buf {
		if gc, ok := c.(GestureComponent); ok {
			gc.OnGestureEvent(s, e)
		}
	}
	s.release(buf)
	s.Dispatch(e)
}

func (s *Scene) fireGamepad(e GamepadEvent) {
	buf := s.acquire()
	buf = s.root.CollectComponents(GamepadComponentType, buf, &s.stats)
	for _, c := range buf {
		if gc, ok := c.(GamepadComponent); ok {
			gc.OnGamepadEvent(s, e)
		}
	}
	s.release(buf)
	s.Dispatch(e)
}
