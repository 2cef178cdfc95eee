package grove

type updateFunc struct {
	fn func(s *Scene, dt float64)
}

func (*updateFunc) ComponentType() *ComponentType { return UpdateComponentType }
func (c *updateFunc) Update(s *Scene, dt float64) { c.fn(s, dt) }

// OnUpdate attaches an update component that calls fn every tick.
func (n *Node) OnUpdate(fn func(s *Scene, dt float64)) ComponentHandle {
	if fn == nil {
		panic("grove: nil update func")
	}
	c := &updateFunc{fn: fn}
	return n.AttachHandle(c)
}

// deferredUpdate runs its callback on the first update pass it takes part in
// and then removes itself.
type deferredUpdate struct {
	node  *Node
	fn    func(s *Scene)
	fired bool
}

func (*deferredUpdate) ComponentType() *ComponentType { return UpdateComponentType }

func (c *deferredUpdate) Update(s *Scene, _ float64) {
	if c.fired {
		return
	}
	c.fired = true
	c.fn(s)
	c.node.RemoveComponent(c)
}

// DeferUpdate schedules fn to run exactly once during the next update pass
// that reaches this node. Deferring from inside an update pass runs fn on
// the following pass.
func (n *Node) DeferUpdate(fn func(s *Scene)) {
	if fn == nil {
		panic("grove: nil deferred func")
	}
	n.AddComponent(&deferredUpdate{node: n, fn: fn})
}

type resizeFunc struct {
	fn func(ResizeEvent)
}

func (*resizeFunc) ComponentType() *ComponentType { return ResizeComponentType }
func (c *resizeFunc) OnResize(_ *Scene, e ResizeEvent) { c.fn(e) }

// OnResize attaches a resize component that calls fn whenever the scene's
// layout size changes.
func (n *Node) OnResize(fn func(ResizeEvent)) ComponentHandle {
	if fn == nil {
		panic("grove: nil resize func")
	}
	c := &resizeFunc{fn: fn}
	return n.AttachHandle(c)
}
