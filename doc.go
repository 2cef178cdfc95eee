// Package grove is a component-driven scene tree for [Ebitengine].
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root] and
// carry behavior as attached components: small values keyed by a
// [ComponentType] tag that the scene calls during input handling, the
// per-tick update pass, layout changes and drawing.
//
// # Quick start
//
//	scene := grove.NewScene()
//	player := grove.NewNode("player")
//	scene.Root().AddChild(player)
//
//	player.OnUpdate(func(s *grove.Scene, dt float64) {
//		player.X += 60 * dt
//	})
//
//	grove.Run(scene, grove.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update], [Scene.Draw] and [Scene.Layout] directly.
//
// # Components
//
// A component implements [Component] plus the capability interface that
// matches its tag: [MouseComponent], [TouchComponent], [KeyComponent],
// [GestureComponent], [GamepadComponent], [EventComponent],
// [UpdateComponent], [ResizeComponent] or [DrawComponent]. Games can define
// their own tags with [NewComponentType] and query them with
// [Node.CollectComponents].
//
//	type clicker struct{ hits int }
//
//	func (*clicker) ComponentType() *grove.ComponentType { return grove.MouseComponentType }
//	func (c *clicker) OnMouseEvent(s *grove.Scene, e grove.PointerEvent) {
//		if e.Kind == grove.PointerClick {
//			c.hits++
//		}
//	}
//
//	node.AddComponent(&clicker{})
//
// Every node keeps, per tag, the number of components attached anywhere in
// its subtree. [Node.ComponentCountInDescendants] reads it in constant time
// and the scene uses it to skip subtrees during dispatch, so a tree of many
// plain nodes with one touch handler costs a walk down a single path.
// Counts follow subtrees through [Node.AddChild], [Node.RemoveChild] and
// [Node.Dispose].
//
// # Helpers
//
// [Node.OnEvent], [OnEventOf], [Node.OnUpdate] and [Node.OnResize] attach
// closure components and return a [ComponentHandle] for removal.
// [Node.DeferUpdate] runs a callback once on the next update pass.
// [GetOrCreate] and [Node.GetOrCreateComponent] attach a component only if
// one is not already present.
//
// # Threading
//
// grove is single-threaded. All tree and component operations must run on
// the goroutine driving the game loop.
//
// ECS integration via [Donburi] lives in grove/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package grove
