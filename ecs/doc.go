// Package ecs provides ECS adapters for grove's component system.
//
// [Bridge] attaches an event component to a node that republishes every
// event reaching it into a [Donburi] world as [Interaction] values.
// [Pump] attaches an update component that flushes the world's queued
// events once per tick, so subscribers run inside the scene's update pass.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.Bridge(world, scene.Root())
//	ecs.Pump(world, scene.Root())
//	ecs.InteractionEventType.Subscribe(world, func(w donburi.World, e ecs.Interaction) {
//		// ...
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
