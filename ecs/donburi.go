package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Interaction is the Donburi event payload for a grove event. EntityID is
// copied from the bridged node so systems can map it back to an entity.
type Interaction struct {
	EntityID uint32
	Node     *grove.Node
	Event    grove.Event
}

// InteractionEventType is the Donburi event type for bridged grove events.
var InteractionEventType = events.NewEventType[Interaction]()

type bridge struct {
	world donburi.World
	node  *grove.Node
}

func (*bridge) ComponentType() *grove.ComponentType { return grove.EventComponentType }

func (b *bridge) OnEvent(_ *grove.Scene, e grove.Event) {
	InteractionEventType.Publish(b.world, Interaction{
		EntityID: b.node.EntityID,
		Node:     b.node,
		Event:    e,
	})
}

// Bridge attaches an event component to node that publishes every scene
// event to InteractionEventType. Events are queued; consume them with
// ProcessEvents or attach Pump.
func Bridge(world donburi.World, node *grove.Node) grove.ComponentHandle {
	return node.AttachHandle(&bridge{world: world, node: node})
}

type pump struct {
	world donburi.World
}

func (*pump) ComponentType() *grove.ComponentType { return grove.UpdateComponentType }

func (p *pump) Update(_ *grove.Scene, _ float64) {
	events.ProcessAllEvents(p.world)
}

// Pump attaches an update component to node that processes all queued
// Donburi events every tick.
func Pump(world donburi.World, node *grove.Node) grove.ComponentHandle {
	return node.AttachHandle(&pump{world: world})
}
