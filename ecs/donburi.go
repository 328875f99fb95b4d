// Package ecs provides ECS adapters for grove.
package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// GrowthEventType is the Donburi event type for grove generation events.
// Subscribe to this in your ECS systems to react to trees being placed.
var GrowthEventType = events.NewEventType[grove.GrowthEvent]()

// Placement is the component attached to one entity per placed tree.
var Placement = donburi.NewComponentType[grove.GrowthEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Every
// event is published to GrowthEventType; EventTreePlaced also creates an
// entity carrying a Placement component and EventTreeRemoved deletes it, so
// Placements tracks a forest across Regenerate.
func NewDonburiStore(world donburi.World) grove.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event grove.GrowthEvent) {
	switch event.Type {
	case grove.EventTreePlaced:
		entry := s.world.Entry(s.world.Create(Placement))
		Placement.SetValue(entry, event)
	case grove.EventTreeRemoved:
		s.removePlacement(event.NodeID)
	}
	GrowthEventType.Publish(s.world, event)
}

// removePlacement deletes the entities recorded for the tree node id.
func (s *donburiStore) removePlacement(id uint32) {
	var stale []donburi.Entity
	donburi.NewQuery(filter.Contains(Placement)).Each(s.world, func(entry *donburi.Entry) {
		if Placement.Get(entry).NodeID == id {
			stale = append(stale, entry.Entity())
		}
	})
	for _, e := range stale {
		s.world.Remove(e)
	}
}

// Placements returns the Placement of every tree entity in world, in no
// particular order.
func Placements(world donburi.World) []grove.GrowthEvent {
	var out []grove.GrowthEvent
	donburi.NewQuery(filter.Contains(Placement)).Each(world, func(entry *donburi.Entry) {
		out = append(out, *Placement.Get(entry))
	})
	return out
}
