// Package ecs provides ECS adapters for grove's generation events.
//
// The primary adapter is [NewDonburiStore], which bridges forest generation
// events (tree placed, placement relaxed, forest built, tree removed) into a
// [Donburi] world as typed events, and records each live tree as an entity
// with a [Placement] component.
//
// Usage:
//
//	cfg := grove.DefaultForestConfig()
//	cfg.Sink = ecs.NewDonburiStore(world)
//	forest, err := grove.NewForest(cfg, grove.NewRand(seed))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
