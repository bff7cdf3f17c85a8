// Package ecs provides Donburi adapters for evergreen.
//
// [NewDonburiStore] bridges morph state changes into a [Donburi] world as
// typed events on [MorphEventType] and mirrors the latest state on a
// singleton [Morph] component. [Register] turns every animated group of a
// tree into an entity, and [AnimateSystem] drives them from the world
// instead of Tree.Step.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.Register(world, scene.Tree())
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
