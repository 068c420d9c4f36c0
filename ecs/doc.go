// Package ecs bridges sticker engine events into a [Donburi] world.
//
// [NewDonburiStore] publishes every engine event as a typed Donburi event and
// mirrors the live sticker onto a single entity carrying [StickerComponent].
// Subscribe to [StickerEventType] in your ECS systems to react to commits,
// undo/redo, and gestures.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
