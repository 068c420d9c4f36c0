package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/sticker"
)

// StickerEventType is the Donburi event type for sticker engine events.
var StickerEventType = events.NewEventType[sticker.Event]()

// StickerData mirrors the engine's live sticker.
type StickerData struct {
	Transform   sticker.Transform
	Present     bool
	Selected    bool
	Orientation sticker.Orientation
	Cursor      int
}

// StickerComponent is attached to the entity that mirrors the live sticker.
var StickerComponent = donburi.NewComponentType[StickerData]()

type donburiStore struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiStore creates an EventStore backed by a Donburi world. It
// creates the mirror entity immediately. Events are published to
// StickerEventType and consumed with ProcessEvents.
func NewDonburiStore(world donburi.World) sticker.EventStore {
	return &donburiStore{
		world:  world,
		entity: world.Create(StickerComponent),
	}
}

func (s *donburiStore) EmitEvent(event sticker.Event) {
	if s.world.Valid(s.entity) {
		StickerComponent.SetValue(s.world.Entry(s.entity), StickerData{
			Transform:   event.Sticker,
			Present:     event.Present,
			Selected:    event.Selected,
			Orientation: event.Orientation,
			Cursor:      event.Cursor,
		})
	}
	StickerEventType.Publish(s.world, event)
}
