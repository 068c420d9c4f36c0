package sticker

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventCommitted          EventType = iota // a transform was appended to history
	EventUndo                                // the history cursor moved back
	EventRedo                                // the history cursor moved forward
	EventOrientationChanged                  // the canvas switched orientation
	EventSelectionChanged                    // the sticker was selected or deselected
	EventGestureStart                        // a drag/resize/rotate/pinch began
	EventGestureEnd                          // the active gesture returned to idle
	EventConfigLoaded                        // a configuration replaced all orientations
	EventStickerRemoved                      // the live sticker was cleared
)

var eventTypeNames = [...]string{
	"committed", "undo", "redo", "orientation-changed", "selection-changed",
	"gesture-start", "gesture-end", "config-loaded", "sticker-removed",
}

func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "unknown"
}

// Event describes a state change. Sticker and Present reflect the live
// transform after the change; Cursor is the active track's cursor.
type Event struct {
	Type        EventType
	Orientation Orientation
	Sticker     Transform
	Present     bool
	Selected    bool
	Cursor      int
	Gesture     GestureMode
}

// EventStore is the interface for optional ECS integration. When set on an
// Engine, every event is forwarded to it after the registered callbacks.
type EventStore interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers []eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

// OnEvent registers a callback for every engine event.
func (e *Engine) OnEvent(fn func(Event)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.handlers = append(e.handlers.handlers, eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers}
}

// SetEventStore sets the optional ECS bridge.
func (e *Engine) SetEventStore(store EventStore) {
	e.store = store
}

func (e *Engine) emit(typ EventType) {
	if len(e.handlers.handlers) == 0 && e.store == nil {
		return
	}
	t, present := e.state.Sticker()
	ev := Event{
		Type:        typ,
		Orientation: e.orientation,
		Sticker:     t,
		Present:     present,
		Selected:    e.state.selected,
		Cursor:      e.history.Track(e.orientation).Cursor(),
		Gesture:     e.gesture.Mode(),
	}
	for _, h := range e.handlers.handlers {
		h.fn(ev)
	}
	if e.store != nil {
		e.store.EmitEvent(ev)
	}
}
