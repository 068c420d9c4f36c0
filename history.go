package sticker

// HistoryTrack is a linear undo/redo sequence for one orientation.
// Cursor is -1 when no entry is current (no sticker present).
type HistoryTrack struct {
	entries []Transform
	cursor  int
}

func newHistoryTrack() HistoryTrack {
	return HistoryTrack{cursor: -1}
}

// Len returns the number of entries on the track.
func (t *HistoryTrack) Len() int { return len(t.entries) }

// Cursor returns the index of the current entry, or -1.
func (t *HistoryTrack) Cursor() int { return t.cursor }

// Entries returns a copy of the recorded transforms.
func (t *HistoryTrack) Entries() []Transform {
	out := make([]Transform, len(t.entries))
	copy(out, t.entries)
	return out
}

// Current returns the entry at the cursor. ok is false when the cursor is -1.
func (t *HistoryTrack) Current() (Transform, bool) {
	if t.cursor < 0 || t.cursor >= len(t.entries) {
		return Transform{}, false
	}
	return t.entries[t.cursor], true
}

// HistoryStore keeps an independent HistoryTrack per orientation.
type HistoryStore struct {
	tracks [len(orientationNames)]HistoryTrack
}

// NewHistoryStore returns a store with three empty tracks.
func NewHistoryStore() *HistoryStore {
	h := &HistoryStore{}
	for i := range h.tracks {
		h.tracks[i] = newHistoryTrack()
	}
	return h
}

// Track returns the track for o. The returned pointer is owned by the store.
func (h *HistoryStore) Track(o Orientation) *HistoryTrack {
	return &h.tracks[o]
}

// Commit appends t to o's track. Entries past the cursor (the redo branch)
// are discarded first.
func (h *HistoryStore) Commit(o Orientation, t Transform) {
	tr := &h.tracks[o]
	if tr.cursor < len(tr.entries)-1 {
		tail := tr.entries[tr.cursor+1:]
		clear(tail)
		tr.entries = tr.entries[:tr.cursor+1]
	}
	tr.entries = append(tr.entries, t)
	tr.cursor = len(tr.entries) - 1
}

// Undo steps o's cursor back by one. It returns the new current entry and
// present=true, or present=false when the cursor moved to -1 (no sticker).
// moved is false when the cursor was already at -1.
func (h *HistoryStore) Undo(o Orientation) (t Transform, present, moved bool) {
	tr := &h.tracks[o]
	if tr.cursor < 0 {
		return Transform{}, false, false
	}
	tr.cursor--
	t, present = tr.Current()
	return t, present, true
}

// Redo steps o's cursor forward by one and returns the new current entry.
// ok is false when there is nothing to redo.
func (h *HistoryStore) Redo(o Orientation) (t Transform, ok bool) {
	tr := &h.tracks[o]
	if tr.cursor >= len(tr.entries)-1 {
		return Transform{}, false
	}
	tr.cursor++
	return tr.entries[tr.cursor], true
}
