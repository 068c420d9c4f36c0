package sticker

import "testing"

func tx(x float64) Transform {
	return Transform{X: x, Width: 10, Height: 10}
}

func TestHistoryCommitAfterUndoDropsRedoBranch(t *testing.T) {
	h := NewHistoryStore()
	a, b, c, d := tx(1), tx(2), tx(3), tx(4)
	h.Commit(Portrait, a)
	h.Commit(Portrait, b)
	h.Commit(Portrait, c)

	h.Undo(Portrait)
	got, present, moved := h.Undo(Portrait)
	if !present || !moved || got != a {
		t.Fatalf("Undo = %+v, %v, %v; want A", got, present, moved)
	}

	h.Commit(Portrait, d)
	tr := h.Track(Portrait)
	entries := tr.Entries()
	if len(entries) != 2 || entries[0] != a || entries[1] != d {
		t.Errorf("entries = %+v, want [A D]", entries)
	}
	if tr.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", tr.Cursor())
	}
	if _, ok := h.Redo(Portrait); ok {
		t.Error("Redo after commit should be a no-op")
	}
}

func TestHistoryUndoToEmpty(t *testing.T) {
	h := NewHistoryStore()
	h.Commit(Square, tx(1))

	_, present, moved := h.Undo(Square)
	if present || !moved {
		t.Errorf("first Undo = present %v moved %v, want false true", present, moved)
	}
	if c := h.Track(Square).Cursor(); c != -1 {
		t.Errorf("cursor = %d, want -1", c)
	}
	if _, _, moved := h.Undo(Square); moved {
		t.Error("Undo at -1 should not move")
	}

	got, ok := h.Redo(Square)
	if !ok || got != tx(1) {
		t.Errorf("Redo = %+v, %v", got, ok)
	}
	if _, ok := h.Redo(Square); ok {
		t.Error("Redo at newest entry should be a no-op")
	}
}

func TestHistoryTracksAreIndependent(t *testing.T) {
	h := NewHistoryStore()
	h.Commit(Portrait, tx(1))
	h.Commit(Portrait, tx(2))
	h.Commit(Landscape, tx(9))

	h.Undo(Portrait)
	if c := h.Track(Landscape).Cursor(); c != 0 {
		t.Errorf("landscape cursor = %d, want 0", c)
	}
	if n := h.Track(Square).Len(); n != 0 {
		t.Errorf("square len = %d, want 0", n)
	}
	if cur, _ := h.Track(Portrait).Current(); cur != tx(1) {
		t.Errorf("portrait current = %+v", cur)
	}
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	h := NewHistoryStore()
	h.Commit(Portrait, tx(1))
	e := h.Track(Portrait).Entries()
	e[0].X = 99
	if cur, _ := h.Track(Portrait).Current(); cur.X != 1 {
		t.Error("Entries must not alias the track")
	}
}
