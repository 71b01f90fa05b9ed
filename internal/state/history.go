package state

// Snapshot is a saved navigation position used for Back/Forward.
type Snapshot struct {
	Dir      string
	Filter   string
	Selected int
}

// History is a stack of snapshots with a cursor. The cursor ranges over
// [0, Len()]; Cursor() == Len() is the live position, meaning the current
// state is not itself stored. Pushed snapshots are never modified.
type History struct {
	entries []Snapshot
	cursor  int
	// tail is set while the last entry was stored by Back rather than Push.
	tail bool
}

// Push records s as the position being left: everything at or after the
// cursor is discarded, s is appended and the cursor moves to the live end.
func (h *History) Push(s Snapshot) {
	if h.cursor < len(h.entries) {
		h.entries = h.entries[:h.cursor]
	}
	h.entries = append(h.entries, s)
	h.cursor = len(h.entries)
	h.tail = false
}

// Back steps one snapshot back. current is stored first when leaving the live
// position so Forward can return to it. Leaving that stored tail again after
// a Forward overwrites it with current; pushed snapshots stay untouched.
func (h *History) Back(current Snapshot) (Snapshot, bool) {
	if h.cursor == 0 {
		return Snapshot{}, false
	}
	switch {
	case h.cursor == len(h.entries):
		h.entries = append(h.entries, current)
		h.tail = true
	case h.tail && h.cursor == len(h.entries)-1:
		h.entries[h.cursor] = current
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward steps one snapshot forward, stopping at the last stored snapshot.
func (h *History) Forward() (Snapshot, bool) {
	if !h.CanForward() {
		return Snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool {
	return h.cursor > 0
}

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool {
	return h.cursor+1 < len(h.entries)
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the cursor position.
func (h *History) Cursor() int {
	return h.cursor
}

// Entries returns a copy of the stored snapshots.
func (h *History) Entries() []Snapshot {
	out := make([]Snapshot, len(h.entries))
	copy(out, h.entries)
	return out
}
