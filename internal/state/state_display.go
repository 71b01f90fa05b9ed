package state

import (
	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	search "github.com/kk-code-lab/rpick/internal/search"
)

// ListStartY is the first screen row of the entry list (below the header and
// the filter line); one status row sits below the list.
const ListStartY = 2

// rebuildVisible derives the visible list from the last listing and the
// filter, then clamps the selection.
func (s *AppState) rebuildVisible() {
	visible := make([]VisibleEntry, 0, len(s.Files)+1)

	if parent, ok := fsutil.ParentEntry(s.CurrentPath); ok {
		runs, _ := search.Match("", parent.Name)
		visible = append(visible, VisibleEntry{Entry: parent, Runs: runs})
	}

	for _, f := range s.Files {
		runs, ok := search.Match(s.FilterQuery, f.Name)
		if !ok {
			continue
		}
		visible = append(visible, VisibleEntry{Entry: f, Runs: runs})
	}

	s.Visible = visible
	s.clampSelection()
}

// clampSelection keeps SelectedIndex inside the visible list, or at 0 when
// the list is empty.
func (s *AppState) clampSelection() {
	s.SelectedIndex = clamp(s.SelectedIndex, 0, len(s.Visible)-1)
	s.ensureSelectionVisible()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ListHeight returns the number of rows available to the entry list.
func (s *AppState) ListHeight() int {
	h := s.ScreenHeight - ListStartY - 1
	if h < 1 {
		return 1
	}
	return h
}

// ensureSelectionVisible scrolls the viewport so the selection is on screen.
func (s *AppState) ensureSelectionVisible() {
	height := s.ListHeight()
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ScrollOffset+height {
		s.ScrollOffset = s.SelectedIndex - height + 1
	}
	maxOffset := len(s.Visible) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	s.ScrollOffset = clamp(s.ScrollOffset, 0, maxOffset)
}

// VisibleAt returns the row at idx.
func (s *AppState) VisibleAt(idx int) (VisibleEntry, bool) {
	if idx < 0 || idx >= len(s.Visible) {
		return VisibleEntry{}, false
	}
	return s.Visible[idx], true
}

// CurrentEntry returns the selected row, or nil when the list is empty.
func (s *AppState) CurrentEntry() *VisibleEntry {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Visible) {
		return nil
	}
	return &s.Visible[s.SelectedIndex]
}

// CurrentFilePath returns the full path of the selected row, or the current
// directory when nothing is selected.
func (s *AppState) CurrentFilePath() string {
	if entry := s.CurrentEntry(); entry != nil {
		return entry.Entry.FullPath
	}
	return s.CurrentPath
}

// RowAt maps a screen row to a visible-list index.
func (s *AppState) RowAt(y int) (int, bool) {
	row := y - ListStartY
	if row < 0 || row >= s.ListHeight() {
		return 0, false
	}
	idx := s.ScrollOffset + row
	if idx >= len(s.Visible) {
		return 0, false
	}
	return idx, true
}
