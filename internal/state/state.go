package state

import (
	"time"

	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	search "github.com/kk-code-lab/rpick/internal/search"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry
type MatchRuns = search.Runs
type MatchSpan = search.MatchSpan

// VisibleEntry is one row of the visible list: the ".." row or a listed entry
// that survived the filter, with its highlight runs.
type VisibleEntry struct {
	Entry FileEntry
	Runs  MatchRuns
}

// IsParent reports whether the row is the synthesized ".." row.
func (v VisibleEntry) IsParent() bool {
	return v.Entry.IsParent()
}

// ExitRequest ends the session. A non-empty OpenPath is handed to the OS
// default application before the process exits.
type ExitRequest struct {
	OpenPath string
}

// AppState is the single source of truth
type AppState struct {
	// Navigation & filesystem
	CurrentPath string
	Files       []FileEntry // Last listing of CurrentPath, recency order
	History     History

	// Filtering
	FilterQuery string

	// Selection & viewport
	Visible       []VisibleEntry
	SelectedIndex int
	ScrollOffset  int

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	ClipboardAvailable bool
	LastYankTime       time.Time

	// LastError holds the failure of the most recent listing, if any.
	LastError error

	// Exit is set when the session should terminate.
	Exit *ExitRequest
}

// NewAppState creates the startup state for dir. dir should already be
// canonical; the listing is not read until the first reload.
func NewAppState(dir string) *AppState {
	return &AppState{
		CurrentPath: dir,
	}
}

// snapshot captures the current navigation position.
func (s *AppState) snapshot() Snapshot {
	return Snapshot{
		Dir:      s.CurrentPath,
		Filter:   s.FilterQuery,
		Selected: s.SelectedIndex,
	}
}

// restore applies a history snapshot verbatim.
func (s *AppState) restore(snap Snapshot) {
	s.CurrentPath = snap.Dir
	s.FilterQuery = snap.Filter
	s.SelectedIndex = snap.Selected
}

// ShouldExit reports whether the session has ended.
func (s *AppState) ShouldExit() bool {
	return s.Exit != nil
}
