package state

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kk-code-lab/rpick/internal/log"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	list ListFunc
}

// NewStateReducer creates a reducer that lists directories from disk.
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// NewStateReducerWithLister creates a reducer backed by list.
func NewStateReducerWithLister(list ListFunc) *StateReducer {
	return &StateReducer{list: list}
}

// Reload re-reads the current directory and rebuilds the visible list.
func (r *StateReducer) Reload(state *AppState) error {
	return LoadDirectory(state, r.list)
}

// Reduce applies an action, then re-reads the current directory and rebuilds
// the visible list, so every update cycle sees fresh directory contents.
// The returned error is a listing failure; it is also kept in
// state.LastError.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if !r.apply(state, action) || state.ShouldExit() {
		return state, nil
	}
	return state, r.Reload(state)
}

// apply mutates state for action. It reports whether a reload is needed.
func (r *StateReducer) apply(state *AppState, action Action) bool {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateUpAction:
		r.moveSelection(state, -1)
	case NavigateDownAction:
		r.moveSelection(state, 1)
	case MoveSelectionAction:
		r.moveSelection(state, a.Delta)
	case ScrollPageUpAction:
		r.moveSelection(state, -state.ListHeight())
	case ScrollPageDownAction:
		r.moveSelection(state, state.ListHeight())
	case ScrollToStartAction:
		state.SelectedIndex = 0
	case ScrollToEndAction:
		state.SelectedIndex = len(state.Visible) - 1
	case SelectIndexAction:
		state.SelectedIndex = a.Index

	case EnterAction:
		r.enter(state, state.SelectedIndex, false)
	case EnterIndexAction:
		state.SelectedIndex = a.Index
		r.enter(state, a.Index, false)
	case OpenAction:
		r.enter(state, state.SelectedIndex, true)
	case OpenIndexAction:
		state.SelectedIndex = a.Index
		r.enter(state, a.Index, true)

	case GoUpAction:
		if len(state.Visible) > 0 && state.Visible[0].IsParent() {
			r.enter(state, 0, false)
		}

	case GoToHistoryAction:
		r.goToHistory(state, a.Direction)

	// ===== FILTER =====

	case SetFilterAction:
		state.FilterQuery = a.Query
	case FilterCharAction:
		if a.Char != utf8.RuneError && unicode.IsPrint(a.Char) {
			state.FilterQuery += string(a.Char)
		}
	case FilterBackspaceAction:
		if state.FilterQuery != "" {
			_, size := utf8.DecodeLastRuneInString(state.FilterQuery)
			state.FilterQuery = state.FilterQuery[:len(state.FilterQuery)-size]
		}
	case FilterDeleteWordAction:
		state.FilterQuery = deleteLastWord(state.FilterQuery)
	case FilterClearAction:
		state.FilterQuery = ""

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
	case RefreshAction:
		// The reload below is the refresh.

	// ===== APPLICATION =====

	case QuitAction:
		state.Exit = &ExitRequest{}
		return false

	default:
		log.Printf("reducer: ignoring %T", action)
		return false
	}
	return true
}

func (r *StateReducer) moveSelection(state *AppState, delta int) {
	state.SelectedIndex = clamp(state.SelectedIndex+delta, 0, len(state.Visible)-1)
}

// enter acts on the row at idx. Directories and ".." are descended into
// unless force is set; files (and forced directories) end the session with
// an open request.
func (r *StateReducer) enter(state *AppState, idx int, force bool) {
	row, ok := state.VisibleAt(idx)
	if !ok {
		return
	}
	r.enterEntry(state, row.Entry, force)
}

func (r *StateReducer) enterEntry(state *AppState, entry FileEntry, force bool) {
	if entry.IsDir && !force {
		state.History.Push(state.snapshot())
		state.CurrentPath = entry.FullPath
		state.FilterQuery = ""
		// SelectedIndex carries over and is re-clamped against the new listing.
		log.Printf("enter %s", entry.FullPath)
		return
	}

	log.Printf("open %s", entry.FullPath)
	state.Exit = &ExitRequest{OpenPath: entry.FullPath}
}

func (r *StateReducer) goToHistory(state *AppState, direction string) {
	var (
		snap Snapshot
		ok   bool
	)
	switch direction {
	case "back":
		snap, ok = state.History.Back(state.snapshot())
	case "forward":
		snap, ok = state.History.Forward()
	default:
		log.Printf("history: unknown direction %q", direction)
		return
	}
	if !ok {
		return
	}
	state.restore(snap)
}

func deleteLastWord(query string) string {
	trimmed := strings.TrimRightFunc(query, isWordSeparator)
	idx := strings.LastIndexFunc(trimmed, isWordSeparator)
	if idx < 0 {
		return ""
	}
	return trimmed[:idx+1]
}

func isWordSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '.' || r == '_' || r == '-' || r == '/'
}

// String describes the state for debug logs.
func (s *AppState) String() string {
	return fmt.Sprintf("dir=%s filter=%q selected=%d/%d history=%d@%d",
		s.CurrentPath, s.FilterQuery, s.SelectedIndex, len(s.Visible), s.History.Len(), s.History.Cursor())
}
