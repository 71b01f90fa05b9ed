package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type MoveSelectionAction struct {
	Delta int
}
type SelectIndexAction struct {
	Index int
}

// EnterAction descends into the selected directory (or "..") or opens the
// selected file.
type EnterAction struct{}
type EnterIndexAction struct {
	Index int
}

// OpenAction hands the selected row to the OS default application, even
// when it is a directory.
type OpenAction struct{}
type OpenIndexAction struct {
	Index int
}

type GoUpAction struct{}
type GoToHistoryAction struct {
	Direction string // "back" or "forward"
}

// ===== FILTER ACTIONS =====

type SetFilterAction struct {
	Query string
}
type FilterCharAction struct {
	Char rune
}
type FilterBackspaceAction struct{}
type FilterDeleteWordAction struct{}
type FilterClearAction struct{}

// ===== SCROLL ACTIONS =====

type ScrollToStartAction struct{}
type ScrollToEndAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type RefreshAction struct{}
type YankPathAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
