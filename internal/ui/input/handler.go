package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the event ends the session.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action := Translate(ev)
		if action == nil {
			return true
		}
		ih.actionChan <- action
		_, quit := action.(statepkg.QuitAction)
		return !quit
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// Translate maps a key event to an action, or nil when the key is unbound.
// Every printable rune edits the filter, so there are no single-letter
// commands.
func Translate(ev *tcell.EventKey) statepkg.Action {
	alt := ev.Modifiers()&tcell.ModAlt != 0

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return statepkg.QuitAction{}

	case tcell.KeyUp:
		return statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		return statepkg.NavigateDownAction{}
	case tcell.KeyPgUp:
		return statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn:
		return statepkg.ScrollPageDownAction{}
	case tcell.KeyHome:
		return statepkg.ScrollToStartAction{}
	case tcell.KeyEnd:
		return statepkg.ScrollToEndAction{}

	case tcell.KeyLeft:
		if alt {
			return statepkg.GoToHistoryAction{Direction: "back"}
		}
		return nil
	case tcell.KeyRight:
		if alt {
			return statepkg.GoToHistoryAction{Direction: "forward"}
		}
		return nil

	case tcell.KeyEnter:
		if alt {
			return statepkg.OpenAction{}
		}
		return statepkg.EnterAction{}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if alt {
			return statepkg.FilterDeleteWordAction{}
		}
		return statepkg.FilterBackspaceAction{}
	case tcell.KeyCtrlW:
		return statepkg.FilterDeleteWordAction{}
	case tcell.KeyCtrlU:
		return statepkg.FilterClearAction{}

	case tcell.KeyCtrlY:
		return statepkg.YankPathAction{}
	case tcell.KeyCtrlR:
		return statepkg.RefreshAction{}
	case tcell.KeyCtrlZ:
		return statepkg.SuspendAction{}

	case tcell.KeyRune:
		r := ev.Rune()
		if alt || ev.Modifiers()&tcell.ModCtrl != 0 {
			return nil
		}
		if !unicode.IsPrint(r) {
			return nil
		}
		return statepkg.FilterCharAction{Char: r}
	}
	return nil
}
