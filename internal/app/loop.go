package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpick/internal/log"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	renderui "github.com/kk-code-lab/rpick/internal/ui/render"
)

// wheelStep is the number of rows one wheel notch moves the selection.
const wheelStep = 3

// pendingClick is a single click waiting out the double-click window before
// it enters the row.
type pendingClick struct {
	index int
	path  string
	at    time.Time
}

func noClick() pendingClick {
	return pendingClick{index: -1}
}

func (c pendingClick) active() bool {
	return c.index >= 0
}

// Run processes events until the session ends. The screen is finalised on
// return; call Finish afterwards to act on the exit request.
func (app *Application) Run() {
	defer app.fini()

	app.renderer.Render(app.state)
	renderPending := false

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var (
		clickTimer *time.Timer
		clickCh    <-chan time.Time
		flashTimer *time.Timer
		flashCh    <-chan time.Time
	)
	stopTimer := func(t *time.Timer) {
		if t != nil && !t.Stop() {
			select {
			case <-t.C:
			default:
			}
		}
	}
	armTimer := func(t **time.Timer, d time.Duration) <-chan time.Time {
		if *t == nil {
			*t = time.NewTimer(d)
		} else {
			stopTimer(*t)
			(*t).Reset(d)
		}
		return (*t).C
	}
	defer func() {
		stopTimer(clickTimer)
		stopTimer(flashTimer)
	}()

	for !app.shouldQuit && !app.state.ShouldExit() {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		clickAt := app.click.at
		yankedAt := app.state.LastYankTime

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-clickCh:
			clickCh = nil
			if app.firePendingClick() {
				renderPending = true
			}
		case <-flashCh:
			// Repaint once the yank confirmation has expired.
			flashCh = nil
			renderPending = true
		case <-app.watchEvents():
			log.Printf("watch: %s changed", app.state.CurrentPath)
			if app.handleAction(statepkg.RefreshAction{}) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}

		if !app.click.active() {
			stopTimer(clickTimer)
			clickCh = nil
		} else if !app.click.at.Equal(clickAt) {
			clickCh = armTimer(&clickTimer, app.doubleClick)
		}
		if !app.state.LastYankTime.Equal(yankedAt) {
			flashCh = armTimer(&flashTimer, renderui.YankFlashDuration)
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		// Typing abandons a click that has not fired yet.
		app.click = noClick()
		app.input.ProcessEvent(ev)
	case *tcell.EventResize:
		app.input.ProcessEvent(ev)
		app.screen.Sync()
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps primary clicks and the wheel to list actions. A click
// selects the row and enters it once the double-click window passes; a
// second click on the same row inside the window opens it instead.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.MoveSelectionAction{Delta: -wheelStep}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.MoveSelectionAction{Delta: wheelStep}
		return
	case buttons&tcell.Button1 == 0:
		return
	}

	_, y := ev.Position()
	idx, ok := app.state.RowAt(y)
	if !ok {
		return
	}
	row, _ := app.state.VisibleAt(idx)
	now := time.Now()

	if app.click.index == idx && app.click.path == row.Entry.FullPath && now.Sub(app.click.at) <= app.doubleClick {
		app.click = noClick()
		app.actionCh <- statepkg.OpenIndexAction{Index: idx}
		return
	}

	app.click = pendingClick{index: idx, path: row.Entry.FullPath, at: now}
	app.actionCh <- statepkg.SelectIndexAction{Index: idx}
}

// firePendingClick enters the clicked row if it is still where it was.
func (app *Application) firePendingClick() bool {
	click := app.click
	app.click = noClick()
	if !click.active() {
		return false
	}
	row, ok := app.state.VisibleAt(click.index)
	if !ok || row.Entry.FullPath != click.path {
		log.Printf("click: row %d moved, ignoring", click.index)
		return false
	}
	return app.handleAction(statepkg.EnterIndexAction{Index: click.index})
}

func (app *Application) processActions() bool {
	changed := false
	for !app.shouldQuit && !app.state.ShouldExit() {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
	return changed
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		app.state.Exit = &statepkg.ExitRequest{}
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathAction:
		return app.handleClipboard()
	}

	before := app.state.CurrentPath
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		log.Printf("%T: %v", action, err)
	}
	if app.state.CurrentPath != before {
		app.syncWatcher()
	}
	return true
}
