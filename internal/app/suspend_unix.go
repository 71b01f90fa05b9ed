//go:build !windows

package app

import (
	"os"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

// contSignals are delivered when the shell resumes a stopped session.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

// suspendToShell hands the terminal back and stops only this process, so a
// wrapper shell function stays in the foreground job and `fg` resumes rpick.
func (app *Application) suspendToShell() {
	app.click = noClick()
	if err := app.screen.Suspend(); err != nil {
		return
	}
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

// resumeAfterStop takes the terminal back after SIGCONT. Mouse reporting is
// lost across a suspend and has to be re-enabled.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.state.ScreenWidth = w
		app.state.ScreenHeight = h
	}
	return true
}

func flushPendingInput() {}
