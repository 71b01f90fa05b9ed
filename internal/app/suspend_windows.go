//go:build windows

package app

import (
	"os"

	"github.com/kk-code-lab/rpick/internal/log"
	"golang.org/x/sys/windows"
)

// Windows has no job control: no SIGCONT and suspend is a no-op.
func contSignals() []os.Signal {
	return nil
}

func (app *Application) suspendToShell() {}

func (app *Application) resumeAfterStop() bool {
	return false
}

// flushPendingInput drops keystrokes typed while the UI was closing so they
// do not reach the shell.
func flushPendingInput() {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err == nil {
		err = windows.FlushConsoleInputBuffer(handle)
	}
	if err != nil {
		log.Printf("flush console input: %v", err)
	}
}
