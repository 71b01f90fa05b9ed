package app

import (
	"fmt"
	"time"

	"github.com/kk-code-lab/rpick/internal/log"
	"github.com/skratchdot/open-golang/open"
)

// Opener hands a path to the OS default application.
type Opener interface {
	// Open starts the handler and returns without waiting for it to exit.
	Open(path string) error
}

// SystemOpener uses xdg-open, open or start depending on the platform.
type SystemOpener struct{}

// Open implements Opener.
func (SystemOpener) Open(path string) error {
	return open.Start(path)
}

// dispatchOpen runs opener on its own goroutine. The returned channel is
// closed once the handler has been started or failed to start; failures are
// only logged.
func dispatchOpen(opener Opener, path string) <-chan struct{} {
	started := make(chan struct{})
	go func() {
		defer close(started)
		if err := opener.Open(path); err != nil {
			log.Printf("open %s: %v", path, err)
			return
		}
		log.Printf("open %s: dispatched", path)
	}()
	return started
}

// Finish acts on the session's exit request: the chosen path is printed in
// print mode, otherwise opened. It waits at most the configured grace period
// for the open to be dispatched, never for the handler itself.
func (app *Application) Finish() error {
	flushPendingInput()

	exit := app.state.Exit
	if exit == nil || exit.OpenPath == "" {
		return nil
	}

	if app.printOnly {
		if _, err := fmt.Fprintln(app.output, exit.OpenPath); err != nil {
			return fmt.Errorf("print selection: %w", err)
		}
		return nil
	}

	started := dispatchOpen(app.opener, exit.OpenPath)
	timer := time.NewTimer(app.openGrace)
	defer timer.Stop()
	select {
	case <-started:
	case <-timer.C:
		log.Printf("open %s: not started after %s, exiting anyway", exit.OpenPath, app.openGrace)
	}
	return nil
}
