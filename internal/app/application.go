package app

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpick/internal/config"
	"github.com/kk-code-lab/rpick/internal/log"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	inputui "github.com/kk-code-lab/rpick/internal/ui/input"
	renderui "github.com/kk-code-lab/rpick/internal/ui/render"
)

// Options configures a session.
type Options struct {
	// StartDir must be canonical (see fs.Canonicalize).
	StartDir string
	Config   *config.AppConfig
	// PrintOnly writes the chosen path to Output instead of opening it.
	PrintOnly bool
	Output    io.Writer
	// Opener and Clipboard default to the OS implementations.
	Opener    Opener
	Clipboard Clipboard
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action
	watcher  *DirWatcher

	opener    Opener
	clipboard Clipboard
	printOnly bool
	output    io.Writer

	doubleClick time.Duration
	openGrace   time.Duration
	click       pendingClick

	shouldQuit bool
	finiOnce   sync.Once
}

// NewApplication opens the terminal and prepares a session.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	app, err := NewApplicationWithScreen(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithScreen prepares a session on an initialised screen.
// A failing first listing is not fatal: it is shown in the status line.
func NewApplicationWithScreen(screen tcell.Screen, opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Parse mouse sequences so clicks don't leak as key events.
	screen.EnableMouse()

	startDir := opts.StartDir
	if startDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		startDir = cwd
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}
	opener := opts.Opener
	if opener == nil {
		opener = SystemOpener{}
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	state := statepkg.NewAppState(startDir)
	state.ClipboardAvailable = clip.Available()
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	actionCh := make(chan statepkg.Action, 10)
	renderer := renderui.NewRenderer(screen)
	renderer.SetTheme(renderui.GetColorTheme().ApplyTheme(cfg.Theme))

	app := &Application{
		screen:      screen,
		state:       state,
		reducer:     statepkg.NewStateReducer(),
		renderer:    renderer,
		input:       inputui.NewInputHandler(actionCh),
		actionCh:    actionCh,
		opener:      opener,
		clipboard:   clip,
		printOnly:   opts.PrintOnly,
		output:      output,
		doubleClick: cfg.DoubleClick(),
		openGrace:   cfg.OpenGrace(),
		click:       noClick(),
	}

	if cfg.WatchEnabled() {
		watcher, err := NewDirWatcher(watchDebounce)
		if err != nil {
			log.Printf("watcher unavailable: %v", err)
		} else {
			app.watcher = watcher
		}
	}

	if err := app.reducer.Reload(state); err != nil {
		log.Printf("initial listing: %v", err)
	}
	app.syncWatcher()
	return app, nil
}

// State returns the live session state.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// Close cleans up resources.
func (app *Application) Close() error {
	var err error
	if app.watcher != nil {
		err = app.watcher.Close()
	}
	app.fini()
	return err
}

func (app *Application) fini() {
	app.finiOnce.Do(app.screen.Fini)
}

// syncWatcher points the watcher at the current directory.
func (app *Application) syncWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Watch(app.state.CurrentPath); err != nil {
		log.Printf("watch %s: %v", app.state.CurrentPath, err)
	}
}

// watchEvents returns the watcher wake-up channel, or nil without a watcher.
func (app *Application) watchEvents() <-chan struct{} {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Events()
}
