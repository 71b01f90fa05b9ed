package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rpick/internal/config"
	statepkg "github.com/kk-code-lab/rpick/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOpener struct {
	opened chan string
	block  chan struct{}
}

func newRecordingOpener() *recordingOpener {
	return &recordingOpener{opened: make(chan string, 1)}
}

func (o *recordingOpener) Open(path string) error {
	if o.block != nil {
		<-o.block
	}
	o.opened <- path
	return nil
}

type fakeClipboard struct {
	available bool
	err       error
	written   []string
}

func (c *fakeClipboard) Available() bool { return c.available }

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.written = append(c.written, text)
	return nil
}

type testApp struct {
	*Application
	screen tcell.SimulationScreen
	root   string
	opener *recordingOpener
	out    *bytes.Buffer
	clip   *fakeClipboard
}

func testConfig() *config.AppConfig {
	cfg := config.DefaultConfig()
	watch := false
	cfg.Watch = &watch
	cfg.DoubleClickMs = 2000
	cfg.OpenGraceMs = 1000
	return cfg
}

// newTestApp builds an application over a temp directory holding, most
// recent first: docs/, banana.txt, Apple.txt.
func newTestApp(t *testing.T, cfg *config.AppConfig, printOnly bool) *testApp {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"docs/", "banana.txt", "Apple.txt"} {
		path := filepath.Join(root, filepath.Clean(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.Mkdir(path, 0o755))
		} else {
			require.NoError(t, os.WriteFile(path, []byte(name), 0o644))
		}
		stamp := base.Add(-time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(path, stamp, stamp))
	}

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 20)

	ta := &testApp{
		screen: screen,
		root:   root,
		opener: newRecordingOpener(),
		out:    &bytes.Buffer{},
		clip:   &fakeClipboard{available: true},
	}
	app, err := NewApplicationWithScreen(screen, Options{
		StartDir:  root,
		Config:    cfg,
		PrintOnly: printOnly,
		Output:    ta.out,
		Opener:    ta.opener,
		Clipboard: ta.clip,
	})
	require.NoError(t, err)
	ta.Application = app
	t.Cleanup(func() { _ = app.Close() })
	return ta
}

func (ta *testApp) runUntilExit(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		ta.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestNewApplicationLoadsStartDirectory(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)

	state := ta.State()
	require.Len(t, state.Visible, 4)
	assert.Equal(t, "..", state.Visible[0].Entry.Name)
	assert.Equal(t, "docs", state.Visible[1].Entry.Name)
	assert.True(t, state.ClipboardAvailable)
	assert.Equal(t, 80, state.ScreenWidth)
	assert.Equal(t, 20, state.ScreenHeight)
}

func TestNewApplicationRejectsInvalidConfig(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	cfg := config.DefaultConfig()
	cfg.DoubleClickMs = 1
	_, err := NewApplicationWithScreen(screen, Options{StartDir: t.TempDir(), Config: cfg})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRunTypeFilterAndPrintSelection(t *testing.T) {
	ta := newTestApp(t, testConfig(), true)

	for _, r := range "ban" {
		ta.screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	ta.screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	ta.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	ta.runUntilExit(t)
	require.NoError(t, ta.Finish())

	want := filepath.Join(ta.root, "banana.txt")
	assert.Equal(t, want+"\n", ta.out.String())
	assert.Empty(t, ta.opener.opened)
}

func TestRunEnterFileDispatchesOpen(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)

	ta.screen.InjectKey(tcell.KeyEnd, 0, tcell.ModNone)
	ta.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	ta.runUntilExit(t)
	require.NoError(t, ta.Finish())

	select {
	case path := <-ta.opener.opened:
		assert.Equal(t, filepath.Join(ta.root, "Apple.txt"), path)
	default:
		t.Fatal("expected open to be dispatched before Finish returned")
	}
	assert.Empty(t, ta.out.String())
}

func TestRunEscapeQuitsWithoutOpening(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)

	ta.screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	ta.screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	ta.runUntilExit(t)
	require.NoError(t, ta.Finish())

	require.NotNil(t, ta.State().Exit)
	assert.Equal(t, "", ta.State().Exit.OpenPath)
	assert.Empty(t, ta.opener.opened)
}

func TestRunEnterDirectoryThenBack(t *testing.T) {
	ta := newTestApp(t, testConfig(), true)

	ta.screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	ta.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	ta.screen.InjectKey(tcell.KeyLeft, 0, tcell.ModAlt)
	ta.screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	ta.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	ta.runUntilExit(t)
	require.NoError(t, ta.Finish())

	// Back restored selection 1 (docs); Down moved to banana.txt.
	assert.Equal(t, filepath.Join(ta.root, "banana.txt")+"\n", ta.out.String())
	assert.True(t, ta.State().History.CanForward())
}

func TestRunDoubleClickOpensDirectory(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)

	y := statepkg.ListStartY + 1 // docs
	ta.screen.InjectMouse(4, y, tcell.Button1, tcell.ModNone)
	ta.screen.InjectMouse(4, y, tcell.ButtonNone, tcell.ModNone)
	ta.screen.InjectMouse(4, y, tcell.Button1, tcell.ModNone)

	ta.runUntilExit(t)
	require.NoError(t, ta.Finish())

	assert.Equal(t, ta.root, ta.State().CurrentPath)
	assert.Equal(t, filepath.Join(ta.root, "docs"), <-ta.opener.opened)
}

func TestSingleClickEntersAfterWindow(t *testing.T) {
	cfg := testConfig()
	cfg.DoubleClickMs = 50
	ta := newTestApp(t, cfg, true)

	ta.screen.InjectMouse(4, statepkg.ListStartY+1, tcell.Button1, tcell.ModNone)
	done := make(chan struct{})
	go func() {
		ta.Run()
		close(done)
	}()

	// Let the double-click window pass before quitting.
	time.Sleep(300 * time.Millisecond)
	ta.screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Empty(t, ta.opener.opened)
	assert.Equal(t, filepath.Join(ta.root, "docs"), ta.State().CurrentPath)
}

func TestHandleMouseSelectsThenOpensOnSecondClick(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)
	y := statepkg.ListStartY + 2 // banana.txt

	ta.handleMouse(tcell.NewEventMouse(3, y, tcell.Button1, tcell.ModNone))
	require.Len(t, ta.actionCh, 1)
	assert.Equal(t, statepkg.SelectIndexAction{Index: 2}, <-ta.actionCh)
	assert.True(t, ta.click.active())

	ta.handleMouse(tcell.NewEventMouse(3, y, tcell.Button1, tcell.ModNone))
	require.Len(t, ta.actionCh, 1)
	assert.Equal(t, statepkg.OpenIndexAction{Index: 2}, <-ta.actionCh)
	assert.False(t, ta.click.active())
}

func TestHandleMouseIgnoresRowsOutsideList(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)

	ta.handleMouse(tcell.NewEventMouse(3, 0, tcell.Button1, tcell.ModNone))
	ta.handleMouse(tcell.NewEventMouse(3, statepkg.ListStartY+10, tcell.Button1, tcell.ModNone))
	ta.handleMouse(tcell.NewEventMouse(3, statepkg.ListStartY, tcell.Button2, tcell.ModNone))

	assert.Empty(t, ta.actionCh)
	assert.False(t, ta.click.active())
}

func TestHandleMouseWheelMovesSelection(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)

	ta.handleMouse(tcell.NewEventMouse(0, 5, tcell.WheelDown, tcell.ModNone))
	ta.handleMouse(tcell.NewEventMouse(0, 5, tcell.WheelUp, tcell.ModNone))

	assert.Equal(t, statepkg.MoveSelectionAction{Delta: wheelStep}, <-ta.actionCh)
	assert.Equal(t, statepkg.MoveSelectionAction{Delta: -wheelStep}, <-ta.actionCh)
}

func TestFirePendingClickSkipsMovedRow(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)

	ta.handleMouse(tcell.NewEventMouse(3, statepkg.ListStartY+1, tcell.Button1, tcell.ModNone))
	<-ta.actionCh
	ta.handleAction(statepkg.SetFilterAction{Query: "ban"})

	assert.False(t, ta.firePendingClick())
	assert.Equal(t, ta.root, ta.State().CurrentPath)
	assert.False(t, ta.click.active())
}

func TestKeyPressCancelsPendingClick(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)

	ta.handleMouse(tcell.NewEventMouse(3, statepkg.ListStartY+1, tcell.Button1, tcell.ModNone))
	<-ta.actionCh
	ta.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))

	assert.False(t, ta.click.active())
}

func TestYankCopiesSelectedPath(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)
	ta.handleAction(statepkg.SelectIndexAction{Index: 2})

	assert.True(t, ta.handleAction(statepkg.YankPathAction{}))

	require.Len(t, ta.clip.written, 1)
	assert.Equal(t, filepath.ToSlash(filepath.Join(ta.root, "banana.txt")), filepath.ToSlash(ta.clip.written[0]))
	assert.False(t, ta.State().LastYankTime.IsZero())
	assert.Nil(t, ta.State().LastError)
}

func TestYankFailureSetsLastError(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)
	ta.clip.err = errors.New("no display")

	ta.handleAction(statepkg.YankPathAction{})

	require.Error(t, ta.State().LastError)
	assert.Contains(t, ta.State().LastError.Error(), "no display")
	assert.True(t, ta.State().LastYankTime.IsZero())
}

func TestYankWithoutClipboardIsNoop(t *testing.T) {
	ta := newTestApp(t, testConfig(), false)
	ta.State().ClipboardAvailable = false

	assert.False(t, ta.handleAction(statepkg.YankPathAction{}))
	assert.Empty(t, ta.clip.written)
}

func TestFinishStopsWaitingAfterGrace(t *testing.T) {
	cfg := testConfig()
	cfg.OpenGraceMs = 20
	ta := newTestApp(t, cfg, false)
	ta.opener.block = make(chan struct{})
	defer close(ta.opener.block)

	ta.State().Exit = &statepkg.ExitRequest{OpenPath: filepath.Join(ta.root, "Apple.txt")}

	start := time.Now()
	require.NoError(t, ta.Finish())
	assert.Less(t, time.Since(start), time.Second)
}

func TestNormalizeClipboardPath(t *testing.T) {
	assert.Equal(t, `C:\Users\me\project\sub\file.txt`, normalizeClipboardPath(`C:\Users\me/project/sub/file.txt`, "windows"))
	assert.Equal(t, "/tmp/project/file.txt", normalizeClipboardPath("/tmp/project/dir/../file.txt", "linux"))
}
