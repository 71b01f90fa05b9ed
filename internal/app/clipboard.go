package app

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/kk-code-lab/rpick/internal/log"
)

// Clipboard receives yanked paths.
type Clipboard interface {
	Available() bool
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) Available() bool {
	return !clipboard.Unsupported
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// handleClipboard copies the selected path. Failures are shown in the status
// line through LastError until the next listing.
func (app *Application) handleClipboard() bool {
	if !app.state.ClipboardAvailable {
		return false
	}
	p := normalizeClipboardPath(app.state.CurrentFilePath(), runtime.GOOS)
	if err := app.clipboard.WriteAll(p); err != nil {
		log.Printf("yank %s: %v", p, err)
		app.state.LastError = fmt.Errorf("copy to clipboard: %w", err)
		return true
	}
	app.state.LastYankTime = time.Now()
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}
