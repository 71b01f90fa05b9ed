// Package log is a file-backed debug log. The terminal is owned by the UI, so
// nothing is ever written to stdout or stderr; messages are buffered until a
// destination is chosen with SetFile.
package log

import (
	"log"
	"os"
	"sync"
)

// maxBuffered caps the pre-SetFile buffer.
const maxBuffered = 64 * 1024

// DebugLogger implements io.Writer for the package-level standard logger.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (l *DebugLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.discard {
		return len(p), nil
	}
	if l.file != nil {
		return l.file.Write(p)
	}
	if len(l.buffer)+len(p) > maxBuffered {
		return len(p), nil
	}
	l.buffer = append(l.buffer, p...)
	return len(p), nil
}

// SetFile directs the log to path, flushing anything buffered so far. An
// empty path discards buffered and future messages.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.file = f
	globalDebugLogger.discard = false
	if len(globalDebugLogger.buffer) > 0 {
		_, _ = f.Write(globalDebugLogger.buffer)
		globalDebugLogger.buffer = nil
	}
	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the log file if one is open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file == nil {
		return nil
	}
	err := globalDebugLogger.file.Close()
	globalDebugLogger.file = nil
	globalDebugLogger.discard = true
	return err
}
