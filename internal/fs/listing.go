package fs

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/kk-code-lab/rpick/internal/log"
	"golang.org/x/text/unicode/norm"
)

// Seams for tests: infoFn reads per-entry metadata, statFn resolves symlink
// targets.
var (
	infoFn = func(de os.DirEntry) (os.FileInfo, error) { return de.Info() }
	statFn = os.Stat
)

// List reads the immediate children of dir and returns them sorted by recency,
// most recently touched first. Entries whose metadata cannot be read are
// skipped. The read is synchronous.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ListError{Path: dir, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if skipEntry(filepath.Join(dir, de.Name())) {
			continue
		}
		info, err := infoFn(de)
		if err != nil {
			log.Printf("list %s: skipping %q: %v", dir, de.Name(), err)
			continue
		}
		entries = append(entries, entryFromInfo(dir, de.Name(), info))
	}

	SortByRecency(entries)
	return entries, nil
}

func entryFromInfo(dir, rawName string, info os.FileInfo) Entry {
	fullPath := filepath.Join(dir, rawName)
	isDir := info.IsDir()
	isSymlink := info.Mode()&os.ModeSymlink != 0

	// For symlinks, list the target's kind.
	if isSymlink {
		if target, err := statFn(fullPath); err == nil {
			isDir = target.IsDir()
		}
	}

	accessed, modified := fileTimes(info)
	return Entry{
		Name:      DisplayName(rawName),
		FullPath:  fullPath,
		IsDir:     isDir,
		IsSymlink: isSymlink,
		Hidden:    IsHidden(fullPath, rawName),
		Size:      info.Size(),
		Modified:  modified,
		Accessed:  accessed,
		Recency:   RecencyKey(accessed, modified),
		Mode:      info.Mode(),
	}
}

// DisplayName is the name shown and matched for rawName: invalid UTF-8 bytes
// become U+FFFD and the result is NFC-normalized. FullPath keeps the raw name.
func DisplayName(rawName string) string {
	return norm.NFC.String(strings.ToValidUTF8(rawName, "\uFFFD"))
}

func fileTimes(info os.FileInfo) (accessed, modified time.Time) {
	modified = info.ModTime()
	if info.Sys() == nil {
		return time.Time{}, modified
	}
	ts := times.Get(info)
	return ts.AccessTime(), modified
}

// RecencyKey picks the access time, then the modify time, then the zero
// time. Unix epoch counts as unavailable.
func RecencyKey(accessed, modified time.Time) time.Time {
	if usableTime(accessed) {
		return accessed
	}
	if usableTime(modified) {
		return modified
	}
	return time.Time{}
}

func usableTime(t time.Time) bool {
	return !t.IsZero() && t.Unix() != 0
}

// SortByRecency orders entries by descending recency key. Equal keys fall
// back to name and then path so repeated listings never reorder.
func SortByRecency(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := b.Recency.Compare(a.Recency); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.FullPath, b.FullPath)
	})
}

// ParentDir returns the lexical parent of dir, or false at the root.
func ParentDir(dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	clean := filepath.Clean(dir)
	parent := filepath.Dir(clean)
	if parent == clean || parent == "" {
		return "", false
	}
	return parent, true
}

// Canonicalize returns an absolute, symlink-free form of path.
func Canonicalize(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", &ListError{Path: resolved, Err: os.ErrInvalid}
	}
	return resolved, nil
}
