package fs

import (
	"os"
	"time"
)

// ParentName is the display name of the synthesized parent-directory row.
const ParentName = ".."

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Hidden    bool
	Size      int64
	Modified  time.Time
	Accessed  time.Time
	// Recency is the sort key: access time, falling back to Modified, falling
	// back to the zero time.
	Recency time.Time
	Mode    os.FileMode
}

// IsParent reports whether the entry is the synthesized ".." row.
func (e Entry) IsParent() bool {
	return e.Name == ParentName
}

// ParentEntry builds the ".." row for dir. ok is false when dir has no
// resolvable parent (filesystem root).
func ParentEntry(dir string) (Entry, bool) {
	parent, ok := ParentDir(dir)
	if !ok {
		return Entry{}, false
	}
	return Entry{
		Name:     ParentName,
		FullPath: parent,
		IsDir:    true,
		Mode:     os.ModeDir,
	}, true
}
