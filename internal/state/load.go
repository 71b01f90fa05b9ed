package state

import (
	fsutil "github.com/kk-code-lab/rpick/internal/fs"
	"github.com/kk-code-lab/rpick/internal/log"
)

// ListFunc reads a directory listing in display order.
type ListFunc func(dir string) ([]FileEntry, error)

// LoadDirectory re-reads state.CurrentPath with list and rebuilds the visible
// list. A failed read leaves only the ".." row and is returned.
func LoadDirectory(state *AppState, list ListFunc) error {
	if list == nil {
		list = fsutil.List
	}

	entries, err := list(state.CurrentPath)
	if err != nil {
		log.Printf("load %s: %v", state.CurrentPath, err)
		state.Files = nil
		state.LastError = err
		state.rebuildVisible()
		return err
	}

	state.Files = entries
	state.LastError = nil
	state.rebuildVisible()
	return nil
}
