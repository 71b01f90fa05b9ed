package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixture describes one child of a test directory. Higher age means less
// recently accessed.
type fixture struct {
	name string
	dir  bool
	age  time.Duration
}

const hour = time.Hour

var fixtureBase = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func makeTree(t *testing.T, root string, children ...fixture) {
	t.Helper()
	for _, c := range children {
		path := filepath.Join(root, c.name)
		if c.dir {
			require.NoError(t, os.MkdirAll(path, 0o755))
		} else {
			require.NoError(t, os.WriteFile(path, []byte(c.name), 0o644))
		}
		stamp := fixtureBase.Add(-c.age)
		require.NoError(t, os.Chtimes(path, stamp, stamp))
	}
}

// newTestState builds a loaded state rooted at a fresh temp directory.
func newTestState(t *testing.T, children ...fixture) (*AppState, *StateReducer, string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	makeTree(t, root, children...)

	state := NewAppState(root)
	state.ScreenWidth = 80
	state.ScreenHeight = 24
	reducer := NewStateReducer()
	require.NoError(t, reducer.Reload(state))
	return state, reducer, root
}

func reduce(t *testing.T, r *StateReducer, s *AppState, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		_, err := r.Reduce(s, a)
		require.NoError(t, err, "action %T", a)
	}
}

func visibleNames(s *AppState) []string {
	out := make([]string, len(s.Visible))
	for i, v := range s.Visible {
		out[i] = v.Entry.Name
	}
	return out
}

func typeFilter(t *testing.T, r *StateReducer, s *AppState, text string) {
	t.Helper()
	for _, ch := range text {
		reduce(t, r, s, FilterCharAction{Char: ch})
	}
}
