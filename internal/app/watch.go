package app

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kk-code-lab/rpick/internal/log"
)

// watchDebounce groups bursts of changes (an unpacking archive, a build)
// into one re-list.
const watchDebounce = 150 * time.Millisecond

// DirWatcher watches one directory at a time and signals on Events when its
// entries change. Signals are coalesced; a pending signal absorbs later ones.
type DirWatcher struct {
	watcher  *fsnotify.Watcher
	events   chan struct{}
	done     chan struct{}
	debounce time.Duration

	mu      sync.Mutex
	current string
	closed  bool
}

// NewDirWatcher starts the watcher goroutine.
func NewDirWatcher(debounce time.Duration) (*DirWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &DirWatcher{
		watcher:  watcher,
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	go w.run()
	return w, nil
}

// Events delivers one value per settled burst of changes.
func (w *DirWatcher) Events() <-chan struct{} {
	return w.events
}

// Watch moves the watch to dir. Watching the same directory again is a
// no-op.
func (w *DirWatcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || dir == w.current {
		return nil
	}
	if w.current != "" {
		if err := w.watcher.Remove(w.current); err != nil {
			log.Printf("watch: remove %s: %v", w.current, err)
		}
		w.current = ""
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.current = dir
	return nil
}

// Close stops the watcher.
func (w *DirWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}

func (w *DirWatcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *DirWatcher) run() {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Chmod also fires for atime updates caused by our own listing.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timerCh != nil {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C
		case <-timerCh:
			timerCh = nil
			w.signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}
