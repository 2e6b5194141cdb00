package vcsdriver

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var watchLog = log.New(log.Writer(), "[vcsdriver] ", log.Flags())

const watchDebounce = 400 * time.Millisecond

// Watcher watches a repository's .git metadata for ref movement and calls
// onChange (debounced) when HEAD or any ref tip may have moved. It is a
// supplemental, optional feature: the adapter can use it to invalidate a
// cached Count() result instead of polling. Grounded directly on
// internal/workspace/git_watcher.go's fsnotify usage and debounce-timer
// pattern.
type Watcher struct {
	watcher   *fsnotify.Watcher
	onChange  func()
	stopCh    chan struct{}
	stopOnce  sync.Once
	timerMu   sync.Mutex
	timer     *time.Timer
}

// NewWatcher creates a watcher for gitDir (the repository's .git directory).
// Returns nil, err if the underlying OS watch cannot be established; callers
// should treat a nil Watcher as "no live refresh available" rather than fatal.
func NewWatcher(gitDir string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher:  fw,
		onChange: onChange,
		stopCh:   make(chan struct{}),
	}
	if err := fw.Add(gitDir); err != nil {
		fw.Close()
		return nil, err
	}
	refsDir := filepath.Join(gitDir, "refs")
	_ = fw.Add(refsDir) // best-effort; refs/ may not exist yet for a bare HEAD-only repo
	return w, nil
}

// Start launches the watch loop in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop terminates the watch loop. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case _, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.debounce()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			watchLog.Printf("error: %v", err)
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) debounce() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, w.onChange)
}
