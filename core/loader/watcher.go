package loader

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/passforge/passforge/core/apperr"
)

// Watcher re-invokes Load whenever an account file (or the index itself)
// changes on disk, debouncing bursts of writes the way cli/watch_cmd.go's
// scan loop debounces filesystem events, adapted here from "re-scan a
// directory tree" to "re-load one account index and its named files".
// This is additive convenience for long-running host processes; the core
// facade itself stays synchronous and single-threaded.
type Watcher struct {
	indexPath string
	opts      Options
	debounce  time.Duration
	onReload  func(*Result, error)

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	timer   *time.Timer
	done    chan struct{}
}

// NewWatcher creates a Watcher for indexPath, calling onReload with the
// result of every re-Load triggered by a filesystem change. debounce <= 0
// defaults to 500ms, the same default cli/watch_cmd.go uses.
func NewWatcher(indexPath string, opts Options, debounce time.Duration, onReload func(*Result, error)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperr.Wrap(apperr.IOFailure, indexPath, err, "creating account file watcher")
	}
	w := &Watcher{
		indexPath: indexPath,
		opts:      opts,
		debounce:  debounce,
		onReload:  onReload,
		watcher:   fw,
		done:      make(chan struct{}),
	}
	return w, nil
}

// Start performs an initial Load, adds the index and every account file it
// names to the underlying fsnotify watch set, and begins the debounced
// event loop in a new goroutine. Call Close to stop it.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.indexPath); err != nil {
		return apperr.Wrap(apperr.IOFailure, w.indexPath, err, "watching account index")
	}
	paths, err := readIndex(w.indexPath)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := w.watcher.Add(p); err != nil {
			return apperr.Wrap(apperr.IOFailure, p, err, "watching account file %s", p)
		}
	}

	result, loadErr := Load(w.indexPath, w.opts)
	w.onReload(result, loadErr)

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				w.resetTimer()
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) resetTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		result, err := Load(w.indexPath, w.opts)
		w.onReload(result, err)
	})
}

// Close stops the watch loop and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
