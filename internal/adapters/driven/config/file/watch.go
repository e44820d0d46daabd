package file

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sovereign-explorer/internal/logger"
)

// debounceInterval collapses editor write bursts into one reload.
const debounceInterval = 100 * time.Millisecond

// Watcher reloads the config store when its file changes on disk, so a
// token refresh or backend switch takes effect without restarting.
type Watcher struct {
	store     *ConfigStore
	fsWatcher *fsnotify.Watcher
	onReload  func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher starts watching the store's config file. onReload, if not
// nil, runs after every successful reload.
func NewWatcher(store *ConfigStore, onReload func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace files via
	// rename, which drops a watch on the file itself.
	if err := fsWatcher.Add(filepath.Dir(store.Path())); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{store: store, fsWatcher: fsWatcher, onReload: onReload}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Name != w.store.Path() {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

// scheduleReload resets the debounce timer.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceInterval, w.reload)
}

func (w *Watcher) reload() {
	if err := w.store.Load(); err != nil {
		logger.Warn("reloading config: %v", err)
		return
	}
	logger.Debug("config reloaded from %s", w.store.Path())
	if w.onReload != nil {
		w.onReload()
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsWatcher.Close()
}
