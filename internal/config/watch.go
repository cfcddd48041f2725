package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/vicore/internal/logging"
)

// ReloadFunc receives a reloaded configuration, or the error that stopped
// the reload.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a configuration file when it changes.
type Watcher struct {
	path   string
	fn     ReloadFunc
	logger *logging.Logger

	watcher  *fsnotify.Watcher
	closeCh  chan struct{}
	closedWg sync.WaitGroup
	once     sync.Once
}

// Watch starts reloading path on every write or create and calls fn with
// the result. The directory is watched rather than the file so that
// editors which replace the file are followed.
func Watch(path string, fn ReloadFunc, logger *logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}

	w := &Watcher{
		path:    abs,
		fn:      fn,
		logger:  logger.WithComponent("config"),
		watcher: fsw,
		closeCh: make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// Close stops watching. No callback runs after Close returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		w.closedWg.Wait()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("reload %s: %v", w.path, err)
			} else {
				w.logger.Info("reloaded %s", w.path)
			}
			w.fn(cfg, err)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch %s: %v", w.path, err)
			w.fn(nil, err)
		}
	}
}
