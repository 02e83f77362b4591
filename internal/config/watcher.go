package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"recaf/pkg/logging"
)

// DefaultDebounceInterval is the time to wait after the last change to a
// section file before reloading it.
const DefaultDebounceInterval = 500 * time.Millisecond

// Watcher reloads sections when their files are edited outside the process.
type Watcher struct {
	mu sync.Mutex

	manager  *Manager
	debounce time.Duration

	fsWatcher *fsnotify.Watcher
	stopCh    chan struct{}
	running   bool

	timers map[string]*time.Timer
}

// NewWatcher creates a watcher for the manager's directory.
func NewWatcher(m *Manager) *Watcher {
	return &Watcher{
		manager:  m,
		debounce: DefaultDebounceInterval,
		timers:   make(map[string]*time.Timer),
	}
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(w.manager.Dir()); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory %s: %w", w.manager.Dir(), err)
	}

	w.fsWatcher = watcher
	w.stopCh = make(chan struct{})
	w.running = true

	// Channels are captured here so Stop cannot race with the reader.
	go w.processEvents(watcher.Events, watcher.Errors, w.stopCh)

	logging.Info("ConfigWatcher", "Watching %s for config changes", w.manager.Dir())
	return nil
}

// Stop ends watching and cancels pending reloads.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	w.fsWatcher.Close()
	w.fsWatcher = nil

	for name, timer := range w.timers {
		timer.Stop()
		delete(w.timers, name)
	}
}

func (w *Watcher) processEvents(eventsCh <-chan fsnotify.Event, errorsCh <-chan error, stopCh <-chan struct{}) {
	for {
		select {
		case <-stopCh:
			return
		case event, ok := <-eventsCh:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-errorsCh:
			if !ok {
				return
			}
			logging.Error("ConfigWatcher", err, "fsnotify error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	name, ok := sectionName(event.Name)
	if !ok {
		return
	}
	logging.Debug("ConfigWatcher", "Config file changed: %s", event.Name)
	w.reloadDebounced(name)
}

// sectionName maps "<dir>/<key>.json" to key. Temporary files are ignored.
func sectionName(path string) (string, bool) {
	base := filepath.Base(path)
	if filepath.Ext(base) != fileExtension {
		return "", false
	}
	name := strings.TrimSuffix(base, fileExtension)
	return name, name != ""
}

func (w *Watcher) reloadDebounced(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if timer, ok := w.timers[name]; ok {
		timer.Stop()
	}
	w.timers[name] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		running := w.running
		delete(w.timers, name)
		w.mu.Unlock()

		if !running {
			return
		}
		if err := w.manager.Reload(name); err != nil {
			logging.Warn("ConfigWatcher", "Reload of %s failed: %v", name, err)
		}
	})
}
