// Package control implements the two controller variants recaf can run with:
// a headless controller driven by scripts or a terminal prompt, and an
// interactive controller that hands execution to a graphical front-end.
package control

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"recaf/internal/config"
	"recaf/internal/process"
	"recaf/internal/workspace"
	"recaf/pkg/logging"
)

// ErrNoInstrumentation is returned when --instrument is used without an
// attaching host.
var ErrNoInstrumentation = errors.New("instrumentation requested but recaf was not attached to a process")

// EntryLoaderSource yields the entry loader active at call time.
type EntryLoaderSource interface {
	EntryLoader() workspace.EntryLoader
}

// Options configure a controller.
type Options struct {
	State      *process.State
	ConfigDir  string
	Hooks      config.HookRegistrar
	Loaders    EntryLoaderSource
	Input      string
	Script     string
	Instrument bool
	Debug      bool
}

// base carries what both controller variants share.
type base struct {
	opts    Options
	state   *process.State
	config  *config.Manager
	watcher *config.Watcher
}

func newBase(opts Options) base {
	if opts.Loaders == nil {
		opts.Loaders = defaultLoaders{}
	}
	return base{
		opts:   opts,
		state:  opts.State,
		config: config.NewManager(opts.ConfigDir, opts.Hooks),
	}
}

type defaultLoaders struct{}

func (defaultLoaders) EntryLoader() workspace.EntryLoader { return workspace.FileLoader{} }

// Config returns the controller's configuration manager.
func (b *base) Config() *config.Manager {
	return b.config
}

// State returns the process state the controller is installed in.
func (b *base) State() *process.State {
	return b.state
}

// setup initializes configuration and installs self as the process
// controller.
func (b *base) setup(self process.Controller) error {
	if b.state == nil {
		return errors.New("controller requires process state")
	}
	if err := b.config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	return b.state.SetController(self)
}

func (b *base) startWatcher() {
	watch := false
	_ = config.View(b.config, config.KeyBackend, func(backend *config.Backend) {
		watch = backend.WatchConfig
	})
	if !watch {
		return
	}
	b.watcher = config.NewWatcher(b.config)
	if err := b.watcher.Start(); err != nil {
		logging.Warn("Controller", "Config watching disabled: %v", err)
		b.watcher = nil
	}
}

func (b *base) stopWatcher() {
	if b.watcher != nil {
		b.watcher.Stop()
		b.watcher = nil
	}
}

// LoadWorkspace opens path with the entry loader active right now, makes it
// the current workspace and records it in the recent file list.
func (b *base) LoadWorkspace(ctx context.Context, path string) (*workspace.Workspace, error) {
	loader := b.opts.Loaders.EntryLoader()
	ws, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace %s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := b.config.UpdateBackend(func(backend *config.Backend) { backend.AddRecentFile(path) }); err != nil {
		logging.Warn("Controller", "Could not record recent file %s: %v", path, err)
	}
	b.state.SetWorkspace(ws)
	logging.Info("Controller", "Loaded workspace %s", ws)
	return ws, nil
}

// openInitialWorkspace opens the workspace named on the command line, if any.
func (b *base) openInitialWorkspace(ctx context.Context) error {
	if b.opts.Instrument {
		h := b.state.Instrumentation()
		if h == nil {
			return ErrNoInstrumentation
		}
		ws := workspace.FromInstrumentation(h)
		b.state.SetWorkspace(ws)
		logging.Info("Controller", "Using instrumented process %s", ws.Name)
		return nil
	}
	if b.opts.Input == "" {
		return nil
	}
	_, err := b.LoadWorkspace(ctx, b.opts.Input)
	return err
}
