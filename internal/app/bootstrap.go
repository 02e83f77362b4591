package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"recaf/cmd"
	"recaf/internal/config"
	"recaf/internal/control"
	"recaf/internal/natives"
	"recaf/internal/plugin"
	"recaf/internal/process"
	"recaf/internal/update"
	"recaf/pkg/logging"
)

// PluginHost is the plugin manager used during startup and by the plugins
// command.
type PluginHost interface {
	plugin.Host
	cmd.PluginCatalog
}

// UpdateChecker runs the startup update check and explicit self-updates.
type UpdateChecker interface {
	cmd.Updater
	Check(ctx context.Context, target update.Target, args []string) error
}

// Options configure a Bootstrap. Zero values select the production
// collaborators.
type Options struct {
	Version string
	Debug   bool

	State    *process.State
	Plugins  PluginHost
	Updater  UpdateChecker
	Hooks    config.HookRegistrar
	Frontend control.Frontend

	// PatchNatives locates native helpers before startup.
	PatchNatives func() (string, error)
	// PatchEnvironment adjusts the environment inherited by child processes.
	PatchEnvironment func() error

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Bootstrap drives recaf from process entry to a running controller.
type Bootstrap struct {
	opts  Options
	state *process.State
}

// New creates a Bootstrap and initializes CLI logging on opts.Err.
func New(opts Options) *Bootstrap {
	if opts.State == nil {
		opts.State = process.NewState()
	}
	if opts.PatchNatives == nil {
		opts.PatchNatives = natives.LoadAttach
	}
	if opts.PatchEnvironment == nil {
		opts.PatchEnvironment = PatchEnvironment
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	level := logging.LevelInfo
	if opts.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, opts.Err)

	return &Bootstrap{opts: opts, state: opts.State}
}

// State returns the process state shared with the controller.
func (b *Bootstrap) State() *process.State {
	return b.state
}

// Main is the standalone entry point.
func (b *Bootstrap) Main(ctx context.Context, args []string) error {
	if path, err := b.opts.PatchNatives(); err != nil {
		logging.Error("Bootstrap", err, "Failed to load attach helper, attaching to processes is unavailable")
	} else {
		logging.Debug("Bootstrap", "Using attach helper %s", path)
	}
	b.Init()
	return b.Launch(ctx, args)
}

// Init performs one-time environment patching and logs the startup banner.
// Only the first call on a given process state has any effect.
func (b *Bootstrap) Init() {
	if !b.state.MarkInitialized() {
		return
	}
	if err := b.opts.PatchEnvironment(); err != nil {
		logging.Warn("Bootstrap", "Failed to patch environment: %v", err)
	}
	logging.Info("Bootstrap", "Recaf-%s", b.opts.Version)
}

// Launch parses args, activates plugins, checks for updates and starts the
// selected controller. When args select no controller, such as a subcommand
// or --help, Launch returns once the command completes.
func (b *Bootstrap) Launch(ctx context.Context, args []string) error {
	deps := cmd.Dependencies{
		State:    b.state,
		Hooks:    b.opts.Hooks,
		Frontend: b.opts.Frontend,
		Version:  b.opts.Version,
		In:       b.opts.In,
		Out:      b.opts.Out,
		Err:      b.opts.Err,
	}
	if b.opts.Plugins != nil {
		deps.Plugins = b.opts.Plugins
	}
	if b.opts.Updater != nil {
		deps.Updater = b.opts.Updater
	}

	initializer := cmd.NewInitializer(deps)
	if err := initializer.Execute(ctx, args); err != nil {
		return err
	}
	controller := initializer.Controller()
	if controller == nil {
		return nil
	}

	b.state.SetHeadless(initializer.Headless())
	if b.opts.Plugins != nil {
		plugin.Activate(b.opts.Plugins)
	}
	b.checkForUpdates(ctx, controller, args)

	return initializer.StartController(ctx)
}

func (b *Bootstrap) checkForUpdates(ctx context.Context, target update.Target, args []string) {
	if b.opts.Updater == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("Bootstrap", fmt.Errorf("%v", rec), "Update check panicked")
		}
	}()
	if err := b.opts.Updater.Check(ctx, target, args); err != nil {
		logging.Error("Bootstrap", err, "Update check failed")
	}
}
