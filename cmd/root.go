package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"recaf/internal/config"
	"recaf/internal/control"
	"recaf/internal/plugin"
	"recaf/internal/process"
	"recaf/pkg/logging"
)

// Exit codes for the recaf binary.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
)

// ErrNoController is returned by StartController when argument parsing did
// not build a controller, e.g. after --help or a subcommand.
var ErrNoController = errors.New("no controller was initialized")

// Controller is a controller the command line can build and start.
type Controller interface {
	process.Controller
	Setup() error
	Config() *config.Manager
}

// PluginCatalog is the plugin manager as seen by the command line.
type PluginCatalog interface {
	control.EntryLoaderSource
	Load() error
	Status() []plugin.Status
}

// Updater performs an explicit self-update.
type Updater interface {
	Update(ctx context.Context, out io.Writer) (string, error)
}

// Dependencies are the collaborators an Initializer wires into the
// controller it builds.
type Dependencies struct {
	State    *process.State
	Hooks    config.HookRegistrar
	Plugins  PluginCatalog
	Updater  Updater
	Frontend control.Frontend
	Version  string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Options are the parsed root flags.
type Options struct {
	Input      string
	Script     string
	Headless   bool
	Instrument bool
	ConfigDir  string
	Debug      bool
	LogLevel   string
}

// Initializer parses the command line and builds the controller it selects.
type Initializer struct {
	deps       Dependencies
	opts       Options
	root       *cobra.Command
	controller Controller
}

// NewInitializer creates an Initializer with its command tree.
func NewInitializer(deps Dependencies) *Initializer {
	if deps.State == nil {
		deps.State = process.NewState()
	}
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Err == nil {
		deps.Err = os.Stderr
	}
	i := &Initializer{deps: deps}
	i.root = i.newRootCmd()
	return i
}

func (i *Initializer) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "recaf",
		Short: "A modern Java bytecode editor",
		Long: `recaf opens Java classes and archives for analysis and editing.

By default the graphical front-end is started. Use --cli for a headless
session driven by a script or an interactive prompt.`,
		Version: i.deps.Version,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
		// Errors are returned to the caller, which logs them once.
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if i.opts.Debug {
				logging.InitForCLI(logging.LevelDebug, cmd.ErrOrStderr())
				return nil
			}
			if i.opts.LogLevel != "" {
				level, ok := logging.ParseLevel(i.opts.LogLevel)
				if !ok {
					return fmt.Errorf("invalid --log-level %q: expected debug, info, warn or error", i.opts.LogLevel)
				}
				logging.InitForCLI(level, cmd.ErrOrStderr())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return i.initController()
		},
	}
	root.SetIn(i.deps.In)
	root.SetOut(i.deps.Out)
	root.SetErr(i.deps.Err)
	root.SetVersionTemplate(`{{printf "recaf version %s\n" .Version}}`)

	flags := root.Flags()
	flags.StringVarP(&i.opts.Input, "input", "i", "", "class or archive to open on startup")
	flags.StringVarP(&i.opts.Script, "script", "s", "", "script file to run (headless only)")
	flags.BoolVar(&i.opts.Headless, "cli", false, "run without the graphical front-end")
	flags.BoolVar(&i.opts.Instrument, "instrument", false, "open the process recaf is attached to")

	persistent := root.PersistentFlags()
	persistent.StringVar(&i.opts.ConfigDir, "config-dir", "", "configuration directory (default: platform config dir, or $"+config.EnvConfigDir+")")
	persistent.BoolVar(&i.opts.Debug, "debug", false, "enable debug logging")
	persistent.StringVar(&i.opts.LogLevel, "log-level", "", "log level: debug, info, warn or error (--debug takes precedence)")

	root.AddCommand(
		i.newVersionCmd(),
		i.newSelfUpdateCmd(),
		i.newPluginsCmd(),
		i.newConfigCmd(),
	)
	return root
}

// Execute parses args and runs the selected command.
func (i *Initializer) Execute(ctx context.Context, args []string) error {
	i.root.SetArgs(args)
	return i.root.ExecuteContext(ctx)
}

// Options returns the parsed root flags.
func (i *Initializer) Options() Options {
	return i.opts
}

// Controller returns the controller built by Execute, or nil.
func (i *Initializer) Controller() Controller {
	return i.controller
}

// Headless reports whether the built controller is headless.
func (i *Initializer) Headless() bool {
	return i.controller != nil && i.controller.Headless()
}

// StartController starts the built controller.
func (i *Initializer) StartController(ctx context.Context) error {
	if i.controller == nil {
		return ErrNoController
	}
	return i.controller.Start(ctx)
}

func (i *Initializer) configDir() (string, error) {
	if i.opts.ConfigDir != "" {
		return i.opts.ConfigDir, nil
	}
	return config.DefaultDirectory()
}

func (i *Initializer) initController() error {
	if i.opts.Script != "" && !i.opts.Headless {
		return errors.New("--script requires --cli")
	}
	dir, err := i.configDir()
	if err != nil {
		return err
	}

	opts := control.Options{
		State:      i.deps.State,
		ConfigDir:  dir,
		Hooks:      i.deps.Hooks,
		Input:      i.opts.Input,
		Script:     i.opts.Script,
		Instrument: i.opts.Instrument,
		Debug:      i.opts.Debug,
	}
	if i.deps.Plugins != nil {
		opts.Loaders = i.deps.Plugins
	}

	var c Controller
	if i.opts.Headless {
		c = control.NewHeadless(opts, i.deps.In, i.deps.Out)
	} else {
		c = control.NewInteractive(opts, i.deps.Frontend)
	}
	if err := c.Setup(); err != nil {
		return err
	}
	i.controller = c
	logging.Debug("CLI", "Initialized %s controller", controllerKind(c))
	return nil
}

func controllerKind(c Controller) string {
	if c.Headless() {
		return "headless"
	}
	return "interactive"
}
