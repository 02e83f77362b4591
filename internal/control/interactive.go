package control

import (
	"context"
	"errors"

	"recaf/pkg/logging"
)

// ErrNoFrontend is returned when interactive mode is selected in a build
// without a graphical front-end.
var ErrNoFrontend = errors.New("no graphical front-end available, run with --cli for headless mode")

// Frontend is the graphical user interface. Run blocks until the user closes
// it. Log entries produced while it runs are delivered on logs.
type Frontend interface {
	Run(ctx context.Context, c *InteractiveController, logs <-chan logging.LogEntry) error
}

// InteractiveController hands execution to a Frontend.
type InteractiveController struct {
	base
	frontend Frontend
}

// NewInteractive creates an interactive controller. frontend may be nil, in
// which case Start fails with ErrNoFrontend.
func NewInteractive(opts Options, frontend Frontend) *InteractiveController {
	return &InteractiveController{base: newBase(opts), frontend: frontend}
}

func (c *InteractiveController) Headless() bool { return false }

// Setup initializes configuration and installs the controller.
func (c *InteractiveController) Setup() error {
	return c.setup(c)
}

// Start opens the initial workspace and runs the front-end. A workspace that
// fails to open is logged so the user can pick another one from the UI.
func (c *InteractiveController) Start(ctx context.Context) error {
	if c.frontend == nil {
		return ErrNoFrontend
	}

	c.startWatcher()
	defer c.stopWatcher()

	if err := c.openInitialWorkspace(ctx); err != nil {
		logging.Error("Controller", err, "Failed to open initial workspace")
	}

	level := logging.LevelInfo
	if c.opts.Debug {
		level = logging.LevelDebug
	}
	logs := logging.InitForFrontend(level)
	defer logging.CloseFrontendChannel()

	return c.frontend.Run(ctx, c, logs)
}
