package main

import (
	"context"
	"io"
	"os"

	"recaf/cmd"
	"recaf/internal/app"
	"recaf/internal/config"
	"recaf/internal/instrument"
	"recaf/internal/plugin"
	"recaf/internal/shutdown"
	"recaf/internal/update"
	"recaf/pkg/logging"
)

// Version can be set during build with -ldflags
var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run starts recaf as an attached agent when the host environment says so,
// otherwise as a standalone program, and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	hooks := shutdown.NewRegistry()
	stop := hooks.Notify(ctx)
	defer stop()
	defer hooks.Run()

	checker := update.NewChecker(version)
	checker.Restart = func(exe string, restartArgs []string) error {
		hooks.Run()
		return update.RestartProcess(exe, restartArgs)
	}

	pluginDir, err := config.Subdirectory("plugins")
	if err != nil {
		pluginDir = ""
	}

	b := app.New(app.Options{
		Version: version,
		Plugins: plugin.NewManager(pluginDir, version),
		Updater: checker,
		Hooks:   hooks,
		In:      in,
		Out:     out,
		Err:     errOut,
	})

	handle, agentArgs, attached, err := instrument.FromEnv()
	if err != nil {
		logging.Error("Main", err, "Invalid agent environment")
		return cmd.ExitCodeError
	}
	if attached {
		err = b.Agent(ctx, agentArgs, handle)
	} else {
		err = b.Main(ctx, args)
	}
	if err != nil {
		logging.Error("Main", err, "Recaf exited with an error")
		return cmd.ExitCodeError
	}
	return cmd.ExitCodeSuccess
}
