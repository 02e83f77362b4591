// Package app provides application bootstrap for recaf.
//
// A Bootstrap has two entry points that converge on one startup sequence:
//
//   - Main is the standalone entry. It locates the native attach helper
//     (failure is logged, not fatal), runs Init and then Launch.
//   - Agent is the attached entry used when recaf is loaded into another
//     process. It stores the host's instrumentation handle, folds an
//     --instrument flag into the raw agent arguments, runs Init and then
//     Launch with the arguments split on "=" and ",".
//
// Init runs once per process state: it patches the environment inherited by
// spawned JVM front-ends and logs the startup banner. Later calls do nothing.
//
// Launch parses the command line and, when a controller was built, runs the
// remaining steps in a fixed order:
//
//  1. Record the headless flag for the selected controller
//  2. Activate plugins, installing the first plugin-provided entry loader
//  3. Check for updates (failures are logged)
//  4. Start the controller
//
// Plugins are activated after the controller mode is fixed and before it
// starts, so a plugin's entry loader is used for the very first workspace.
//
// Example usage:
//
//	b := app.New(app.Options{Version: version, Hooks: hooks})
//	if err := b.Main(ctx, os.Args[1:]); err != nil {
//	    return err
//	}
package app
