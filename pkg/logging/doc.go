// Package logging provides subsystem-tagged structured logging for recaf,
// built on the standard slog package.
//
// Every entry carries a subsystem name ("Bootstrap", "Config", "Plugins", ...)
// and, for Error, the error text as a separate attribute.
//
// Two sinks exist. InitForCLI writes text records to an io.Writer and is used
// by the bootstrap and the headless controller. InitForFrontend routes entries
// into a buffered channel that the graphical front-end drains; when the
// channel is full, entries are reported on stderr and dropped.
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//	logging.Info("Bootstrap", "Recaf-%s", version)
//	logging.Error("Config", err, "Failed to load config: %s", path)
package logging
