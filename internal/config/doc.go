// Package config implements recaf's typed configuration sections and the
// manager that persists them.
//
// # Sections
//
// A Section is a named bag of settings with Load and Save methods. Four are
// built in: display, keybinding, decompile and backend. Additional sections
// can be added with Manager.Register; keys must be unique.
//
// # Directory layout
//
// Each section lives in its own JSON file named after its key:
//
//	<UserConfigDir>/Recaf/config/display.json
//	<UserConfigDir>/Recaf/config/keybinding.json
//	<UserConfigDir>/Recaf/config/decompile.json
//	<UserConfigDir>/Recaf/config/backend.json
//
// RECAF_CONFIG_DIR overrides the directory.
//
// # Lifecycle
//
// Manager.Initialize installs the built-in sections. A missing directory is
// treated as a first run: it is created and nothing is loaded. An existing
// directory is loaded section by section; a missing file keeps the section's
// defaults and a corrupt file is logged without affecting the other sections.
// Initialize registers a shutdown hook that saves every section, so settings
// survive normal exit and SIGINT/SIGTERM. A killed process loses changes made
// since the last save.
//
// # Watching
//
// When the backend section enables WatchConfig, a Watcher reloads section
// files edited outside the process.
package config
