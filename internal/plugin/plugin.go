package plugin

import (
	"recaf/internal/workspace"
)

// Plugin is the base capability every plugin implements.
type Plugin interface {
	Name() string
	Version() string
}

// EntryLoaderProvider is implemented by plugins that replace how inputs are
// opened as workspaces.
type EntryLoaderProvider interface {
	Plugin
	CreateEntryLoader() workspace.EntryLoader
}

// Factory instantiates a plugin.
type Factory func() (Plugin, error)

// Registration describes a plugin compiled into the binary.
type Registration struct {
	// Name must match the plugin's Name and its manifest file stem.
	Name string
	// APIVersion is a semver constraint the host API version must satisfy,
	// e.g. ">= 2.0.0, < 3.0.0". Empty accepts any host.
	APIVersion string
	// Requires lists plugins that must be present and enabled.
	Requires []string
	New      Factory
}

// Lister exposes the loaded plugins in discovery order.
type Lister interface {
	Plugins() []Plugin
}

// OfType returns the loaded plugins implementing capability T, in discovery
// order.
func OfType[T any](l Lister) []T {
	return Filter[T](l.Plugins())
}

// Filter returns the plugins implementing capability T, preserving order.
func Filter[T any](plugins []Plugin) []T {
	var out []T
	for _, p := range plugins {
		if typed, ok := p.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
