// Package plugin discovers optional plugins and activates the entry loader
// capability.
//
// Plugins are compiled in and registered with a Manager. Manager.Load walks
// the registrations in order, consults optional YAML manifests in the plugin
// directory, checks API version constraints and required plugins, and
// instantiates what it can. Activate runs Load at startup, treating every
// failure as non-fatal, and installs the entry loader produced by the first
// EntryLoaderProvider.
package plugin
