package plugin

import (
	"errors"
	"fmt"

	"recaf/internal/workspace"
	"recaf/pkg/logging"
)

// Host is the plugin manager surface used during startup.
type Host interface {
	Lister
	Load() error
	SetEntryLoader(workspace.EntryLoader)
}

// Result is the outcome of Activate.
type Result struct {
	// Plugins that were loaded, in discovery order.
	Plugins []Plugin
	// Provider whose loader was installed, or nil.
	Provider EntryLoaderProvider
	// Err joins the load and loader failures seen during activation.
	Err error
	// Hint is a diagnostic suggestion accompanying Err.
	Hint string
}

// OK reports whether activation completed without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// Activate loads plugins and installs the entry loader of the first
// EntryLoaderProvider in discovery order. Individual plugin failures are
// logged and activation continues with the plugins that did load; only a
// discovery failure skips loader selection. Failures never stop startup.
func Activate(host Host) Result {
	err := safeLoad(host)
	result := Result{Plugins: safePlugins(host)}
	if err != nil {
		result.Err = err
		if IsMissingDependency(err) {
			result.Hint = OutdatedHint
			logging.Error("Plugins", err, "An error occurred loading the plugins, failed dependency lookup\n - %s", OutdatedHint)
		} else {
			logging.Error("Plugins", err, "An error occurred loading the plugins")
		}
		if IsDiscoveryFailure(err) {
			return result
		}
	}

	providers := Filter[EntryLoaderProvider](result.Plugins)
	if len(providers) == 0 {
		logging.Debug("Plugins", "No entry loader plugins, using the built-in loader")
		return result
	}
	if len(providers) > 1 {
		logging.Info("Plugins", "%d entry loader plugins found, using %s", len(providers), providers[0].Name())
	}

	provider := providers[0]
	loader, err := safeCreate(provider)
	if err != nil {
		logging.Error("Plugins", err, "Plugin %s failed to create an entry loader", provider.Name())
		result.Err = errors.Join(result.Err, err)
		return result
	}
	host.SetEntryLoader(loader)
	result.Provider = provider
	logging.Info("Plugins", "Entry loader provided by %s", provider.Name())
	return result
}

func safeLoad(host Host) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &DiscoveryError{Err: fmt.Errorf("plugin loading panicked: %v", rec)}
		}
	}()
	return host.Load()
}

func safePlugins(host Host) (plugins []Plugin) {
	defer func() {
		if rec := recover(); rec != nil {
			plugins = nil
		}
	}()
	return host.Plugins()
}

func safeCreate(p EntryLoaderProvider) (l workspace.EntryLoader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &LoadError{Plugin: p.Name(), Err: fmt.Errorf("panic: %v", rec)}
		}
	}()
	l = p.CreateEntryLoader()
	if l == nil {
		return nil, &LoadError{Plugin: p.Name(), Err: errors.New("entry loader is nil")}
	}
	return l, nil
}
