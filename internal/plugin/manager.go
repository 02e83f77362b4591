package plugin

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Masterminds/semver/v3"

	"recaf/internal/dependency"
	"recaf/internal/workspace"
	"recaf/pkg/logging"
)

// Plugin states reported by Manager.Status.
const (
	StateRegistered = "registered"
	StateLoaded     = "loaded"
	StateDisabled   = "disabled"
	StateFailed     = "failed"
)

// Status summarises one registration after Load.
type Status struct {
	Name     string
	Version  string
	State    string
	Provides []string
	Err      error
}

// Manager discovers and instantiates plugins and holds the active entry
// loader. Discovery order is registration order, so the result of Load is
// deterministic.
type Manager struct {
	mu sync.RWMutex

	dir         string
	hostVersion *semver.Version

	registrations []Registration
	plugins       []Plugin
	status        map[string]Status
	entryLoader   workspace.EntryLoader
}

// NewManager creates a manager reading manifests from dir. hostVersion is the
// plugin API version of this build; an unparsable version (e.g. "dev")
// disables API constraint checks.
func NewManager(dir, hostVersion string) *Manager {
	m := &Manager{
		dir:    dir,
		status: make(map[string]Status),
	}
	if v, err := semver.NewVersion(hostVersion); err == nil {
		m.hostVersion = v
	} else {
		logging.Debug("Plugins", "Host version %q is not semver, plugin API constraints are not enforced", hostVersion)
	}
	return m
}

// Register adds a compiled-in plugin.
func (m *Manager) Register(r Registration) error {
	if r.Name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}
	if r.New == nil {
		return fmt.Errorf("plugin %s has no factory", r.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.registrations {
		if existing.Name == r.Name {
			return fmt.Errorf("%w: %s", ErrDuplicatePlugin, r.Name)
		}
	}
	m.registrations = append(m.registrations, r)
	m.status[r.Name] = Status{Name: r.Name, State: StateRegistered}
	return nil
}

// Load instantiates every enabled registration whose requirements are met.
// Plugins that fail are skipped; their errors are joined into the returned
// error. Load may be called again to rediscover plugins.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	manifests, manifestErr := LoadManifests(m.dir)
	if manifests == nil {
		return &DiscoveryError{Err: manifestErr}
	}

	errs := []error{manifestErr}
	known := make(map[string]bool, len(m.registrations))
	graph := dependency.New()
	for _, r := range m.registrations {
		known[r.Name] = true
		manifest := manifests[r.Name]
		if !manifest.IsEnabled() {
			continue
		}
		var deps []dependency.NodeID
		for _, dep := range append(slices.Clone(r.Requires), manifest.Requires...) {
			deps = append(deps, dependency.NodeID(dep))
		}
		graph.AddNode(dependency.Node{ID: dependency.NodeID(r.Name), DependsOn: deps})
	}
	for name := range manifests {
		if !known[name] {
			logging.Warn("Plugins", "Manifest for unknown plugin %s ignored", name)
		}
	}
	cyclic := make(map[dependency.NodeID]bool)
	for _, id := range graph.Cyclic() {
		cyclic[id] = true
	}

	m.plugins = nil
	var failed []string
	for _, r := range m.registrations {
		manifest := manifests[r.Name]
		if !manifest.IsEnabled() {
			m.status[r.Name] = Status{Name: r.Name, State: StateDisabled}
			logging.Info("Plugins", "Plugin %s disabled by manifest", r.Name)
			continue
		}

		var p Plugin
		var err error
		if cyclic[dependency.NodeID(r.Name)] {
			err = &MissingDependencyError{Plugin: r.Name, Dependency: fmt.Sprint(graph.Dependencies(dependency.NodeID(r.Name))), Reason: "requirement cycle"}
		} else {
			p, err = m.instantiate(r, manifest, graph)
		}
		if err != nil {
			m.status[r.Name] = Status{Name: r.Name, State: StateFailed, Err: err}
			errs = append(errs, err)
			failed = append(failed, r.Name)
			continue
		}
		m.plugins = append(m.plugins, p)
		m.status[r.Name] = Status{
			Name:     r.Name,
			Version:  p.Version(),
			State:    StateLoaded,
			Provides: capabilities(p),
		}
		logging.Info("Plugins", "Loaded plugin %s %s", p.Name(), p.Version())
	}

	for _, name := range failed {
		for _, id := range graph.TransitiveDependents(dependency.NodeID(name)) {
			if m.status[string(id)].State != StateLoaded {
				continue
			}
			err := &MissingDependencyError{Plugin: string(id), Dependency: name, Reason: "required plugin failed to load"}
			m.unload(string(id))
			m.status[string(id)] = Status{Name: string(id), State: StateFailed, Err: err}
			errs = append(errs, err)
			logging.Warn("Plugins", "Plugin %s unloaded, it requires %s", id, name)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) unload(name string) {
	m.plugins = slices.DeleteFunc(m.plugins, func(p Plugin) bool { return p.Name() == name })
}

func (m *Manager) instantiate(r Registration, manifest Manifest, graph *dependency.Graph) (p Plugin, err error) {
	for _, constraint := range []string{r.APIVersion, manifest.APIVersion} {
		if err := m.checkAPIVersion(r.Name, constraint); err != nil {
			return nil, err
		}
	}
	if missing := graph.Missing(dependency.NodeID(r.Name)); len(missing) > 0 {
		return nil, &MissingDependencyError{Plugin: r.Name, Dependency: string(missing[0]), Reason: "required plugin is not available"}
	}

	defer func() {
		if rec := recover(); rec != nil {
			p = nil
			err = &LoadError{Plugin: r.Name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()
	p, err = r.New()
	if err != nil {
		return nil, &LoadError{Plugin: r.Name, Err: err}
	}
	if p == nil {
		return nil, &LoadError{Plugin: r.Name, Err: errors.New("factory returned nil")}
	}
	return p, nil
}

func (m *Manager) checkAPIVersion(name, constraint string) error {
	if constraint == "" || m.hostVersion == nil {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return &LoadError{Plugin: name, Err: fmt.Errorf("invalid apiVersion constraint %q: %w", constraint, err)}
	}
	if !c.Check(m.hostVersion) {
		return &MissingDependencyError{
			Plugin:     name,
			Dependency: "recaf-api " + constraint,
			Reason:     "host provides " + m.hostVersion.String(),
		}
	}
	return nil
}

func capabilities(p Plugin) []string {
	var caps []string
	if _, ok := p.(EntryLoaderProvider); ok {
		caps = append(caps, "entry-loader")
	}
	return caps
}

// Plugins returns the loaded plugins in discovery order.
func (m *Manager) Plugins() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.plugins)
}

// Status returns the state of every registration in registration order.
func (m *Manager) Status() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Status, 0, len(m.registrations))
	for _, r := range m.registrations {
		out = append(out, m.status[r.Name])
	}
	return out
}

// SetEntryLoader installs the loader used to open workspaces.
func (m *Manager) SetEntryLoader(l workspace.EntryLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entryLoader = l
}

// InstalledEntryLoader returns the loader installed by a plugin, or nil.
func (m *Manager) InstalledEntryLoader() workspace.EntryLoader {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entryLoader
}

// EntryLoader returns the installed loader, falling back to the built-in
// file loader.
func (m *Manager) EntryLoader() workspace.EntryLoader {
	if l := m.InstalledEntryLoader(); l != nil {
		return l
	}
	return workspace.FileLoader{}
}
