package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"recaf/pkg/logging"
)

// HookRegistrar registers a function to run when the process shuts down.
// The returned function removes the hook again.
type HookRegistrar interface {
	Register(name string, fn func()) func()
}

// Manager owns the registered config sections and the directory they are
// persisted to. Load, Save and Reload replace section contents under the
// manager's lock, so code that runs alongside the watcher reads and mutates
// sections through View and Update rather than through the pointers returned
// by Get.
type Manager struct {
	mu       sync.Mutex
	dir      string
	sections map[string]Section
	hooks    HookRegistrar

	unregisterHook func()
	// written records the modification time of each file this manager last
	// wrote, so the watcher can skip its own saves.
	written map[string]time.Time
}

// NewManager creates a manager for dir. The directory is not touched until
// Initialize. hooks may be nil, in which case no shutdown hook is registered.
func NewManager(dir string, hooks HookRegistrar) *Manager {
	return &Manager{
		dir:      dir,
		sections: make(map[string]Section),
		hooks:    hooks,
		written:  make(map[string]time.Time),
	}
}

// Dir returns the directory section files are stored in.
func (m *Manager) Dir() string {
	return m.dir
}

// Initialize installs the built-in sections and prepares the directory.
//
// When the directory does not exist it is created and nothing is loaded, so a
// first run keeps defaults in memory. Otherwise existing section files are
// loaded; per-section failures are logged and do not fail Initialize. A
// shutdown hook that saves all sections is registered, replacing any hook from
// a previous Initialize call.
//
// Initialize only fails when the directory cannot be created.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dir == "" {
		return fmt.Errorf("config directory cannot be empty")
	}

	for _, s := range []Section{NewDisplay(), NewKeybinding(), NewDecompile(), NewBackend()} {
		m.sections[s.Name()] = s
	}

	if !isDirectory(m.dir) {
		if err := os.MkdirAll(m.dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", m.dir, err)
		}
		logging.Info("Config", "Created config directory %s", m.dir)
	} else if err := m.loadLocked(); err != nil {
		var errs *SectionErrors
		if errors.As(err, &errs) {
			logging.Warn("Config", "%s", errs.Summary())
		}
	}

	if m.hooks != nil {
		if m.unregisterHook != nil {
			m.unregisterHook()
		}
		m.unregisterHook = m.hooks.Register("config-save", func() {
			_ = m.Save()
		})
	}
	return nil
}

// Register adds a section. Keys must be unique.
func (m *Manager) Register(s Section) error {
	if s == nil {
		return fmt.Errorf("section cannot be nil")
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("section name cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sections[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSection, name)
	}
	m.sections[name] = s
	return nil
}

// Sections returns the registered keys in sorted order.
func (m *Manager) Sections() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.sections))
}

// Path returns the file a section is persisted to: <dir>/<name>.json.
func (m *Manager) Path(s Section) string {
	return m.pathFor(s.Name())
}

func (m *Manager) pathFor(name string) string {
	return filepath.Join(m.dir, name+fileExtension)
}

// Load reads every section whose file exists. A failing section is logged and
// skipped; the returned *SectionErrors lists all failures, or nil when every
// section loaded.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

func (m *Manager) loadLocked() error {
	var errs SectionErrors
	for _, name := range slices.Sorted(maps.Keys(m.sections)) {
		path := m.pathFor(name)
		if !fileExists(path) {
			continue
		}
		if err := m.sections[name].Load(path); err != nil {
			logging.Error("Config", err, "Failed to load config: %s", path)
			errs.Add(&SectionError{Section: name, Path: path, Op: OpLoad, Err: err})
			continue
		}
		logging.Debug("Config", "Loaded config %s from %s", name, path)
	}
	return errs.orNil()
}

// Save writes every section. Failures are isolated the same way as in Load.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs SectionErrors
	for _, name := range slices.Sorted(maps.Keys(m.sections)) {
		path := m.pathFor(name)
		if err := m.sections[name].Save(path); err != nil {
			logging.Error("Config", err, "Failed to save config: %s", path)
			errs.Add(&SectionError{Section: name, Path: path, Op: OpSave, Err: err})
			continue
		}
		if info, err := os.Stat(path); err == nil {
			m.written[name] = info.ModTime()
		}
		logging.Debug("Config", "Saved config %s to %s", name, path)
	}
	return errs.orNil()
}

// Reload re-reads a single section from disk. Files last written by this
// manager and missing files are left alone.
func (m *Manager) Reload(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sections[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, name)
	}
	path := m.pathFor(name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &SectionError{Section: name, Path: path, Op: OpLoad, Err: err}
	}
	if written, ok := m.written[name]; ok && written.Equal(info.ModTime()) {
		return nil
	}
	if err := s.Load(path); err != nil {
		logging.Error("Config", err, "Failed to reload config: %s", path)
		return &SectionError{Section: name, Path: path, Op: OpLoad, Err: err}
	}
	logging.Info("Config", "Reloaded config %s after external change", name)
	return nil
}

// Get returns the section registered under key as type T. The section may be
// replaced by a concurrent reload; use View or Update while the watcher runs.
func Get[T Section](m *Manager, key string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lookup[T](m, key)
}

// Update runs fn with the section registered under key while holding the
// manager's lock. Mutations made by fn cannot interleave with a reload.
func Update[T Section](m *Manager, key string, fn func(T)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	typed, err := lookup[T](m, key)
	if err != nil {
		return err
	}
	fn(typed)
	return nil
}

// View runs fn with the section registered under key while holding the
// manager's lock. fn must not retain the section.
func View[T Section](m *Manager, key string, fn func(T)) error {
	return Update(m, key, fn)
}

// UpdateBackend runs fn against the backend section under the lock.
func (m *Manager) UpdateBackend(fn func(*Backend)) error {
	return Update(m, KeyBackend, fn)
}

func lookup[T Section](m *Manager, key string) (T, error) {
	var zero T
	s, ok := m.sections[key]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrSectionNotFound, key)
	}
	typed, ok := s.(T)
	if !ok {
		return zero, fmt.Errorf("config section %s has type %T, expected %T", key, s, zero)
	}
	return typed, nil
}

// Display returns the display section.
func (m *Manager) Display() (*Display, error) {
	return Get[*Display](m, KeyDisplay)
}

// Keybinding returns the keybinding section.
func (m *Manager) Keybinding() (*Keybinding, error) {
	return Get[*Keybinding](m, KeyKeybinding)
}

// Decompile returns the decompiler section.
func (m *Manager) Decompile() (*Decompile, error) {
	return Get[*Decompile](m, KeyDecompile)
}

// Backend returns the backend section.
func (m *Manager) Backend() (*Backend, error) {
	return Get[*Backend](m, KeyBackend)
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
