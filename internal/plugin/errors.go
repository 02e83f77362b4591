package plugin

import (
	"errors"
	"fmt"
)

// ErrDuplicatePlugin is returned when two registrations share a name.
var ErrDuplicatePlugin = errors.New("plugin already registered")

// OutdatedHint is appended to diagnostics for plugins built against another
// host version.
const OutdatedHint = "Is the plugin outdated?"

// MissingDependencyError reports a plugin whose requirements cannot be met by
// this host: an incompatible API version or an absent plugin it requires.
type MissingDependencyError struct {
	Plugin     string
	Dependency string
	Reason     string
}

func (e *MissingDependencyError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("plugin %s: missing dependency %s", e.Plugin, e.Dependency)
	}
	return fmt.Sprintf("plugin %s: missing dependency %s: %s", e.Plugin, e.Dependency, e.Reason)
}

// LoadError wraps a failure raised while instantiating a plugin.
type LoadError struct {
	Plugin string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("plugin %s failed to load: %v", e.Plugin, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsMissingDependency reports whether err contains a MissingDependencyError.
func IsMissingDependency(err error) bool {
	var missing *MissingDependencyError
	return errors.As(err, &missing)
}

// DiscoveryError reports a load that could not discover any plugins at all,
// as opposed to individual plugins failing.
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("plugin discovery failed: %v", e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// IsDiscoveryFailure reports whether err means no plugin could be loaded.
func IsDiscoveryFailure(err error) bool {
	var discovery *DiscoveryError
	return errors.As(err, &discovery)
}
