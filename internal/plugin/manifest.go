package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional per-plugin YAML file in the plugin directory. It
// lets a user disable a plugin or narrow the host versions it accepts.
//
//	name: my-loader
//	enabled: false
//	apiVersion: ">= 2.0.0, < 3.0.0"
//	requires: [other-plugin]
type Manifest struct {
	Name       string   `yaml:"name"`
	Enabled    *bool    `yaml:"enabled,omitempty"`
	APIVersion string   `yaml:"apiVersion,omitempty"`
	Requires   []string `yaml:"requires,omitempty"`
}

// IsEnabled returns true unless the manifest explicitly disables the plugin.
func (m Manifest) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// LoadManifests reads every *.yaml and *.yml file in dir. A missing directory
// yields no manifests. The manifest name defaults to the file stem.
func LoadManifests(dir string) (map[string]Manifest, error) {
	manifests := make(map[string]Manifest)
	if dir == "" {
		return manifests, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return manifests, nil
		}
		return nil, fmt.Errorf("failed to read plugin directory %s: %w", dir, err)
	}

	var errs []error
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read plugin manifest %s: %w", path, err))
			continue
		}
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			errs = append(errs, fmt.Errorf("failed to parse plugin manifest %s: %w", path, err))
			continue
		}
		if m.Name == "" {
			m.Name = strings.TrimSuffix(entry.Name(), ext)
		}
		manifests[m.Name] = m
	}
	return manifests, errors.Join(errs...)
}
