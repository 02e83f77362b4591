package config

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Dump renders a section as YAML. Field names follow the JSON tags used on
// disk.
func Dump(s Section) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to render config %s: %w", s.Name(), err)
	}
	return data, nil
}

// DumpSection renders the section registered under key.
func (m *Manager) DumpSection(key string) ([]byte, error) {
	var (
		data    []byte
		dumpErr error
	)
	err := View(m, key, func(s Section) {
		data, dumpErr = Dump(s)
	})
	if err != nil {
		return nil, err
	}
	return data, dumpErr
}

// DumpAll renders every registered section, keyed by section name.
func (m *Manager) DumpAll() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := yaml.Marshal(m.sections)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return data, nil
}
