package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Section is a named bag of typed settings persisted to its own file.
// Name is stable: it is both the registry key and the file stem.
type Section interface {
	Name() string
	Load(path string) error
	Save(path string) error
}

// Keys of the built-in sections.
const (
	KeyDisplay    = "display"
	KeyKeybinding = "keybinding"
	KeyDecompile  = "decompile"
	KeyBackend    = "backend"
)

const fileExtension = ".json"

// readJSON decodes the file at path into dst. dst should be a freshly
// defaulted value so fields absent from the file keep their defaults.
func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v to path through a temporary file in the same directory,
// so a crash mid-write never leaves a truncated section file behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
