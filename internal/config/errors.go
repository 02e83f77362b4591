package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSectionNotFound is returned by accessors when no section is registered
	// under the requested key, typically because Initialize has not run yet.
	ErrSectionNotFound = errors.New("config section not found")

	// ErrDuplicateSection is returned when a key is registered twice.
	ErrDuplicateSection = errors.New("config section already registered")
)

// Operation names used in SectionError.
const (
	OpLoad = "load"
	OpSave = "save"
)

// SectionError describes a failure to load or save a single section.
type SectionError struct {
	Section string
	Path    string
	Op      string
	Err     error
}

// Error implements the error interface
func (se *SectionError) Error() string {
	return fmt.Sprintf("failed to %s config %s (%s): %v", se.Op, se.Section, se.Path, se.Err)
}

// Unwrap returns the underlying I/O or decode error.
func (se *SectionError) Unwrap() error {
	return se.Err
}

// SectionErrors collects per-section failures of a bulk load or save.
type SectionErrors struct {
	Errors []*SectionError
}

// Error implements the error interface for the collection
func (se *SectionErrors) Error() string {
	switch len(se.Errors) {
	case 0:
		return "no config section errors"
	case 1:
		return se.Errors[0].Error()
	default:
		return fmt.Sprintf("%d config section errors: %s (and %d more)",
			len(se.Errors), se.Errors[0].Error(), len(se.Errors)-1)
	}
}

// Unwrap exposes the individual section errors to errors.Is and errors.As.
func (se *SectionErrors) Unwrap() []error {
	errs := make([]error, len(se.Errors))
	for i, err := range se.Errors {
		errs[i] = err
	}
	return errs
}

// HasErrors returns true if there are any errors in the collection
func (se *SectionErrors) HasErrors() bool {
	return se != nil && len(se.Errors) > 0
}

// Add appends a section error.
func (se *SectionErrors) Add(err *SectionError) {
	se.Errors = append(se.Errors, err)
}

// Sections returns the keys of the failed sections in the order they failed.
func (se *SectionErrors) Sections() []string {
	keys := make([]string, 0, len(se.Errors))
	for _, err := range se.Errors {
		keys = append(keys, err.Section)
	}
	return keys
}

// Summary renders one line per failed section.
func (se *SectionErrors) Summary() string {
	if !se.HasErrors() {
		return "No config section errors"
	}
	parts := []string{fmt.Sprintf("Config section errors (%d):", len(se.Errors))}
	for _, err := range se.Errors {
		parts = append(parts, fmt.Sprintf("  - %s [%s] %s: %v", err.Section, err.Op, err.Path, err.Err))
	}
	return strings.Join(parts, "\n")
}

// orNil returns nil when the collection is empty so callers can compare the
// result against nil.
func (se *SectionErrors) orNil() error {
	if !se.HasErrors() {
		return nil
	}
	return se
}
