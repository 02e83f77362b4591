// Package workspace defines the workspace handle shared across recaf and the
// entry loader contract used to open one.
package workspace

import (
	"fmt"

	"github.com/google/uuid"

	"recaf/internal/instrument"
)

// Kind identifies where a workspace came from.
type Kind string

const (
	KindArchive         Kind = "archive"
	KindClass           Kind = "class"
	KindInstrumentation Kind = "instrumentation"
)

// Workspace is an opened input. Its contents are owned by the bytecode
// model; recaf only tracks identity and entry names.
type Workspace struct {
	ID      uuid.UUID
	Name    string
	Source  string
	Kind    Kind
	Entries []string
}

// New creates a workspace with a fresh identifier.
func New(name, source string, kind Kind, entries []string) *Workspace {
	return &Workspace{
		ID:      uuid.New(),
		Name:    name,
		Source:  source,
		Kind:    kind,
		Entries: entries,
	}
}

// FromInstrumentation creates a workspace backed by an attached process.
func FromInstrumentation(h instrument.Handle) *Workspace {
	return New(fmt.Sprintf("pid-%d", h.PID()), h.Address(), KindInstrumentation, nil)
}

func (w *Workspace) String() string {
	return fmt.Sprintf("%s (%s, %d entries)", w.Name, w.Kind, len(w.Entries))
}
