// Package process holds the state recaf shares for the lifetime of a process:
// the active controller, the current workspace, the headless flag and the
// instrumentation handle of an attached agent.
//
// State is created once by the bootstrap and passed explicitly to the
// subsystems that need it. The controller slot can be assigned only once; the
// run mode is fixed after startup.
package process

import (
	"context"
	"errors"
	"sync"

	"recaf/internal/instrument"
	"recaf/internal/workspace"
)

var (
	// ErrControllerAlreadySet is returned when a second controller is
	// installed. It indicates a bootstrap ordering bug.
	ErrControllerAlreadySet = errors.New("controller already set")

	// ErrInstrumentationAlreadySet is returned when a second instrumentation
	// handle is stored.
	ErrInstrumentationAlreadySet = errors.New("instrumentation handle already set")
)

// Controller runs recaf in either headless or interactive mode.
type Controller interface {
	// Headless reports whether this is the headless variant.
	Headless() bool
	// Start hands execution to the controller and blocks until it finishes.
	Start(ctx context.Context) error
}

// State is the process-wide context object.
type State struct {
	mu sync.RWMutex

	controller      Controller
	workspace       *workspace.Workspace
	headless        bool
	initialized     bool
	instrumentation instrument.Handle
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// SetController installs c as the process controller and derives the
// headless flag from it. It fails if a controller is already installed; the
// existing controller is left untouched.
func (s *State) SetController(c Controller) error {
	if c == nil {
		return errors.New("controller cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller != nil {
		return ErrControllerAlreadySet
	}
	s.controller = c
	s.headless = c.Headless()
	return nil
}

// Controller returns the installed controller, or nil before SetController.
func (s *State) Controller() Controller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controller
}

// Headless reports whether recaf runs without a graphical front-end.
func (s *State) Headless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headless
}

// SetHeadless records the mode selected on the command line.
func (s *State) SetHeadless(headless bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headless = headless
}

// SetWorkspace replaces the current workspace. It may be called any number
// of times; nil clears it.
func (s *State) SetWorkspace(w *workspace.Workspace) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspace = w
}

// Workspace returns the current workspace, or nil.
func (s *State) Workspace() *workspace.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspace
}

// SetInstrumentation stores the handle provided by the attaching host. It is
// accepted once per process.
func (s *State) SetInstrumentation(h instrument.Handle) error {
	if h == nil {
		return errors.New("instrumentation handle cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instrumentation != nil {
		return ErrInstrumentationAlreadySet
	}
	s.instrumentation = h
	return nil
}

// Instrumentation returns the stored handle, or nil when not attached.
func (s *State) Instrumentation() instrument.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instrumentation
}

// MarkInitialized flips the one-time initialization flag. It returns true
// only for the first call.
func (s *State) MarkInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return false
	}
	s.initialized = true
	return true
}

// Initialized reports whether MarkInitialized has been called.
func (s *State) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}
