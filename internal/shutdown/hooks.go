// Package shutdown runs registered persistence hooks when the process
// terminates normally or receives SIGINT/SIGTERM.
//
// Hooks are best-effort: they do not run when the process is killed with
// SIGKILL or crashes, so state they flush may be one save cycle stale.
package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"recaf/pkg/logging"
)

// ExitCodeInterrupted is the exit status used after a signal-triggered shutdown.
const ExitCodeInterrupted = 130

type hook struct {
	id   int
	name string
	fn   func()
}

// Registry holds shutdown hooks and runs them at most once.
type Registry struct {
	mu     sync.Mutex
	hooks  []hook
	nextID int
	ran    bool
	once   sync.Once

	// exit is replaced in tests.
	exit func(code int)
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{exit: os.Exit}
}

// Register adds a hook and returns a function that removes it again.
// Hooks registered after Run has started are ignored.
func (r *Registry) Register(name string, fn func()) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ran || fn == nil {
		return func() {}
	}
	r.nextID++
	id := r.nextID
	r.hooks = append(r.hooks, hook{id: id, name: name, fn: fn})
	logging.Debug("Shutdown", "Registered shutdown hook %q", name)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, h := range r.hooks {
			if h.id == id {
				r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hooks)
}

// Run executes all hooks in reverse registration order. Only the first call
// has any effect; a panicking hook is logged and does not stop the others.
func (r *Registry) Run() {
	r.once.Do(func() {
		r.mu.Lock()
		r.ran = true
		hooks := make([]hook, len(r.hooks))
		copy(hooks, r.hooks)
		r.mu.Unlock()

		for i := len(hooks) - 1; i >= 0; i-- {
			runHook(hooks[i])
		}
	})
}

func runHook(h hook) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("Shutdown", fmt.Errorf("panic: %v", rec), "Shutdown hook %q failed", h.name)
		}
	}()
	logging.Debug("Shutdown", "Running shutdown hook %q", h.name)
	h.fn()
}

// Notify runs the hooks and exits when SIGINT or SIGTERM arrives. The returned
// function stops listening; it does not run the hooks.
func (r *Registry) Notify(ctx context.Context) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			logging.Info("Shutdown", "Received %s, saving state", sig)
			r.Run()
			r.exit(ExitCodeInterrupted)
		case <-ctx.Done():
		case <-done:
		}
	}()

	var stopOnce sync.Once
	return func() {
		stopOnce.Do(func() {
			signal.Stop(sigChan)
			close(done)
		})
	}
}
