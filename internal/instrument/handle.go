// Package instrument describes the handle a host process passes to recaf when
// it is attached as an agent.
package instrument

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables set by the attaching host.
const (
	EnvAgentArgs = "RECAF_AGENT_ARGS"
	EnvAgentPID  = "RECAF_AGENT_PID"
	EnvAgentAddr = "RECAF_AGENT_ADDR"
)

// Handle gives access to the instrumented target.
type Handle interface {
	// PID of the instrumented process.
	PID() int
	// Address of the host's instrumentation endpoint.
	Address() string
}

type handle struct {
	pid  int
	addr string
}

func (h *handle) PID() int        { return h.pid }
func (h *handle) Address() string { return h.addr }

func (h *handle) String() string {
	return fmt.Sprintf("pid %d via %s", h.pid, h.addr)
}

// New returns a handle for the given target.
func New(pid int, addr string) Handle {
	return &handle{pid: pid, addr: addr}
}

// FromEnv builds a handle from the attaching host's environment. ok is false
// when recaf was not started as an agent.
func FromEnv() (h Handle, args string, ok bool, err error) {
	args, ok = os.LookupEnv(EnvAgentArgs)
	if !ok {
		return nil, "", false, nil
	}
	pidStr := strings.TrimSpace(os.Getenv(EnvAgentPID))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return nil, args, true, fmt.Errorf("invalid %s %q: %w", EnvAgentPID, pidStr, err)
	}
	addr := strings.TrimSpace(os.Getenv(EnvAgentAddr))
	if addr == "" {
		return nil, args, true, fmt.Errorf("%s is not set", EnvAgentAddr)
	}
	return New(pid, addr), args, true, nil
}
