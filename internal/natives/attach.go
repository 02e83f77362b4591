// Package natives locates the native helper recaf needs to attach to running
// JVM processes.
package natives

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"recaf/internal/config"
)

// ErrAttachUnavailable is returned when no attach helper can be found.
var ErrAttachUnavailable = errors.New("attach helper not found")

// helperNames are the executables accepted as attach helpers, in preference
// order.
var helperNames = []string{"recaf-attach", "jattach"}

// lookPath and nativesDir are replaced in tests.
var (
	lookPath   = exec.LookPath
	nativesDir = func() (string, error) { return config.Subdirectory("natives") }
)

// LoadAttach finds the attach helper in the recaf natives directory or on
// PATH and returns its location.
func LoadAttach() (string, error) {
	if dir, err := nativesDir(); err == nil {
		for _, name := range helperNames {
			candidate := filepath.Join(dir, executableName(name))
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}
	for _, name := range helperNames {
		if path, err := lookPath(executableName(name)); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: looked for %v in the natives directory and PATH", ErrAttachUnavailable, helperNames)
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return runtime.GOOS == "windows" || info.Mode().Perm()&0111 != 0
}
