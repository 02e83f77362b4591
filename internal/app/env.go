package app

import (
	"os"
	"strings"
)

const (
	javaOptionsEnv = "_JAVA_OPTIONS"
	gtkVersionOpt  = "-Djdk.gtk.version=2"
)

// PatchEnvironment makes JVM front-ends started by recaf use GTK 2. An
// explicit jdk.gtk.version in _JAVA_OPTIONS is left alone.
func PatchEnvironment() error {
	current := os.Getenv(javaOptionsEnv)
	if strings.Contains(current, "-Djdk.gtk.version=") {
		return nil
	}
	if current == "" {
		return os.Setenv(javaOptionsEnv, gtkVersionOpt)
	}
	return os.Setenv(javaOptionsEnv, current+" "+gtkVersionOpt)
}
