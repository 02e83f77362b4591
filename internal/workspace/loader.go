package workspace

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedInput is returned for files the loader cannot open.
var ErrUnsupportedInput = errors.New("unsupported input")

// EntryLoader opens a path as a workspace. Plugins may replace the default.
type EntryLoader interface {
	Load(ctx context.Context, path string) (*Workspace, error)
}

// LoaderFunc adapts a function to EntryLoader.
type LoaderFunc func(ctx context.Context, path string) (*Workspace, error)

func (f LoaderFunc) Load(ctx context.Context, path string) (*Workspace, error) {
	return f(ctx, path)
}

// FileLoader is the built-in loader for archives and single class files.
type FileLoader struct{}

var archiveExtensions = map[string]bool{
	".jar": true,
	".zip": true,
	".war": true,
	".apk": true,
}

func (FileLoader) Load(ctx context.Context, path string) (*Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedInput, path)
	}

	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".class":
		return New(name, path, KindClass, []string{name}), nil
	case archiveExtensions[ext]:
		entries, err := archiveEntries(path)
		if err != nil {
			return nil, err
		}
		return New(name, path, KindArchive, entries), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInput, path)
	}
}

func archiveEntries(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive %s: %w", path, err)
	}
	defer r.Close()

	entries := make([]string, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, f.Name)
	}
	return entries, nil
}
