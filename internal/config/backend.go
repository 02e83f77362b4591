package config

import (
	"slices"
	"time"
)

// Backend holds settings the user does not edit directly: recent files,
// update bookkeeping and first-run state.
type Backend struct {
	RecentFiles         []string  `json:"recentFiles"`
	MaxRecentFiles      int       `json:"maxRecentFiles"`
	CheckForUpdates     bool      `json:"checkForUpdates"`
	AutoUpdate          bool      `json:"autoUpdate"`
	UpdateFrequencyDays int       `json:"updateFrequencyDays"`
	LastUpdateCheck     time.Time `json:"lastUpdateCheck"`
	FirstTime           bool      `json:"firstTime"`
	WatchConfig         bool      `json:"watchConfig"`
}

// NewBackend returns the backend section with default values.
func NewBackend() *Backend {
	return &Backend{
		RecentFiles:         []string{},
		MaxRecentFiles:      6,
		CheckForUpdates:     true,
		UpdateFrequencyDays: 7,
		FirstTime:           true,
	}
}

func (b *Backend) Name() string { return KeyBackend }

func (b *Backend) Load(path string) error {
	loaded := NewBackend()
	if err := readJSON(path, loaded); err != nil {
		return err
	}
	if loaded.RecentFiles == nil {
		loaded.RecentFiles = []string{}
	}
	*b = *loaded
	return nil
}

func (b *Backend) Save(path string) error {
	return writeJSON(path, b)
}

// AddRecentFile moves path to the front of the recent file list, trimming the
// list to MaxRecentFiles.
func (b *Backend) AddRecentFile(path string) {
	files := slices.DeleteFunc(slices.Clone(b.RecentFiles), func(p string) bool { return p == path })
	files = append([]string{path}, files...)
	if b.MaxRecentFiles > 0 && len(files) > b.MaxRecentFiles {
		files = files[:b.MaxRecentFiles]
	}
	b.RecentFiles = files
}

// UpdateInterval returns how long to wait between update checks.
func (b *Backend) UpdateInterval() time.Duration {
	return time.Duration(b.UpdateFrequencyDays) * 24 * time.Hour
}

// ShouldCheckForUpdates reports whether an update check is due at now.
func (b *Backend) ShouldCheckForUpdates(now time.Time) bool {
	if !b.CheckForUpdates {
		return false
	}
	if b.LastUpdateCheck.IsZero() {
		return true
	}
	return now.Sub(b.LastUpdateCheck) >= b.UpdateInterval()
}
