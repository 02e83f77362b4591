// Package update checks GitHub releases for a newer recaf and, when the user
// allows it, replaces the running binary and restarts.
package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/briandowns/spinner"
	"github.com/creativeprojects/go-selfupdate"

	"recaf/internal/config"
	"recaf/pkg/logging"
)

// RepositorySlug is the GitHub repository releases are published to.
const RepositorySlug = "Col-E/Recaf"

// ErrDevelopmentVersion is returned when updating a build without a release
// version.
var ErrDevelopmentVersion = errors.New("cannot self-update a development version")

// Target is the controller the update check runs against.
type Target interface {
	Headless() bool
	Config() *config.Manager
}

// Checker performs the startup update check and explicit self-updates.
type Checker struct {
	Version string
	Source  Source

	// Executable returns the path of the running binary.
	Executable func() (string, error)
	// Restart relaunches exe with args. The default starts the new binary and
	// exits this process.
	Restart func(exe string, args []string) error
	// Now is the clock used for update intervals.
	Now func() time.Time
}

// NewChecker creates a checker against RepositorySlug. The GitHub source is
// created lazily so offline startups pay nothing until a check is due.
func NewChecker(version string) *Checker {
	return &Checker{
		Version:    version,
		Executable: selfupdate.ExecutablePath,
		Restart:    RestartProcess,
		Now:        time.Now,
	}
}

func (c *Checker) source() (Source, error) {
	if c.Source == nil {
		src, err := NewGitHubSource(RepositorySlug)
		if err != nil {
			return nil, err
		}
		c.Source = src
	}
	return c.Source, nil
}

// IsDevelopmentVersion reports whether v is not a release version.
func IsDevelopmentVersion(v string) bool {
	if v == "" || v == "dev" {
		return true
	}
	_, err := semver.NewVersion(v)
	return err != nil
}

// IsNewer reports whether candidate is a higher version than current.
func IsNewer(candidate, current string) bool {
	cv, err := semver.NewVersion(candidate)
	if err != nil {
		return false
	}
	cur, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	return cv.GreaterThan(cur)
}

// Check runs the startup update check. It is a no-op for development builds,
// when checks are disabled in the backend section, or when the last check is
// more recent than the configured interval. A newer release is only
// installed in interactive mode with AutoUpdate enabled; the process is then
// restarted with args. Errors are returned for the caller to log.
func (c *Checker) Check(ctx context.Context, target Target, args []string) error {
	if IsDevelopmentVersion(c.Version) {
		logging.Debug("Update", "Skipping update check for development version %q", c.Version)
		return nil
	}
	cfg := target.Config()
	now := c.Now()
	var (
		due, autoUpdate bool
		lastCheck       time.Time
	)
	err := config.View(cfg, config.KeyBackend, func(backend *config.Backend) {
		due = backend.ShouldCheckForUpdates(now)
		autoUpdate = backend.AutoUpdate
		lastCheck = backend.LastUpdateCheck
	})
	if err != nil {
		return fmt.Errorf("failed to read update settings: %w", err)
	}
	if !due {
		logging.Debug("Update", "Update check not due (last check %s)", lastCheck.Format(time.RFC3339))
		return nil
	}

	src, err := c.source()
	if err != nil {
		return err
	}
	latest, found, err := src.Latest(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	_ = cfg.UpdateBackend(func(backend *config.Backend) { backend.LastUpdateCheck = now })
	if !found || !IsNewer(latest.Version, c.Version) {
		logging.Info("Update", "Recaf %s is up to date", c.Version)
		return nil
	}

	if target.Headless() || !autoUpdate {
		logging.Info("Update", "Recaf %s is available (current %s): %s", latest.Version, c.Version, latest.URL)
		return nil
	}

	exe, err := c.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	logging.Info("Update", "Updating %s to version %s", exe, latest.Version)
	if err := src.Apply(ctx, latest, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	logging.Info("Update", "Updated to version %s, restarting", latest.Version)
	return c.Restart(exe, args)
}

// Update performs an explicit self-update, reporting progress to out. It
// returns the installed version, or "" when already up to date.
func (c *Checker) Update(ctx context.Context, out io.Writer) (string, error) {
	if IsDevelopmentVersion(c.Version) {
		return "", ErrDevelopmentVersion
	}
	src, err := c.source()
	if err != nil {
		return "", err
	}

	fmt.Fprintf(out, "Current version: %s\n", c.Version)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " Checking for updates..."
	s.Start()
	latest, found, err := src.Latest(ctx)
	s.Stop()
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("latest release for %s could not be found", RepositorySlug)
	}
	if !IsNewer(latest.Version, c.Version) {
		fmt.Fprintln(out, "Current version is the latest.")
		return "", nil
	}

	fmt.Fprintf(out, "Found newer version: %s (published at %s)\n", latest.Version, latest.PublishedAt.Format(time.DateOnly))
	if latest.Notes != "" {
		fmt.Fprintf(out, "Release notes:\n%s\n", latest.Notes)
	}

	exe, err := c.Executable()
	if err != nil {
		return "", fmt.Errorf("could not locate executable path: %w", err)
	}
	s.Suffix = fmt.Sprintf(" Updating %s to version %s...", exe, latest.Version)
	s.Start()
	err = src.Apply(ctx, latest, exe)
	s.Stop()
	if err != nil {
		return "", fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version)
	return latest.Version, nil
}

// RestartProcess starts exe with args, inheriting stdio, and exits the current
// process. Callers must flush state before calling it.
func RestartProcess(exe string, args []string) error {
	cmd := exec.Command(exe, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to restart %s: %w", exe, err)
	}
	os.Exit(0)
	return nil
}
