package update

import (
	"context"
	"fmt"
	"time"

	"github.com/creativeprojects/go-selfupdate"
)

// Release is a published version available for download.
type Release struct {
	Version     string
	PublishedAt time.Time
	Notes       string
	URL         string

	raw *selfupdate.Release
}

// Source finds and installs releases.
type Source interface {
	Latest(ctx context.Context) (*Release, bool, error)
	Apply(ctx context.Context, rel *Release, exe string) error
}

// githubSource reads releases of a GitHub repository through go-selfupdate.
type githubSource struct {
	updater *selfupdate.Updater
	repo    selfupdate.Repository
}

// NewGitHubSource creates a Source for the "owner/repo" slug.
func NewGitHubSource(slug string) (Source, error) {
	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}
	return &githubSource{updater: updater, repo: selfupdate.ParseSlug(slug)}, nil
}

func (s *githubSource) Latest(ctx context.Context) (*Release, bool, error) {
	latest, found, err := s.updater.DetectLatest(ctx, s.repo)
	if err != nil {
		return nil, false, fmt.Errorf("error detecting latest version: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &Release{
		Version:     latest.Version(),
		PublishedAt: latest.PublishedAt,
		Notes:       latest.ReleaseNotes,
		URL:         latest.URL,
		raw:         latest,
	}, true, nil
}

func (s *githubSource) Apply(ctx context.Context, rel *Release, exe string) error {
	if rel.raw == nil {
		return fmt.Errorf("release %s was not detected by this source", rel.Version)
	}
	return s.updater.UpdateTo(ctx, rel.raw, exe)
}
