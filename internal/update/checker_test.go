package update

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recaf/internal/config"
)

type fakeSource struct {
	release  *Release
	found    bool
	err      error
	applyErr error

	latestCalls int
	applied     []string
}

func (s *fakeSource) Latest(ctx context.Context) (*Release, bool, error) {
	s.latestCalls++
	return s.release, s.found, s.err
}

func (s *fakeSource) Apply(ctx context.Context, rel *Release, exe string) error {
	s.applied = append(s.applied, rel.Version+"@"+exe)
	return s.applyErr
}

type fakeTarget struct {
	headless bool
	cfg      *config.Manager
}

func (t *fakeTarget) Headless() bool          { return t.headless }
func (t *fakeTarget) Config() *config.Manager { return t.cfg }

var fixedNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func newTarget(t *testing.T, headless bool) *fakeTarget {
	t.Helper()
	m := config.NewManager(t.TempDir(), nil)
	require.NoError(t, m.Initialize())
	return &fakeTarget{headless: headless, cfg: m}
}

func newChecker(src Source) (*Checker, *[]string) {
	var restarted []string
	c := &Checker{
		Version:    "2.7.0",
		Source:     src,
		Executable: func() (string, error) { return "/opt/recaf/recaf", nil },
		Restart: func(exe string, args []string) error {
			restarted = append([]string{exe}, args...)
			return nil
		},
		Now: func() time.Time { return fixedNow },
	}
	return c, &restarted
}

func TestCheck_DevelopmentVersionSkipped(t *testing.T) {
	src := &fakeSource{}
	c, _ := newChecker(src)
	c.Version = "dev"

	require.NoError(t, c.Check(context.Background(), newTarget(t, false), nil))
	assert.Zero(t, src.latestCalls)
}

func TestCheck_DisabledOrNotDue(t *testing.T) {
	src := &fakeSource{}
	c, _ := newChecker(src)

	target := newTarget(t, false)
	backend, _ := target.cfg.Backend()
	backend.CheckForUpdates = false
	require.NoError(t, c.Check(context.Background(), target, nil))

	backend.CheckForUpdates = true
	backend.LastUpdateCheck = fixedNow.Add(-time.Hour)
	require.NoError(t, c.Check(context.Background(), target, nil))

	assert.Zero(t, src.latestCalls)
}

func TestCheck_UpToDateRecordsCheck(t *testing.T) {
	src := &fakeSource{release: &Release{Version: "2.7.0"}, found: true}
	c, restarted := newChecker(src)
	target := newTarget(t, false)

	require.NoError(t, c.Check(context.Background(), target, nil))

	backend, _ := target.cfg.Backend()
	assert.Equal(t, fixedNow, backend.LastUpdateCheck)
	assert.Empty(t, src.applied)
	assert.Empty(t, *restarted)
}

func TestCheck_NewerReleaseNotifiesOnly(t *testing.T) {
	tests := []struct {
		name       string
		headless   bool
		autoUpdate bool
	}{
		{"headless", true, true},
		{"auto update off", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{release: &Release{Version: "2.8.0"}, found: true}
			c, restarted := newChecker(src)
			target := newTarget(t, tt.headless)
			backend, _ := target.cfg.Backend()
			backend.AutoUpdate = tt.autoUpdate

			require.NoError(t, c.Check(context.Background(), target, []string{"--cli"}))
			assert.Empty(t, src.applied)
			assert.Empty(t, *restarted)
		})
	}
}

func TestCheck_AutoUpdateRestarts(t *testing.T) {
	src := &fakeSource{release: &Release{Version: "2.8.0"}, found: true}
	c, restarted := newChecker(src)
	target := newTarget(t, false)
	backend, _ := target.cfg.Backend()
	backend.AutoUpdate = true

	require.NoError(t, c.Check(context.Background(), target, []string{"--input", "a.jar"}))
	assert.Equal(t, []string{"2.8.0@/opt/recaf/recaf"}, src.applied)
	assert.Equal(t, []string{"/opt/recaf/recaf", "--input", "a.jar"}, *restarted)
}

func TestCheck_Failures(t *testing.T) {
	src := &fakeSource{err: errors.New("rate limited")}
	c, _ := newChecker(src)
	target := newTarget(t, false)

	err := c.Check(context.Background(), target, nil)
	assert.ErrorContains(t, err, "rate limited")
	backend, _ := target.cfg.Backend()
	assert.True(t, backend.LastUpdateCheck.IsZero(), "failed checks are retried next start")

	src = &fakeSource{release: &Release{Version: "3.0.0"}, found: true, applyErr: errors.New("permission denied")}
	c, restarted := newChecker(src)
	backend.AutoUpdate = true
	err = c.Check(context.Background(), target, nil)
	assert.ErrorContains(t, err, "update failed")
	assert.Empty(t, *restarted)
}

func TestCheck_ConfigNotInitialized(t *testing.T) {
	c, _ := newChecker(&fakeSource{})
	target := &fakeTarget{cfg: config.NewManager(t.TempDir(), nil)}
	assert.ErrorIs(t, c.Check(context.Background(), target, nil), config.ErrSectionNotFound)
}

func TestUpdate(t *testing.T) {
	src := &fakeSource{release: &Release{Version: "2.9.1", Notes: "Fixes"}, found: true}
	c, _ := newChecker(src)

	var out bytes.Buffer
	version, err := c.Update(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, "2.9.1", version)
	assert.Contains(t, out.String(), "Found newer version: 2.9.1")
	assert.Contains(t, out.String(), "Fixes")
	assert.Contains(t, out.String(), "Successfully updated to version 2.9.1")
}

func TestUpdate_Latest(t *testing.T) {
	src := &fakeSource{release: &Release{Version: "2.7.0"}, found: true}
	c, _ := newChecker(src)

	var out bytes.Buffer
	version, err := c.Update(context.Background(), &out)
	require.NoError(t, err)
	assert.Empty(t, version)
	assert.Contains(t, out.String(), "Current version is the latest.")
}

func TestUpdate_Errors(t *testing.T) {
	c, _ := newChecker(&fakeSource{})
	c.Version = ""
	_, err := c.Update(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrDevelopmentVersion)

	c, _ = newChecker(&fakeSource{found: false})
	_, err = c.Update(context.Background(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "could not be found")
}

func TestVersionHelpers(t *testing.T) {
	assert.True(t, IsDevelopmentVersion(""))
	assert.True(t, IsDevelopmentVersion("dev"))
	assert.True(t, IsDevelopmentVersion("snapshot-abc"))
	assert.False(t, IsDevelopmentVersion("2.7.0"))

	assert.True(t, IsNewer("2.8.0", "2.7.0"))
	assert.True(t, IsNewer("v3.0.0", "2.7.0"))
	assert.False(t, IsNewer("2.7.0", "2.7.0"))
	assert.False(t, IsNewer("garbage", "2.7.0"))
}
