package control

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recaf/internal/instrument"
	"recaf/internal/process"
	"recaf/internal/workspace"
	"recaf/pkg/logging"
)

type staticLoaders struct {
	loader workspace.EntryLoader
}

func (s staticLoaders) EntryLoader() workspace.EntryLoader { return s.loader }

func writeClass(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Example.class")
	require.NoError(t, os.WriteFile(path, []byte{0xCA, 0xFE, 0xBA, 0xBE}, 0o644))
	return path
}

func newHeadless(t *testing.T, opts Options, input string) (*HeadlessController, *bytes.Buffer) {
	t.Helper()
	if opts.State == nil {
		opts.State = process.NewState()
	}
	if opts.ConfigDir == "" {
		opts.ConfigDir = filepath.Join(t.TempDir(), "config")
	}
	out := &bytes.Buffer{}
	c := NewHeadless(opts, strings.NewReader(input), out)
	require.NoError(t, c.Setup())
	return c, out
}

func TestHeadless_SetupInstallsController(t *testing.T) {
	state := process.NewState()
	c, _ := newHeadless(t, Options{State: state}, "")

	assert.Same(t, c, state.Controller())
	assert.True(t, state.Headless())
	assert.DirExists(t, c.Config().Dir())

	_, err := c.Config().Backend()
	assert.NoError(t, err)
}

func TestHeadless_SetupTwiceFails(t *testing.T) {
	state := process.NewState()
	newHeadless(t, Options{State: state}, "")

	other := NewHeadless(Options{State: state, ConfigDir: t.TempDir()}, strings.NewReader(""), &bytes.Buffer{})
	err := other.Setup()
	assert.ErrorIs(t, err, process.ErrControllerAlreadySet)
}

func TestHeadless_StartLoadsInput(t *testing.T) {
	path := writeClass(t)
	c, out := newHeadless(t, Options{Input: path}, "info\n")

	require.NoError(t, c.Start(context.Background()))

	ws := c.State().Workspace()
	require.NotNil(t, ws)
	assert.Equal(t, workspace.KindClass, ws.Kind)
	assert.Contains(t, out.String(), "Entries:   1")

	backend, err := c.Config().Backend()
	require.NoError(t, err)
	assert.Equal(t, []string{path}, backend.RecentFiles)
}

func TestHeadless_StartBadInputFails(t *testing.T) {
	notes := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("hi"), 0o644))
	c, _ := newHeadless(t, Options{Input: notes}, "")
	err := c.Start(context.Background())
	assert.ErrorIs(t, err, workspace.ErrUnsupportedInput)
}

func TestHeadless_UsesLoaderActiveAtLoadTime(t *testing.T) {
	called := ""
	loader := workspace.LoaderFunc(func(_ context.Context, path string) (*workspace.Workspace, error) {
		called = path
		return workspace.New("custom", path, workspace.KindArchive, []string{"a", "b"}), nil
	})
	c, out := newHeadless(t, Options{Loaders: staticLoaders{loader: loader}}, "load app.jar\n")

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, "app.jar", called)
	assert.Contains(t, out.String(), "Loaded custom")
}

func TestHeadless_Instrument(t *testing.T) {
	state := process.NewState()
	require.NoError(t, state.SetInstrumentation(instrument.New(4242, "127.0.0.1:9000")))
	c, _ := newHeadless(t, Options{State: state, Instrument: true}, "")

	require.NoError(t, c.Start(context.Background()))
	ws := state.Workspace()
	require.NotNil(t, ws)
	assert.Equal(t, workspace.KindInstrumentation, ws.Kind)
	assert.Equal(t, "pid-4242", ws.Name)
}

func TestHeadless_InstrumentWithoutHost(t *testing.T) {
	c, _ := newHeadless(t, Options{Instrument: true}, "")
	assert.ErrorIs(t, c.Start(context.Background()), ErrNoInstrumentation)
}

func TestHeadless_PipedCommands(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"",
		"help",
		"bogus",
		"config decompile",
		"recent",
		"exit",
		"info",
	}, "\n")
	c, out := newHeadless(t, Options{}, input)

	require.NoError(t, c.Start(context.Background()))
	text := out.String()
	assert.Contains(t, text, "load <path>")
	assert.NotContains(t, text, "quit")
	assert.Contains(t, text, `Error: unknown command "bogus"`)
	assert.Contains(t, text, "decompiler: CFR")
	assert.Contains(t, text, "No recent files")
	assert.NotContains(t, text, "No workspace loaded")
}

func TestHeadless_Script(t *testing.T) {
	class := writeClass(t)
	script := filepath.Join(t.TempDir(), "run.txt")
	require.NoError(t, os.WriteFile(script, []byte("load "+class+"\nsave\ninfo\nrecent\n"), 0o644))

	c, out := newHeadless(t, Options{Script: script}, "")
	require.NoError(t, c.Start(context.Background()))

	assert.Contains(t, out.String(), "Saved config")
	assert.FileExists(t, filepath.Join(c.Config().Dir(), "backend.json"))
	assert.Contains(t, out.String(), "Workspace: Example.class")
	assert.Contains(t, out.String(), "1. ")
	assert.Contains(t, out.String(), "Example.class\n")
}

func TestHeadless_ScriptStopsAtFailure(t *testing.T) {
	script := filepath.Join(t.TempDir(), "run.txt")
	require.NoError(t, os.WriteFile(script, []byte("help\nconfig missing\ninfo\n"), 0o644))

	c, out := newHeadless(t, Options{Script: script}, "")
	err := c.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.NotContains(t, out.String(), "No workspace loaded")
}

func TestHeadless_MissingScript(t *testing.T) {
	c, _ := newHeadless(t, Options{Script: filepath.Join(t.TempDir(), "none.txt")}, "")
	assert.Error(t, c.Start(context.Background()))
}

type recordingFrontend struct {
	ran  bool
	ws   *workspace.Workspace
	logs <-chan logging.LogEntry
}

func (f *recordingFrontend) Run(_ context.Context, c *InteractiveController, logs <-chan logging.LogEntry) error {
	f.ran = true
	f.ws = c.State().Workspace()
	f.logs = logs
	return nil
}

func TestInteractive_SetupNotHeadless(t *testing.T) {
	state := process.NewState()
	c := NewInteractive(Options{State: state, ConfigDir: t.TempDir()}, nil)
	require.NoError(t, c.Setup())

	assert.Same(t, c, state.Controller())
	assert.False(t, state.Headless())
}

func TestInteractive_NoFrontend(t *testing.T) {
	c := NewInteractive(Options{State: process.NewState(), ConfigDir: t.TempDir()}, nil)
	require.NoError(t, c.Setup())
	assert.ErrorIs(t, c.Start(context.Background()), ErrNoFrontend)
}

func TestInteractive_RunsFrontend(t *testing.T) {
	path := writeClass(t)
	fe := &recordingFrontend{}
	c := NewInteractive(Options{State: process.NewState(), ConfigDir: t.TempDir(), Input: path}, fe)
	require.NoError(t, c.Setup())

	require.NoError(t, c.Start(context.Background()))
	assert.True(t, fe.ran)
	require.NotNil(t, fe.ws)
	assert.Equal(t, "Example.class", fe.ws.Name)
	assert.NotNil(t, fe.logs)
}

func TestInteractive_BadInputStillRunsFrontend(t *testing.T) {
	fe := &recordingFrontend{}
	c := NewInteractive(Options{State: process.NewState(), ConfigDir: t.TempDir(), Input: "missing.txt"}, fe)
	require.NoError(t, c.Setup())

	require.NoError(t, c.Start(context.Background()))
	assert.True(t, fe.ran)
	assert.Nil(t, fe.ws)
}
