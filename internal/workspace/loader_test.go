package workspace

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recaf/internal/instrument"
)

func writeJar(t *testing.T, path string, names ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if strings.HasSuffix(name, "/") {
			continue
		}
		_, err = w.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE})
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "app.jar")
	writeJar(t, jar, "com/example/Main.class", "META-INF/", "META-INF/MANIFEST.MF")

	class := filepath.Join(dir, "Main.class")
	require.NoError(t, os.WriteFile(class, []byte{0xCA, 0xFE}, 0644))

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("hi"), 0644))

	ctx := context.Background()
	var loader FileLoader

	ws, err := loader.Load(ctx, jar)
	require.NoError(t, err)
	assert.Equal(t, KindArchive, ws.Kind)
	assert.Equal(t, "app.jar", ws.Name)
	assert.Equal(t, []string{"com/example/Main.class", "META-INF/MANIFEST.MF"}, ws.Entries)
	assert.NotEqual(t, [16]byte{}, [16]byte(ws.ID))

	ws, err = loader.Load(ctx, class)
	require.NoError(t, err)
	assert.Equal(t, KindClass, ws.Kind)
	assert.Equal(t, []string{"Main.class"}, ws.Entries)

	_, err = loader.Load(ctx, text)
	assert.ErrorIs(t, err, ErrUnsupportedInput)

	_, err = loader.Load(ctx, dir)
	assert.ErrorIs(t, err, ErrUnsupportedInput)

	_, err = loader.Load(ctx, filepath.Join(dir, "missing.jar"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileLoader_CorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jar")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := FileLoader{}.Load(context.Background(), path)
	assert.ErrorContains(t, err, "failed to read archive")
}

func TestFileLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileLoader{}.Load(ctx, "anything.jar")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoaderFunc(t *testing.T) {
	want := New("x", "y", KindClass, nil)
	var l EntryLoader = LoaderFunc(func(ctx context.Context, path string) (*Workspace, error) {
		return want, nil
	})
	got, err := l.Load(context.Background(), "y")
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestFromInstrumentation(t *testing.T) {
	ws := FromInstrumentation(instrument.New(77, "127.0.0.1:9000"))
	assert.Equal(t, KindInstrumentation, ws.Kind)
	assert.Equal(t, "pid-77", ws.Name)
	assert.Equal(t, "127.0.0.1:9000", ws.Source)
	assert.Contains(t, ws.String(), "instrumentation")
}
