package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	data, err := Dump(NewDecompile())
	require.NoError(t, err)
	assert.Contains(t, string(data), "decompiler: CFR")
	assert.Contains(t, string(data), "timeoutMillis: 10000")
}

func TestDumpAll(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	require.NoError(t, m.Initialize())

	data, err := m.DumpAll()
	require.NoError(t, err)
	out := string(data)
	for _, key := range []string{"backend:", "decompile:", "display:", "keybinding:"} {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "language: English")
}
