package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world this is a long string", 15, "hello world ..."},
		{"newlines replaced with spaces", "hello\nworld", 20, "hello world"},
		{"whitespace collapsed", "plugin  a:\n\n\tmissing dependency", 40, "plugin a: missing dependency"},
		{"unicode safe", "héllo wörld ünïcode", 10, "héllo w..."},
		{"tiny max clamped", "abcdef", 1, "a..."},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short path unchanged", "/tmp/app.jar", 20, "/tmp/app.jar"},
		{"keeps file name", "/home/user/projects/sample/build/app.jar", 16, "...build/app.jar"},
		{"tiny max clamped", "abcdef", 0, "...f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLeft(tt.input, tt.maxLen))
		})
	}
}
