package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadAccent(t *testing.T) {
	path := writeSettings(t, `{
  "editor.fontSize": 14,
  "peacock.color": "#3498db",
  "workbench.colorCustomizations": {
    "activityBar.background": "#ff0000"
  }
}`)

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{"dotted key", "peacock.color", "#3498db", true},
		{"case insensitive", "Peacock.Color", "#3498db", true},
		{"nested key", "workbench.colorCustomizations::activityBar.background", "#ff0000", true},
		{"missing key", "accent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReadAccent(path, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadAccentAbsent(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.json")},
		{"invalid json", writeSettings(t, `{"peacock.color": `)},
		{"empty value", writeSettings(t, `{"peacock.color": "  "}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ReadAccent(tt.path, "peacock.color")
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestReadAccentKeepsMalformedValue(t *testing.T) {
	got, ok := ReadAccent(writeSettings(t, `{"peacock.color": "notacolor"}`), "peacock.color")
	assert.True(t, ok)
	assert.Equal(t, "notacolor", got)
}
