package accentsync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jsvensson/accentsync/internal/color"
	"github.com/jsvensson/accentsync/internal/config"
	"github.com/jsvensson/accentsync/internal/store"
	"github.com/jsvensson/accentsync/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTheme(t *testing.T, path string) *theme.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := theme.Decode(data)
	require.NoError(t, err)
	return doc
}

// setupProject lays out a project with an accent in its VS Code settings and a
// user config dir holding a base theme.
func setupProject(t *testing.T, hcl string) (projectDir, configDir string) {
	t.Helper()
	projectDir = t.TempDir()
	configDir = t.TempDir()

	writeFile(t, filepath.Join(projectDir, ".vscode", "settings.json"), `{"peacock.color": "#3498db"}`)
	writeFile(t, store.ThemePath(configDir, "rosepine"), `{
  "defs": {"bg": "#191724"},
  "theme": {"background": "bg", "foo": "#123456", "primary": "#eb6f92"}
}`)
	if hcl != "" {
		writeFile(t, filepath.Join(projectDir, config.FileName), hcl)
	}
	return projectDir, configDir
}

func TestRun(t *testing.T) {
	projectDir, configDir := setupProject(t, `base_theme = "rosepine"`)

	e, err := New(projectDir, configDir)
	require.NoError(t, err)

	res, err := e.Run()
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, "#3498db", res.Accent)
	assert.True(t, res.ThemeChanged)
	assert.True(t, res.ConfigChanged)
	assert.Equal(t, filepath.Join(projectDir, ".opencode", "themes", "accentsync.json"), res.ThemePath)

	doc := readTheme(t, res.ThemePath)
	assert.Equal(t, theme.SchemaURL, doc.Schema)
	assert.Equal(t, "#191724", doc.Defs["bg"])
	assert.Equal(t, "#3498db", doc.Defs[theme.DefBase])
	assert.Equal(t, color.LightenHex("#3498db", color.DefaultAmount), doc.Defs[theme.DefLight])
	assert.Equal(t, theme.Single("#123456"), doc.Theme["foo"])
	assert.Equal(t, theme.Single("bg"), doc.Theme["background"])
	assert.Equal(t, theme.Pair(theme.DefBase, theme.DefBase), doc.Theme["primary"])

	data, err := os.ReadFile(filepath.Join(projectDir, "opencode.json"))
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Equal(t, "accentsync", cfg["theme"])
}

func TestRunIsIdempotent(t *testing.T) {
	projectDir, configDir := setupProject(t, `base_theme = "rosepine"`)
	e, err := New(projectDir, configDir)
	require.NoError(t, err)

	_, err = e.Run()
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(projectDir, ".opencode", "themes", "accentsync.json"))
	require.NoError(t, err)

	res, err := e.Run()
	require.NoError(t, err)
	assert.False(t, res.ThemeChanged)
	assert.False(t, res.ConfigChanged)

	second, err := os.ReadFile(res.ThemePath)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRunWithoutBaseTheme(t *testing.T) {
	projectDir, configDir := setupProject(t, "")
	e, err := New(projectDir, configDir)
	require.NoError(t, err)

	res, err := e.Run()
	require.NoError(t, err)

	doc := readTheme(t, res.ThemePath)
	assert.ElementsMatch(t, theme.DefaultPolicy(false).Roles(), keys(doc.Theme))
}

func TestRunMissingBaseThemeFallsBackToMinimal(t *testing.T) {
	projectDir, configDir := setupProject(t, `base_theme = "does-not-exist"`)
	e, err := New(projectDir, configDir)
	require.NoError(t, err)

	res, err := e.Run()
	require.NoError(t, err)

	doc := readTheme(t, res.ThemePath)
	assert.Len(t, doc.Theme, len(theme.DefaultPolicy(false)))
}

func TestRunSkipsWithoutAccent(t *testing.T) {
	projectDir := t.TempDir()
	e, err := New(projectDir, t.TempDir())
	require.NoError(t, err)

	res, err := e.Run()
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	_, err = os.Stat(filepath.Join(projectDir, ".opencode"))
	assert.True(t, os.IsNotExist(err), "nothing should be written")
	_, err = os.Stat(filepath.Join(projectDir, "opencode.json"))
	assert.True(t, os.IsNotExist(err), "nothing should be written")
}

func TestRunUsesFallbackAccent(t *testing.T) {
	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, config.FileName), `fallback_accent = "#ff0000"`)

	e, err := New(projectDir, t.TempDir())
	require.NoError(t, err)

	res, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", res.Accent)
	assert.Equal(t, "#ff0000", readTheme(t, res.ThemePath).Defs[theme.DefBase])
}

func TestRunCustomConfig(t *testing.T) {
	projectDir, configDir := setupProject(t, `
theme_name  = "peacock"
swap_accent = true

settings {
  path = "editor.json"
  key  = "accent"
}

output {
  theme_dir      = "themes"
  project_config = "oc.json"
}

role "diffAdded" {
  dark  = "dark"
  light = "light"
}
`)
	writeFile(t, filepath.Join(projectDir, "editor.json"), `{"accent": "#00ff00"}`)

	e, err := New(projectDir, configDir)
	require.NoError(t, err)

	res, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", res.Accent)
	assert.Equal(t, filepath.Join(projectDir, "themes", "peacock.json"), res.ThemePath)

	doc := readTheme(t, res.ThemePath)
	assert.Equal(t, theme.Pair(theme.DefLight, theme.DefDark), doc.Theme["accent"])
	assert.Equal(t, theme.Pair(theme.DefDark, theme.DefLight), doc.Theme["diffAdded"])

	_, err = os.Stat(filepath.Join(projectDir, "oc.json"))
	assert.NoError(t, err)
}

func TestRunMalformedAccent(t *testing.T) {
	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, ".vscode", "settings.json"), `{"peacock.color": "notacolor"}`)

	e, err := New(projectDir, t.TempDir())
	require.NoError(t, err)

	res, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, "#000000", readTheme(t, res.ThemePath).Defs[theme.DefBase])
}

func TestRunInvalidProjectConfig(t *testing.T) {
	projectDir, configDir := setupProject(t, "")
	writeFile(t, filepath.Join(projectDir, "opencode.json"), `{not json`)

	e, err := New(projectDir, configDir)
	require.NoError(t, err)

	_, err = e.Run()
	assert.Error(t, err)
}

func TestNewInvalidConfig(t *testing.T) {
	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, config.FileName), `amount = 7`)

	_, err := New(projectDir, t.TempDir())
	assert.Error(t, err)
}

func TestRunConcurrent(t *testing.T) {
	projectDir, configDir := setupProject(t, `base_theme = "rosepine"`)
	e, err := New(projectDir, configDir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Run()
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	doc := readTheme(t, filepath.Join(projectDir, ".opencode", "themes", "accentsync.json"))
	assert.Equal(t, "#3498db", doc.Defs[theme.DefBase])
}

func keys(roles theme.Roles) []string {
	out := make([]string, 0, len(roles))
	for k := range roles {
		out = append(out, k)
	}
	return out
}
