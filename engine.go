// Package accentsync keeps a generated opencode theme in step with the accent
// color configured in a project's editor settings.
package accentsync

import (
	"fmt"
	"path/filepath"

	"github.com/jsvensson/accentsync/internal/color"
	"github.com/jsvensson/accentsync/internal/config"
	"github.com/jsvensson/accentsync/internal/settings"
	"github.com/jsvensson/accentsync/internal/store"
	"github.com/jsvensson/accentsync/internal/theme"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("accentsync.sync")

// Engine runs sync passes for one project. It keeps no state between passes,
// so Run may be called concurrently from independent triggers.
type Engine struct {
	ProjectDir string
	ConfigDir  string // user-level opencode config dir holding base themes
	Config     *config.Config
}

// Result describes the outcome of one pass.
type Result struct {
	// Skipped is set when no accent color was configured.
	Skipped bool
	Accent  string
	// ThemePath is the generated theme file, under ProjectDir.
	ThemePath    string
	ThemeChanged bool
	// ConfigChanged is set when the project config was pointed at the theme.
	ConfigChanged bool
}

// New creates an Engine, loading the project config from projectDir.
func New(projectDir, configDir string) (*Engine, error) {
	cfg, err := config.Load(filepath.Join(projectDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &Engine{
		ProjectDir: projectDir,
		ConfigDir:  configDir,
		Config:     cfg,
	}, nil
}

// SettingsPath returns the absolute path of the editor settings file.
func (e *Engine) SettingsPath() string {
	return e.path(e.Config.SettingsPath)
}

func (e *Engine) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(e.ProjectDir, rel)
}

// Accent returns the accent color for the project: the settings value, else
// the configured fallback.
func (e *Engine) Accent() (string, bool) {
	if accent, ok := settings.ReadAccent(e.SettingsPath(), e.Config.SettingsKey); ok {
		return accent, true
	}
	if e.Config.FallbackAccent != "" {
		return e.Config.FallbackAccent, true
	}
	return "", false
}

// Run performs one full sync pass: read the accent, synthesize the theme from
// the base theme, write it and point the project config at it. A missing
// accent skips the pass. Only write failures are returned.
func (e *Engine) Run() (*Result, error) {
	accent, ok := e.Accent()
	if !ok {
		log.Infof("no accent color in %s, skipping", e.SettingsPath())
		return &Result{Skipped: true}, nil
	}
	if _, err := color.ParseHex(accent); err != nil {
		log.Warningf("accent %q is not a hex color, channels that do not parse become 0", accent)
	}

	cfg := e.Config
	var base *theme.Document
	if cfg.BaseTheme != "" {
		base = store.LoadTheme(e.ConfigDir, cfg.BaseTheme)
	}

	doc := cfg.Synthesizer().Synthesize(base, accent)

	res := &Result{Accent: accent, ThemePath: e.path(cfg.ThemePath())}

	changed, err := store.WriteTheme(res.ThemePath, doc)
	if err != nil {
		return nil, fmt.Errorf("writing theme: %w", err)
	}
	res.ThemeChanged = changed

	changed, err = store.PointConfig(e.path(cfg.ProjectConfig), cfg.ThemeName)
	if err != nil {
		return nil, fmt.Errorf("updating project config: %w", err)
	}
	res.ConfigChanged = changed

	log.Infof("synced accent %s into %s (theme changed: %t, config changed: %t)",
		accent, res.ThemePath, res.ThemeChanged, res.ConfigChanged)
	return res, nil
}
