package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/accentsync/internal/color"
	"github.com/jsvensson/accentsync/internal/theme"
)

// FileName is the project config file looked up in the project directory.
const FileName = ".accentsync.hcl"

// Defaults for an opencode project whose accent comes from VS Code Peacock.
const (
	DefaultThemeName     = "accentsync"
	DefaultSettingsPath  = ".vscode/settings.json"
	DefaultSettingsKey   = "peacock.color"
	DefaultThemeDir      = ".opencode/themes"
	DefaultProjectConfig = "opencode.json"
)

// Config is the resolved project configuration. Paths are relative to the
// project directory.
type Config struct {
	ThemeName      string
	BaseTheme      string
	Amount         float64
	SwapAccent     bool
	FallbackAccent string
	SettingsPath   string
	SettingsKey    string
	ThemeDir       string
	ProjectConfig  string
	Roles          []theme.Rule
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ThemeName:     DefaultThemeName,
		Amount:        color.DefaultAmount,
		SettingsPath:  DefaultSettingsPath,
		SettingsKey:   DefaultSettingsKey,
		ThemeDir:      DefaultThemeDir,
		ProjectConfig: DefaultProjectConfig,
	}
}

// Policy returns the default role policy extended by the configured roles.
func (c *Config) Policy() theme.Policy {
	return theme.DefaultPolicy(c.SwapAccent).With(c.Roles...)
}

// Synthesizer returns a theme synthesizer using this configuration.
func (c *Config) Synthesizer() theme.Synthesizer {
	return theme.Synthesizer{Amount: c.Amount, Policy: c.Policy()}
}

// ThemePath returns the generated theme file path, relative to the project.
func (c *Config) ThemePath() string {
	return filepath.Join(c.ThemeDir, c.ThemeName+".json")
}

// fileConfig mirrors the HCL file for gohcl decoding.
type fileConfig struct {
	ThemeName      string         `hcl:"theme_name,optional"`
	BaseTheme      string         `hcl:"base_theme,optional"`
	Amount         *float64       `hcl:"amount,optional"`
	SwapAccent     bool           `hcl:"swap_accent,optional"`
	FallbackAccent string         `hcl:"fallback_accent,optional"`
	Settings       *settingsBlock `hcl:"settings,block"`
	Output         *outputBlock   `hcl:"output,block"`
	Roles          []roleBlock    `hcl:"role,block"`
}

type settingsBlock struct {
	Path string `hcl:"path,optional"`
	Key  string `hcl:"key,optional"`
}

type outputBlock struct {
	ThemeDir      string `hcl:"theme_dir,optional"`
	ProjectConfig string `hcl:"project_config,optional"`
}

type roleBlock struct {
	Name  string `hcl:"name,label"`
	Dark  string `hcl:"dark"`
	Light string `hcl:"light"`
}

// Load reads the config file at path. A missing file yields Default.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL config source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %w", diags)
	}

	var raw fileConfig
	if diags := gohcl.DecodeBody(file.Body, EvalContext(), &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %w", diags)
	}

	return resolve(&raw)
}

func resolve(raw *fileConfig) (*Config, error) {
	cfg := Default()

	if raw.ThemeName != "" {
		cfg.ThemeName = raw.ThemeName
	}
	if err := validateName(cfg.ThemeName); err != nil {
		return nil, fmt.Errorf("theme_name: %w", err)
	}

	if raw.BaseTheme != "" {
		if err := validateName(raw.BaseTheme); err != nil {
			return nil, fmt.Errorf("base_theme: %w", err)
		}
		cfg.BaseTheme = raw.BaseTheme
	}

	if raw.Amount != nil {
		if *raw.Amount <= 0 || *raw.Amount > 1 {
			return nil, fmt.Errorf("amount: %v out of range (0, 1]", *raw.Amount)
		}
		cfg.Amount = *raw.Amount
	}

	cfg.SwapAccent = raw.SwapAccent

	if raw.FallbackAccent != "" {
		c, err := color.ParseHex(raw.FallbackAccent)
		if err != nil {
			return nil, fmt.Errorf("fallback_accent: %w", err)
		}
		cfg.FallbackAccent = c.Hex()
	}

	if s := raw.Settings; s != nil {
		if s.Path != "" {
			cfg.SettingsPath = s.Path
		}
		if s.Key != "" {
			cfg.SettingsKey = s.Key
		}
	}

	if o := raw.Output; o != nil {
		if o.ThemeDir != "" {
			cfg.ThemeDir = o.ThemeDir
		}
		if o.ProjectConfig != "" {
			cfg.ProjectConfig = o.ProjectConfig
		}
	}

	seen := make(map[string]bool, len(raw.Roles))
	for _, rb := range raw.Roles {
		if rb.Name == "" {
			return nil, fmt.Errorf("role: empty name")
		}
		if seen[rb.Name] {
			return nil, fmt.Errorf("role %q: declared more than once", rb.Name)
		}
		seen[rb.Name] = true

		dark, err := color.ParseMember(rb.Dark)
		if err != nil {
			return nil, fmt.Errorf("role %q dark: %w", rb.Name, err)
		}
		light, err := color.ParseMember(rb.Light)
		if err != nil {
			return nil, fmt.Errorf("role %q light: %w", rb.Name, err)
		}
		cfg.Roles = append(cfg.Roles, theme.Rule{Role: rb.Name, Dark: dark, Light: light})
	}

	return cfg, nil
}

// validateName rejects names that would escape the themes directory.
func validateName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}
