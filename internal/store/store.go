// Package store reads and writes the opencode files accentsync touches: base
// themes in the user config directory, the generated theme and the project
// config that points at it.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jsvensson/accentsync/internal/theme"
	"github.com/tliron/commonlog"
)

// ConfigSchemaURL is written to project configs created from scratch.
const ConfigSchemaURL = "https://opencode.ai/config.json"

var log = commonlog.GetLogger("accentsync.store")

// DefaultConfigDir returns the user-level opencode config directory.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/opencode.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "opencode")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".config", "opencode")
	}
	return filepath.Join(home, ".config", "opencode")
}

// ThemePath returns where a named theme lives under configDir.
func ThemePath(configDir, name string) string {
	return filepath.Join(configDir, "themes", name+".json")
}

// LoadTheme loads the named base theme from configDir. A missing, unreadable
// or undecodable theme is logged and reported as nil.
func LoadTheme(configDir, name string) *theme.Document {
	path := ThemePath(configDir, name)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Infof("base theme %q not found at %s", name, path)
		return nil
	}
	if err != nil {
		log.Warningf("reading base theme %s: %s", path, err)
		return nil
	}

	doc, err := theme.Decode(data)
	if err != nil {
		log.Warningf("decoding base theme %s: %s", path, err)
		return nil
	}
	return doc
}

// WriteTheme writes doc to path, creating parent directories as needed. It
// reports whether the file changed; identical content is left untouched.
func WriteTheme(path string, doc *theme.Document) (bool, error) {
	data, err := theme.Encode(doc)
	if err != nil {
		return false, fmt.Errorf("encoding theme: %w", err)
	}
	return writeIfChanged(path, data)
}

// PointConfig sets the "theme" field of the JSON project config at path to
// name, keeping every other field. A missing config is created. A config that
// is not a JSON object is left alone and reported as an error.
func PointConfig(path, name string) (bool, error) {
	schema, _ := json.Marshal(ConfigSchemaURL)
	cfg := map[string]json.RawMessage{"$schema": schema}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return false, fmt.Errorf("reading project config: %w", err)
	default:
		cfg = nil
		if err := json.Unmarshal(data, &cfg); err != nil {
			return false, fmt.Errorf("decoding project config %s: %w", path, err)
		}
		if cfg == nil {
			return false, fmt.Errorf("project config %s is not a JSON object", path)
		}
		var current string
		if json.Unmarshal(cfg["theme"], &current) == nil && current == name {
			return false, nil
		}
	}

	ref, err := json.Marshal(name)
	if err != nil {
		return false, fmt.Errorf("encoding theme name: %w", err)
	}
	cfg["theme"] = ref

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encoding project config: %w", err)
	}
	return writeIfChanged(path, append(out, '\n'))
}

// writeIfChanged replaces path with data through a temp file and rename, so
// concurrent writers never leave a torn file behind.
func writeIfChanged(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("replacing %s: %w", path, err)
	}
	return true, nil
}
