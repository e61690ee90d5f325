package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/jsvensson/accentsync"
	"github.com/jsvensson/accentsync/internal/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("accentsync.watch")

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dir, err := projectDir()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl-C to stop)\n", dir)
	return watch(ctx, dir, configDir(), func(res *accentsync.Result) {
		report(cmd, res)
	})
}

// watch runs a sync pass, then one more for every write to the settings file
// or the project config, until ctx is done. A changed config is reloaded
// before its pass; an invalid one is logged and the previous config kept.
func watch(ctx context.Context, projectDir, configDir string, onResult func(*accentsync.Result)) error {
	engine, err := accentsync.New(projectDir, configDir)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// Parent directories are watched; a save that renames a temp file over
	// the original shows up there as a Create.
	watched := make(map[string]bool)
	watchDir := func(dir string) {
		if watched[dir] {
			return
		}
		if err := w.Add(dir); err != nil {
			log.Warningf("cannot watch %s: %s", dir, err)
			return
		}
		watched[dir] = true
	}
	watchDir(projectDir)
	watchSettings := func() {
		watchDir(nearestDir(filepath.Dir(engine.SettingsPath())))
	}
	watchSettings()

	pass := func() {
		res, err := engine.Run()
		if err != nil {
			log.Errorf("sync failed: %s", err)
			return
		}
		onResult(res)
	}
	pass()

	configPath := filepath.Join(projectDir, config.FileName)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				delete(watched, name)
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			settingsPath := filepath.Clean(engine.SettingsPath())
			switch {
			case name == configPath:
				reloaded, err := accentsync.New(projectDir, configDir)
				if err != nil {
					log.Errorf("reloading config: %s", err)
					continue
				}
				engine = reloaded
				watchSettings()
				pass()
			case name == settingsPath:
				pass()
			case ev.Has(fsnotify.Create) && isAncestor(name, settingsPath):
				// A directory on the way to the settings file appeared. The
				// file may already be inside it by the time the watch is added.
				watchSettings()
				if _, err := os.Stat(settingsPath); err == nil {
					pass()
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warningf("watcher: %s", err)
		}
	}
}

// nearestDir returns dir, or its closest ancestor that exists.
func nearestDir(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// isAncestor reports whether dir is a proper ancestor of path.
func isAncestor(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
