package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsvensson/accentsync"
	"github.com/jsvensson/accentsync/internal/config"
	"github.com/jsvensson/accentsync/internal/format"
	"github.com/jsvensson/accentsync/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagCheck  bool
	flagAmount float64
	version    = "dev" // Injected at build time via ldflags

	// opts merges persistent flags with ACCENTSYNC_* environment variables.
	opts = viper.New()
)

// errUnformatted is returned by fmt --check when a file would change.
var errUnformatted = errors.New("files are not formatted")

var rootCmd = &cobra.Command{
	Use:               "accentsync",
	Short:             "Keep an opencode theme in step with your editor's accent color",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: configureLogging,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Generate the theme once and point the project config at it",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync on start and again whenever the accent or config changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

var paletteCmd = &cobra.Command{
	Use:   "palette <hex>",
	Short: "Show the base, light and dark colors derived from an accent",
	Args:  cobra.ExactArgs(1),
	RunE:  runPalette,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format .accentsync.hcl files",
	Long:  "Format accentsync config files in-place, the project's own by default. Prints the name of each file that was modified.",
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("project", "p", ".", "project directory")
	flags.String("config-dir", "", "opencode config directory holding base themes (default $XDG_CONFIG_HOME/opencode)")
	flags.CountP("verbose", "v", "log more (-v info, -vv debug)")

	opts.SetEnvPrefix("ACCENTSYNC")
	opts.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.AutomaticEnv()
	if err := opts.BindPFlags(flags); err != nil {
		panic(err)
	}

	paletteCmd.Flags().Float64Var(&flagAmount, "amount", 0, "lightness shift, 0.0 to 1.0 (default from the project config)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

func configureLogging(cmd *cobra.Command, args []string) error {
	commonlog.Configure(opts.GetInt("verbose"), nil)
	return nil
}

// projectDir returns the absolute project directory.
func projectDir() (string, error) {
	dir, err := filepath.Abs(opts.GetString("project"))
	if err != nil {
		return "", fmt.Errorf("resolving project directory: %w", err)
	}
	return dir, nil
}

func configDir() string {
	if dir := opts.GetString("config-dir"); dir != "" {
		return dir
	}
	return store.DefaultConfigDir()
}

func newEngine() (*accentsync.Engine, error) {
	dir, err := projectDir()
	if err != nil {
		return nil, err
	}
	return accentsync.New(dir, configDir())
}

func runSync(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	res, err := e.Run()
	if err != nil {
		return fmt.Errorf("syncing: %w", err)
	}
	report(cmd, res)
	return nil
}

func report(cmd *cobra.Command, res *accentsync.Result) {
	out := cmd.OutOrStdout()
	switch {
	case res.Skipped:
		fmt.Fprintln(out, "No accent color found, nothing written")
	case res.ThemeChanged || res.ConfigChanged:
		fmt.Fprintf(out, "Synced %s into %s\n", res.Accent, res.ThemePath)
	default:
		fmt.Fprintf(out, "%s is up to date\n", res.ThemePath)
	}
}

func runFmt(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		dir, err := projectDir()
		if err != nil {
			return err
		}
		args = []string{filepath.Join(dir, config.FileName)}
	}

	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	switch {
	case hasErrors:
		return errors.New("fmt failed")
	case flagCheck && needsFormatting:
		return errUnformatted
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
