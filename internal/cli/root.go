// Package cli implements the hardmode commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/hardmode/internal/config"
	"github.com/dshills/hardmode/internal/config/loader"
	"github.com/dshills/hardmode/internal/config/registry"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	dir          string
	mainFile     string
	settingsFile string
	logLevel     string
	logFormat    string
	debounce     time.Duration
	noColor      bool
}

// NewRootCmd creates the root hardmode command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "hardmode",
		Short:         "hardmode - resolve and repair per-world hardmode configuration",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.dir, "dir", "d", "", "configuration directory")
	f.StringVar(&opts.mainFile, "main-file", "", "file name of the canonical document")
	f.StringVar(&opts.settingsFile, "settings", loader.DefaultFile, "tool settings file")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFormat, "log-format", "", "log format (text, json)")
	f.DurationVar(&opts.debounce, "debounce", 0, "how long the watcher waits for changes to settle")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newGetCmd(opts))
	root.AddCommand(newBlocksCmd(opts))
	root.AddCommand(newDumpCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(newSettingsCmd(opts))
	return root
}

// settings loads the tool settings with the changed flags layered on top.
func (o *rootOptions) settings(cmd *cobra.Command) (*loader.Settings, error) {
	f := cmd.Flags()
	flags := make(map[string]any)
	if f.Changed("dir") {
		flags[loader.KeyConfigDir] = o.dir
	}
	if f.Changed("main-file") {
		flags[loader.KeyMainFile] = o.mainFile
	}
	if f.Changed("log-level") {
		flags[loader.KeyLogLevel] = o.logLevel
	}
	if f.Changed("log-format") {
		flags[loader.KeyLogFormat] = o.logFormat
	}
	if f.Changed("debounce") {
		flags[loader.KeyDebounce] = o.debounce
	}
	if f.Lookup("dry-run") != nil && f.Changed("dry-run") {
		v, _ := f.GetBool("dry-run")
		flags[loader.KeyDryRun] = v
	}

	s, err := loader.LoadSettings(
		loader.WithFile(o.settingsFile),
		loader.WithFlags(flags),
	)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

// open builds a Config from the settings. The caller must Close it.
func (o *rootOptions) open(cmd *cobra.Command, extra ...config.Option) (*config.Config, *loader.Settings, error) {
	s, err := o.settings(cmd)
	if err != nil {
		return nil, nil, err
	}

	opts := []config.Option{
		config.WithDir(s.ConfigDir),
		config.WithMainFile(s.MainFile),
		config.WithLogger(newLogger(cmd.ErrOrStderr(), s)),
		config.WithDebounce(s.Debounce),
		config.WithDryRun(s.DryRun),
	}
	return config.New(append(opts, extra...)...), s, nil
}

// load opens the configuration and runs one load cycle.
func (o *rootOptions) load(cmd *cobra.Command, extra ...config.Option) (*config.Config, error) {
	cfg, _, err := o.open(cmd, extra...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Load(cmd.Context()); err != nil {
		cfg.Close()
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, s *loader.Settings) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: s.LogLevel}
	if s.LogFormat == loader.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// resolveNode accepts a full node path or one relative to the base node.
func resolveNode(reg *registry.Registry, name string) (string, error) {
	if reg.Has(name) {
		return name, nil
	}
	if full := registry.Base + "." + name; reg.Has(full) {
		return full, nil
	}
	return "", fmt.Errorf("%w: %s", config.ErrNodeNotFound, name)
}

// formatValue renders an effective value for text output.
func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	case nil:
		return "<unset>"
	default:
		return fmt.Sprint(val)
	}
}
