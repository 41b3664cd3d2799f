// Package commands implements the orrery command line.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/agiangrant/orrery"
	"github.com/agiangrant/orrery/config"
	"github.com/agiangrant/orrery/internal/logging"
)

// Version is the orrery release, overridable with -ldflags.
var Version = "0.1.0"

var (
	cfgFile   string
	logLevel  string
	logFormat string

	// loaded is the effective configuration, set before any subcommand runs.
	loaded config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Frame-loop runtime for games and interactive apps",
	Long: `orrery drives a frame loop on top of a windowing backend (SDL, X11,
x/mobile or headless), translating native events into callbacks and
running scheduled work between frames.

Configuration is read from a TOML or YAML file chosen by extension.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "text or json (default: text on a terminal)")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	loaded = cfg
	orrery.SetLogger(newLogger(cmd.ErrOrStderr(), cfg.Log))
	return nil
}

// newLogger builds the process logger. With no explicit format it writes
// text to a terminal and JSON anywhere else.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logging.ParseLevel(lc.Level)}
	format := lc.Format
	if format == "" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "text"
		}
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
