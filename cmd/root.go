package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/s0up4200/srtran-gateway/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Flags
	configFile string
	verbose    bool
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger zerolog.Logger

	// Root command
	rootCmd = &cobra.Command{
		Use:   "srtran-gateway",
		Short: "srtran-gateway - subtitle translation gateway",
		Long: `srtran-gateway exposes a small HTTP endpoint that translates subtitle
text (.srt) through Google's generative language API.

Example:
  srtran-gateway serve
  srtran-gateway translate -i input.srt -o output.srt`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if verbose {
				cfg.LogLevel = "debug"
			}

			logger, err = newLogger(cfg.LogLevel, logFormat)
			if err != nil {
				return err
			}
			log.Logger = logger
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func newLogger(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	switch format {
	case "json":
		return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger(), nil
	case "console", "":
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(lvl).With().Timestamp().Logger(), nil
	default:
		return zerolog.Logger{}, fmt.Errorf("invalid log format %q", format)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: search config.toml, .srtran-gateway.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
}
