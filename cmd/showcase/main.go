// Command showcase serves the site, seeds its content and presents the deck in a
// terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eringen/showcase"
	"github.com/eringen/showcase/deck"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	logLevel string
	cfg      showcase.SiteConfig
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "showcase - a marketing site built with Go, Echo, templ and htmx",
	Long: `showcase serves a filterable blog, a password-gated slide deck and the
Hackathon OS demo. Configuration comes from SHOWCASE_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = showcase.LoadConfig(); err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger, err = newLogger(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var hashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Print the SHOWCASE_DECK_PASSWORD_HASH value for a password",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), deck.HashPassword(args[0]))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the showcase version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "showcase %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides SHOWCASE_LOG_LEVEL)")
	rootCmd.AddCommand(serveCmd, seedCmd, presentCmd, hashCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}
