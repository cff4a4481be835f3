package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/showcase"
)

var (
	serveAddr   string
	serveStatic string
	noWatch     bool
)

const (
	contentDebounce = 500 * time.Millisecond
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site",
	Long: `serve opens the database, seeds SHOWCASE_CONTENT_PATH when it is set and
listens on SHOWCASE_ADDR. The content file is watched and reseeded on change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		a := showcase.New(cfg, showcase.WithLogger(logger), showcase.WithStaticDir(serveStatic))
		defer a.Close()
		if err := a.Setup(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.ContentPath != "" && !noWatch {
			if err := a.WatchContent(ctx, cfg.ContentPath, contentDebounce); err != nil {
				logger.Warn("content watch disabled", zap.Error(err))
			}
		}

		errc := make(chan error, 1)
		go func() { errc <- a.Serve() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Shutdown(sctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errc
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed <content.yaml>",
	Short: "Load posts from a YAML file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := showcase.NewStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		a := showcase.New(cfg, showcase.WithLogger(logger))
		a.Store = store
		defer a.Close()
		n, err := a.SeedFile(args[0])
		if err != nil {
			return err
		}
		logger.Info("seeded", zap.String("file", args[0]), zap.Int("posts", n), zap.String("db", cfg.DatabasePath))
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides SHOWCASE_ADDR)")
	serveCmd.Flags().StringVar(&serveStatic, "static", "public", "static asset directory")
	serveCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reseed when the content file changes")
}
