package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/nexus-backend/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg, log, nil)
		if err != nil {
			log.Error("startup failed", "error", err)
			return err
		}
		a.Start(ctx)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(a.Run)
		g.Go(func() error {
			<-gctx.Done()
			log.Info("shutting down", "timeout", cfg.HTTP.ShutdownTimeout)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return a.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}
