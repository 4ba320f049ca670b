package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photo-gallery/pkg/handlers"
	"photo-gallery/pkg/services"
)

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to serve the galleries, photobooks and the JSON API via HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			return serveWebsite(cmd.Context(), a)
		},
	}
}

// serveWebsite runs the web server until ctx is cancelled
func serveWebsite(ctx context.Context, a *app) error {
	imagesDir := ""
	if !a.cfg.UsesBucket() {
		imagesDir = a.cfg.ImagesDir
		if a.cfg.WatchImages {
			startWatcher(ctx, a)
		}
	}

	h := handlers.New(a.service, a.cfg.ViewsDir, a.logger)
	server := &http.Server{
		Addr:              a.cfg.ServerAddress(),
		Handler:           h.Routes(a.cfg.PublicDir, imagesDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.cfg.PrintServerStartMessage()
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation (Ctrl+C) or server error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("server shutdown failed", zap.Error(err))
			return err
		}
		a.logger.Info("server stopped")
		return nil
	case err := <-serverErr:
		a.logger.Error("server error", zap.Error(err))
		return err
	}
}

// startWatcher flushes the gallery cache whenever the images directory changes
func startWatcher(ctx context.Context, a *app) {
	watcher, err := services.NewWatcher(a.cfg.ImagesDir, a.service.Flush, a.logger)
	if err == nil {
		err = watcher.Start(ctx)
	}
	if err != nil {
		a.logger.Warn("not watching images, cache expires after its TTL only",
			zap.String("dir", a.cfg.ImagesDir), zap.Error(err))
	}
}
