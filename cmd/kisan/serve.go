package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/api"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web chat client",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(zap.InfoLevel)
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	if !a.cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup router
	router := api.SetupRouter(a.sessions, a.advisor, logger, api.RouterConfig{
		AllowOrigins: a.cfg.Server.AllowOrigins,
	})

	// WriteTimeout is left unset: a submit holds its request open until
	// the advisory call settles.
	srv := &http.Server{
		Addr:              a.cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if idle := a.cfg.Server.SessionIdleTimeout; idle > 0 {
		go a.sessions.Run(sweepCtx, max(idle/2, time.Second))
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting KisanAI server",
			zap.String("address", a.cfg.Address()),
			zap.String("advisory_url", a.cfg.Advisory.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server exited")
	return nil
}
