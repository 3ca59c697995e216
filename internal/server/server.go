// Package server boots the API process: configuration, Mongo, Redis,
// storage, the HTTP stack, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vyshnav-v/food-delivery/app/routes"
	"github.com/vyshnav-v/food-delivery/config"
	"github.com/vyshnav-v/food-delivery/pkg/cache"
	"github.com/vyshnav-v/food-delivery/pkg/database"
	"github.com/vyshnav-v/food-delivery/pkg/logger"
	"github.com/vyshnav-v/food-delivery/pkg/router"
	"github.com/vyshnav-v/food-delivery/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Start runs the server until SIGINT/SIGTERM, then drains connections.
func Start() error {
	config.Load()
	ctx := context.Background()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background())

	if err := database.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Request logs are persisted alongside the data; attach the Mongo
	// handler once the connection is up.
	mongoLog := logger.NewMongoHandler(
		database.Collection(database.ColLogs), slog.LevelInfo)
	logger.Attach(mongoLog)
	defer mongoLog.Close()

	// Redis and object storage are optional at boot.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	r := router.New()
	routes.RegisterAPI(r)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	logger.Info("server: stopped")
	return nil
}
