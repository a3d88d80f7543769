// Command trainerstub serves the trainer collection endpoint from a local
// SQLite database for development and end-to-end testing of trainerpanel.
package main

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

	sqliteadapter "github.com/ericfisherdev/trainerpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/trainerpanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/trainerpanel/internal/config"
	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
	"github.com/ericfisherdev/trainerpanel/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadStub()
	if err != nil {
		return err
	}

	logger := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"base_path", cfg.BasePath,
		"db_path", cfg.DBPath,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	logger.Info("migrations complete")

	repo := sqliteadapter.NewEntityRepo(db)
	if cfg.Seed {
		if err := seed(ctx, repo, logger); err != nil {
			return err
		}
	}

	handler := httphandler.NewServeMux(httphandler.NewHandler(repo, logger), cfg.BasePath, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr, "base_path", cfg.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// seed inserts the sample dataset when the database is empty.
func seed(ctx context.Context, repo driven.EntityRepo, logger *slog.Logger) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		logger.Info("seed skipped, database not empty", "count", n)
		return nil
	}

	for _, e := range model.SampleEntities() {
		if _, err := repo.Insert(ctx, e.Draft()); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	logger.Info("sample dataset seeded", "count", len(model.SampleEntities()))
	return nil
}
