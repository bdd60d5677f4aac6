package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/api"
	"github.com/yourname/habittracker/internal/config"
	"github.com/yourname/habittracker/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	habitRepo, dayRepo, closer, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	app := api.NewApp(logger, habitRepo, dayRepo)
	r := api.NewRouter(app, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Infof("Server running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := closer.Close(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}

func buildRepositories(cfg *config.Config, logger internal.Logger) (storage.HabitRepository, storage.DayRepository, io.Closer, error) {
	switch cfg.DBType {
	case "postgres":
		return storage.NewPostgresRepositories(cfg.DBDSN, logger)
	case "file":
		if err := ensureDataDir(cfg.FileHabits); err != nil {
			return nil, nil, nil, err
		}
		return storage.NewFileRepositories(cfg.FileHabits, cfg.FileDays, logger)
	default:
		if err := ensureDataDir(cfg.SQLitePath); err != nil {
			return nil, nil, nil, err
		}
		return storage.NewSQLiteRepositories(cfg.SQLitePath, logger)
	}
}

func ensureDataDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
