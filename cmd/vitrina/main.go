package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mzagar/vitrina/internal/api"
	"github.com/mzagar/vitrina/internal/auth"
	"github.com/mzagar/vitrina/internal/config"
	"github.com/mzagar/vitrina/internal/db"
	"github.com/mzagar/vitrina/internal/storage"
	"github.com/mzagar/vitrina/internal/web"
)

func main() {
	// A .env file is a convenience for development; the environment wins.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		return err
	}
	slog.Info("database ready", "path", cfg.DBPath)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenExpiry)
	creds := auth.Credentials{
		Username:     cfg.AdminUsername,
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
	}

	objects, uploadsDir := selectObjectStore(cfg)

	secureCookies := cfg.IsProduction()

	apiRouter := api.NewRouter(database, tokens, creds, objects, secureCookies)
	webRouter, err := web.NewRouter(database, tokens, creds, secureCookies)
	if err != nil {
		return err
	}

	// API routes take priority, pages handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	if uploadsDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "env", cfg.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	slog.Info("server stopped, closing database")
	return nil
}

// selectObjectStore picks where uploads go: the configured bucket when
// set, a local directory in development, or nothing at all. The second
// return value is the directory to serve under /uploads/, empty unless
// the local store is in use.
func selectObjectStore(cfg *config.Config) (storage.ObjectStore, string) {
	if cfg.UseBucket() {
		slog.Info("using bucket object storage", "endpoint", cfg.BucketEndpoint, "bucket", cfg.BucketName)
		return storage.NewBucket(cfg.BucketEndpoint, cfg.BucketName, cfg.BucketKey), ""
	}

	if cfg.IsDevelopment() {
		slog.Info("using local object storage", "dir", cfg.UploadsDir)
		return storage.NewDir(cfg.UploadsDir, cfg.PublicBaseURL), cfg.UploadsDir
	}

	slog.Warn("object storage not configured, uploads disabled")
	return nil, ""
}
