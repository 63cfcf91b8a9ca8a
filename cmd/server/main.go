package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenteam/opsboard/internal/server/handlers"
	"github.com/greenteam/opsboard/internal/server/middleware"
	"github.com/greenteam/opsboard/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", envOr("OPSBOARD_ADDR", ":8080"), "Listen address")
	dbPath := flag.String("db", envOr("OPSBOARD_DB", "opsboard.db"), "Path to SQLite database")
	jwtSecret := flag.String("jwt-secret", os.Getenv("OPSBOARD_JWT_SECRET"), "JWT signing secret")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger, *addr, *dbPath, *jwtSecret); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath, jwtSecret string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if jwtSecret == "" {
		// Без заданного секрета генерируем случайный: сервер работает,
		// но выданные токены не переживут перезапуск
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		jwtSecret = base64.StdEncoding.EncodeToString(buf)
		logger.Warn("OPSBOARD_JWT_SECRET not set, using a random secret for this run")
	}

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(jwtSecret),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig)
	docsHandler := handlers.NewDocumentsHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	requireAuth := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/v1/documents", requireAuth(http.HandlerFunc(docsHandler.List)))
	mux.Handle("GET /api/v1/documents/{key}", requireAuth(http.HandlerFunc(docsHandler.Get)))
	mux.Handle("PUT /api/v1/documents/{key}", requireAuth(http.HandlerFunc(docsHandler.Upsert)))
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	// Цепочка middleware: recovery снаружи, чтобы ловить панику и в логировании
	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(100, time.Minute, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Периодическая чистка просроченных refresh token
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := store.DeleteExpiredTokens(ctx)
				if err != nil {
					logger.Error("failed to delete expired tokens", "error", err)
				} else if deleted > 0 {
					logger.Info("deleted expired refresh tokens", "count", deleted)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr, "version", Version)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func printVersion() {
	fmt.Printf("Greenteam Ops Board Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
