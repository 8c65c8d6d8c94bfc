package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/terra-clan/examkit/internal/api"
	"github.com/terra-clan/examkit/internal/assets"
	"github.com/terra-clan/examkit/internal/config"
	"github.com/terra-clan/examkit/internal/content"
	"github.com/terra-clan/examkit/internal/images"
)

func main() {
	var (
		configPath = pflag.String("config", "", "path to a YAML config file (defaults to $EXAMKIT_CONFIG)")
		assetsDir  = pflag.String("assets", "", "asset directory for the fs backend")
		backend    = pflag.String("backend", "", "asset backend: fs, postgres or redis")
		port       = pflag.Int("port", 0, "HTTP port")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over file and environment
	if *assetsDir != "" {
		cfg.Assets.Dir = *assetsDir
	}
	if *backend != "" {
		cfg.Assets.Backend = *backend
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup structured logging
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("starting examkit-server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"backend", cfg.Assets.Backend,
	)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	store, err := openStore(initCtx, cfg)
	if err != nil {
		slog.Error("failed to open asset store", "backend", cfg.Assets.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := content.NewService(store)
	resolver := images.NewResolver(store)

	server := api.NewServer(cfg.Server, svc, resolver, cfg.Auth, api.WithImageDecoder(images.StdDecoder{}))
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("examkit-server stopped")
}

// openStore opens the configured asset backend
func openStore(ctx context.Context, cfg *config.Config) (assets.Store, error) {
	switch cfg.Assets.Backend {
	case config.BackendPostgres:
		slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
		if err := assets.MigrateFromDSN(ctx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		store, err := assets.NewPostgresStore(ctx, assets.PostgresConfig{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxConns),
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendRedis:
		store, err := assets.NewRedisStore(ctx, assets.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := assets.NewDirStore(cfg.Assets.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
