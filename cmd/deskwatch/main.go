package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rturnbull/otcdesk/internal/api"
	"github.com/rturnbull/otcdesk/internal/channel"
	"github.com/rturnbull/otcdesk/internal/config"
	"github.com/rturnbull/otcdesk/internal/session"
	"github.com/rturnbull/otcdesk/internal/snapshot"
	"github.com/rturnbull/otcdesk/internal/store"
	"github.com/rturnbull/otcdesk/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/deskwatch.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting deskwatch",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Local .env overlay for the ${VAR} references in the config file.
	// Missing file is fine; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env overlay")
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"rest_url", cfg.API.RestURL,
		"ws_url", cfg.API.WSURL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client
	apiClient := api.NewClient(
		cfg.API.RestURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
	)

	st := store.New()
	loader := snapshot.New(snapshot.Config{Timeout: cfg.Refresh.SnapshotTimeout}, apiClient, logger)

	sess := session.New(session.Config{
		WSURL:            cfg.API.WSURL,
		RefreshInterval:  cfg.Refresh.Interval,
		PingInterval:     cfg.Channels.PingInterval,
		HandshakeTimeout: cfg.Channels.HandshakeTimeout,
		Reconnect: channel.SupervisorConfig{
			BaseDelay:  cfg.Channels.ReconnectBaseDelay,
			MaxDelay:   cfg.Channels.ReconnectMaxDelay,
			ResetAfter: cfg.Channels.ReconnectResetAfter,
		},
	}, apiClient, loader, st, logger)

	// Start status server early so a stuck login is observable
	statusServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Status.Port),
		Handler: createStatusHandler(cfg.Status.Path, sess, st),
	}

	go func() {
		logger.Info("starting status server", "port", cfg.Status.Port, "path", cfg.Status.Path)
		if err := statusServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("status server error", "error", err)
		}
	}()

	logger.Info("logging in", "username", cfg.Auth.Username)
	if err := sess.Login(ctx, cfg.Auth.Username, cfg.Auth.Password); err != nil {
		logger.Error("login failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := sess.Logout(shutdownCtx); err != nil {
			logger.Warn("logout incomplete", "error", err)
		}
	}()

	logger.Info("deskwatch running",
		"instance_id", cfg.Instance.ID,
		"status_url", fmt.Sprintf("http://localhost:%d%s", cfg.Status.Port, cfg.Status.Path),
	)

	// Console render loop; returns on shutdown
	renderLoop(ctx, sess, st, os.Stdout)

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	statusServer.Shutdown(shutdownCtx)

	logger.Info("deskwatch stopped")
}
