// Package main provides the city statistics HTTP service. It owns one
// report manager per process and exposes recording, reports, charts,
// save state and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"city-stats/internal/config"
	"city-stats/internal/reporting"
	"city-stats/internal/storage/backends"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	envFile := flag.String("env-file", ".env", "Environment file loaded before CITYSTATS_* overrides")
	addr := flag.String("addr", "", "HTTP listen address (default from config)")
	session := flag.String("session", "", "Archive session ID (default: random UUID)")
	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	saves, closeSaves, err := backends.OpenSaveStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to open save store: %v", err)
	}
	defer closeSaves()

	archive, closeArchive, err := backends.OpenArchive(ctx, cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to connect to clickhouse: %v", err)
	}
	defer closeArchive()

	sessionID := *session
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	manager := reporting.NewManager(cfg.ManagerOptions(log.New(os.Stdout, "[manager] ", log.LstdFlags)))
	server := NewServer(manager, saves, archive, sessionID, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
		defer stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
	}()

	logger.Printf("Starting HTTP server on %s (session %s)", cfg.Server.Addr, sessionID)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}
