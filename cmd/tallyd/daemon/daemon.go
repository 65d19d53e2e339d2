// Package daemon provides the Tally stub daemon lifecycle management.
//
// This package implements startup and graceful shutdown for tallyd. The daemon
// runs a single service, the HTTP pipeline endpoint, so the lifecycle is
// simple: validate configuration, start the server, wait for a termination
// signal, then drain in-flight requests with a bounded shutdown timeout.
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tally-dev/tally/cmd/tallyd/config"
	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/version"
)

// shutdownTimeout bounds how long in-flight submissions may drain on exit.
const shutdownTimeout = 10 * time.Second

// Run starts the pipeline endpoint and blocks until a termination signal
// arrives, then shuts the server down gracefully.
func Run() error {
	logging.Info("Starting tallyd %s", version.TallydVersion)

	server := api.NewServer(&api.Config{
		BindAddr:      config.Global.BindAddr,
		BindPort:      config.Global.BindPort,
		WarnThreshold: config.Global.Threshold,
	})

	if err := server.Start(); err != nil {
		logging.Error("Failed to start pipeline endpoint: %v", err)
		return fmt.Errorf("failed to start pipeline endpoint: %w", err)
	}

	logging.Info("Review warning threshold: %s", config.Global.Threshold)

	// Block until SIGINT or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logging.Info("Received signal %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error: %v", err)
		return fmt.Errorf("shutdown error: %w", err)
	}

	logging.Success("tallyd stopped cleanly")
	return nil
}
