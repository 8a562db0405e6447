// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/canchalibre/canchaops/internal/api/dashboard"
	"github.com/canchalibre/canchaops/internal/config"
	"github.com/canchalibre/canchaops/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	server, cleanup, err := newServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build server")
	}
	defer cleanup()

	sched, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if _, err := sched.Every("dashboard-refresh", cfg.Dashboard.RefreshInterval(), func() {
		dashboard.RefreshSnapshot(context.Background())
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register dashboard refresh job")
	}
	sched.Start()

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown error")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
