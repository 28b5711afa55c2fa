package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mcdev12/weblurk/go/internal/config"
	"github.com/mcdev12/weblurk/go/internal/events"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := setupStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup store")
	}
	defer stores.Close()

	var (
		publisher events.Publisher = events.NoopPublisher{}
		nc        *nats.Conn
	)
	if cfg.NATS.URL != "" {
		nc, err = events.Connect(cfg.NATS.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer nc.Close()
		publisher = events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix)
	}

	services, err := setupServices(cfg, stores, publisher)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup services")
	}

	if err := startup(ctx, cfg, services); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	server := setupServer(cfg.Server.Port, services, stores, nc)

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("store", cfg.Store.Driver).
			Str("nats_url", cfg.NATS.URL).
			Dur("interval", cfg.Lurk.Interval).
			Msg("weblurk server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Timers stop after the server so no request can start a new one
	if err := services.Scheduler.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown failed")
	}

	if nc != nil {
		if err := nc.Drain(); err != nil {
			log.Warn().Err(err).Msg("failed to drain NATS connection")
		}
	}

	log.Info().Msg("weblurk shutdown complete")
}
