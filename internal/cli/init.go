// Package cli holds the start-up steps shared by cmd/folio and
// cmd/folio-worker.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"folio/internal/config"
	"folio/internal/core"
	"folio/internal/log"
)

// SetupLogger builds the process logger at the given level and installs it
// as the slog default.
func SetupLogger(level string) *log.Logger {
	lvl := log.ParseLevel(level)
	logger := log.New(log.Config{
		Level:     lvl,
		Component: log.ComponentApp,
		Handler:   slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}),
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and exits
// the process when it is invalid.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// HotelFromConfig overlays configured hotel details on the defaults.
func HotelFromConfig(cfg *config.Config) core.Hotel {
	h := core.DefaultHotel()
	if cfg.HotelName != "" {
		h.Name = cfg.HotelName
	}
	if cfg.HotelAddress != "" {
		h.Address = cfg.HotelAddress
	}
	if cfg.HotelGSTIN != "" {
		h.GSTIN = cfg.HotelGSTIN
	}
	if cfg.HotelPhone != "" {
		h.Phone = cfg.HotelPhone
	}
	if cfg.HotelEmail != "" {
		h.Email = cfg.HotelEmail
	}
	return h
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
	}()
	return ctx, cancel
}
