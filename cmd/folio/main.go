package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"folio/internal/amqp"
	"folio/internal/backend"
	"folio/internal/cache"
	"folio/internal/cli"
	"folio/internal/config"
	"folio/internal/core"
	apphttp "folio/internal/http"
	"folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/numbering"
	"folio/internal/ratecard"
	"folio/internal/render"
	"folio/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("folio stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := cli.SignalContext(logger)
	defer stop()

	m := metrics.New()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	counters, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Slog()).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("counter store: %w", err)
	}
	defer func() {
		if err := counters.Close(); err != nil {
			logger.Warn("Failed to close counter store", log.FieldError, err)
		}
	}()

	rates, err := ratecard.Load(cfg.RatesFile, logger)
	if err != nil {
		return err
	}
	rates.OnChange(func(core.RateTable) { m.RateCardChanged() })

	invoices := cache.NewLRUCache[core.Invoice](cfg.InvoiceCacheSize, cfg.InvoiceCacheTTL)
	caches := cache.NewManager(logger.WithComponent(log.ComponentCache).Slog())
	caches.Register(invoices)
	caches.StartCleanup(10 * time.Minute)
	defer caches.Stop()

	var publisher services.Publisher
	if cfg.ExportEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, invoices will not reach the register", log.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("Register export enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("Register export disabled - no AMQP_URL provided")
	}

	svc := services.NewInvoiceService(services.Options{
		Numberer:  numbering.New(counters.Store),
		Rates:     rates,
		Cache:     invoices,
		Renderers: []render.Renderer{render.NewPDF(), render.NewXLSX()},
		Publisher: publisher,
		Metrics:   m,
		Logger:    logger,
		Hotel:     cli.HotelFromConfig(cfg),
		Backend:   cfg.CounterBackend,
	})

	srv, err := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Service:            svc,
		Metrics:            m,
		Logger:             logger,
		Ready:              counters.Ping,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting folio server", "port", cfg.Port, log.FieldBackend, cfg.CounterBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
