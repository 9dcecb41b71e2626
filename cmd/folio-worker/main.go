package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"folio/internal/amqp"
	"folio/internal/cli"
	"folio/internal/config"
	"folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/sheets"
	gsheet "folio/internal/sheets/google"
	"folio/internal/sheets/memory"
	"folio/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentWorker)

	logger.Info("Starting folio-worker")
	if err := run(cfg, logger); err != nil {
		logger.Error("folio-worker stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

func run(cfg *config.Config, logger *log.Logger) error {
	if cfg.AMQPURL == "" {
		return errors.New("AMQP_URL is required for the register worker")
	}

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	var register sheets.RegisterWriter
	if cfg.GoogleSpreadsheetID != "" {
		if err := cfg.ValidateRegister(); err != nil {
			return err
		}
		client, err := gsheet.New(ctx, gsheet.Options{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return err
		}
		register = client
		logger.Info("Google Sheets register initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Warn("No GOOGLE_SPREADSHEET_ID provided, keeping the register in memory")
		register = memory.New()
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return err
	}
	defer client.Close()

	m := metrics.New()
	registerWorker := worker.NewRegisterWorker(register, m)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := client.ConsumeInvoiceGenerated(gctx, registerWorker.HandleInvoiceGenerated)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
