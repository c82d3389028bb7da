package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"receipts/internal/platform/config"
	"receipts/internal/platform/httpserver"
	"receipts/internal/platform/logger"
	platformmetrics "receipts/internal/platform/metrics"
	"receipts/internal/receipt"
	receiptmetrics "receipts/internal/receipt/metrics"
	"receipts/internal/receipt/service"
	httptransport "receipts/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/receipt.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	receipts := receipt.NewStore(log)
	svc, err := receipt.NewService(receipts,
		service.WithLogger(log),
		service.WithMetrics(receiptmetrics.New(registry)),
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(log, platformmetrics.New(registry), registry,
		receipt.NewHandler(svc, log, cfg.MaxBodyBytes),
	)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting receipt processor", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down receipt processor")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
