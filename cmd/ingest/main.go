package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/clock"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/app"
	"github.com/TemirB/kaspi-feedback/internal/application/ingest"
	"github.com/TemirB/kaspi-feedback/internal/cache"
	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/kaspi"
	"github.com/TemirB/kaspi-feedback/internal/logger"
	"github.com/TemirB/kaspi-feedback/internal/pkg/breaker"
	"github.com/TemirB/kaspi-feedback/internal/supervisor"
)

func main() {
	cfg := config.Load(config.RoleIngest)

	lg, err := logger.New(cfg.Log, "ingest")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, flush := app.Metrics(ctx, cfg.MetricsAddr, lg)
	defer flush()

	client, err := kaspi.NewClient(cfg.Kaspi, breaker.New(cfg.Breaker, clock.WallClock), lg)
	if err != nil {
		lg.Fatal("Kaspi client", zap.Error(err))
	}
	products, err := cache.New[gjson.Result](cache.DefaultSize)
	if err != nil {
		lg.Fatal("Resolution cache", zap.Error(err))
	}

	listeners, closeSinks := app.Sinks(ctx, cfg, lg)
	defer closeSinks()

	svc := ingest.NewService(
		kaspi.NewFetcher(client, cfg.Window, clock.WallClock, lg),
		kaspi.NewResolver(client, products, metrics, lg),
		app.Store(cfg.Store.OutputFile, cfg.Store, lg),
		cfg.Store,
		lg,
		metrics,
		listeners...,
	)

	lg.Info("Ingest starting",
		zap.String("store", cfg.Store.Name),
		zap.String("articles", cfg.Store.ArticlesFile),
		zap.String("output", cfg.Store.OutputFile),
		zap.Int("window_hours", cfg.Window.Hours),
	)
	sup := supervisor.New("ingest", cfg.Loop.IngestInterval, clock.WallClock, lg, metrics)
	_ = sup.Run(ctx, func(ctx context.Context) error {
		_, err := svc.Run(ctx)
		return err
	})
	lg.Info("Ingest stopped")
}
