package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/app"
	"github.com/TemirB/kaspi-feedback/internal/application/delivery"
	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/logger"
	"github.com/TemirB/kaspi-feedback/internal/message"
	"github.com/TemirB/kaspi-feedback/internal/supervisor"
	"github.com/TemirB/kaspi-feedback/internal/whatsapp"
	"github.com/TemirB/kaspi-feedback/internal/whatsapp/browser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: deliver <orders.json>")
		return
	}
	path := os.Args[1]

	cfg := config.Load(config.RoleDeliver)

	lg, err := logger.New(cfg.Log, "deliver")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, flush := app.Metrics(ctx, cfg.MetricsAddr, lg)
	defer flush()

	composer, err := message.New(cfg.Review.URL, cfg.Review.Rating)
	if err != nil {
		lg.Fatal("Message composer", zap.Error(err))
	}

	b, err := browser.New(ctx, cfg.WhatsApp, lg)
	if err != nil {
		lg.Fatal("Browser", zap.Error(err))
	}
	defer b.Close()

	listeners, closeSinks := app.Sinks(ctx, cfg, lg)
	defer closeSinks()

	svc := delivery.NewService(
		app.Store(path, cfg.Store, lg),
		whatsapp.NewSender(b, cfg.WhatsApp, cfg.Retry, clock.WallClock, lg),
		composer,
		lg,
		metrics,
		listeners...,
	)

	lg.Info("Deliver starting", zap.String("store", path))
	sup := supervisor.New("deliver", cfg.Loop.DeliverInterval, clock.WallClock, lg, metrics)
	_ = sup.Run(ctx, func(ctx context.Context) error {
		_, err := svc.Process(ctx)
		return err
	})
	lg.Info("Deliver stopped")
}
