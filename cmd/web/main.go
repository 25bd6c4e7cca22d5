package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/app"
	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/httpapi"
	"github.com/TemirB/kaspi-feedback/internal/logger"
	"github.com/TemirB/kaspi-feedback/internal/observability"
	"github.com/TemirB/kaspi-feedback/internal/store"
)

func main() {
	cfg := config.Load(config.RoleWeb)

	lg, err := logger.New(cfg.Log, "web")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := app.Registry()
	prom := observability.NewPrometheus()
	reg.MustRegister(prom)

	// Read-only: no lock, the loops own writes.
	srv := httpapi.New(store.New(cfg.Store.OutputFile, lg), lg, prom,
		httpapi.WithStatic("web"),
		httpapi.WithGatherer(reg),
	)

	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal("HTTP server", zap.Error(err))
	}
	lg.Info("Server stopped")
}
