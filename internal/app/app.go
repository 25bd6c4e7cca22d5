// Package app holds the wiring shared by the cmd/ processes.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/domain"
	"github.com/TemirB/kaspi-feedback/internal/events"
	"github.com/TemirB/kaspi-feedback/internal/journal"
	"github.com/TemirB/kaspi-feedback/internal/observability"
	"github.com/TemirB/kaspi-feedback/internal/store"
)

// Store opens the merge store at path, behind the cross-process lock unless
// it is switched off.
func Store(path string, cfg config.Store, logger *zap.Logger) *store.Store {
	var opts []store.Option
	if cfg.Lock {
		opts = append(opts, store.WithLocker(store.NewMutexLocker(path, clock.WallClock, cfg.LockTimeout)))
	}
	return store.New(path, logger, opts...)
}

// Sinks builds the optional event listeners. A sink that cannot be set up is
// logged and skipped; the store stays the source of truth.
func Sinks(ctx context.Context, cfg config.Config, logger *zap.Logger) ([]domain.Listener, func()) {
	var (
		listeners []domain.Listener
		closers   []func()
	)

	if len(cfg.Kafka.Brokers) > 0 {
		if err := events.EnsureTopic(ctx, cfg.Kafka, 1, 1, logger); err != nil {
			logger.Warn("Kafka topic not ensured", zap.Error(err))
		}
		pub := events.NewPublisher(events.NewWriter(cfg.Kafka), clock.WallClock, logger)
		listeners = append(listeners, pub)
		closers = append(closers, func() {
			if err := pub.Close(); err != nil {
				logger.Warn("Kafka writer close", zap.Error(err))
			}
		})
		logger.Info("Kafka sink enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	if cfg.Pg.DSN != "" {
		pool, err := journal.Connect(ctx, cfg.Pg.DSN, logger)
		if err != nil {
			logger.Warn("Postgres journal disabled", zap.Error(err))
		} else {
			j := journal.New(pool, cfg.Pg.Table, clock.WallClock, logger)
			if err := j.EnsureSchema(ctx); err != nil {
				logger.Warn("Postgres journal disabled", zap.Error(err))
				pool.Close()
			} else {
				listeners = append(listeners, j)
				closers = append(closers, pool.Close)
				logger.Info("Postgres journal enabled", zap.String("table", cfg.Pg.Table))
			}
		}
	}

	return listeners, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

// Metrics returns the recorder for a loop process. With an address it serves
// Prometheus there until ctx is done; without one it keeps in-memory totals
// and logs them on stop.
func Metrics(ctx context.Context, addr string, logger *zap.Logger) (observability.Metrics, func()) {
	if addr == "" {
		m := observability.NewInmem(0)
		return m, func() {
			t := m.Totals()
			logger.Info("Totals",
				zap.Int("fetched", t.Fetched),
				zap.Int("matched", t.Matched),
				zap.Int("stored", t.Stored),
				zap.Int("delivered", t.Delivered),
				zap.Int("delivery_failures", t.DeliveryFailures),
				zap.Int("skipped_phones", t.Skipped),
				zap.Int("cache_hits", t.CacheHits),
				zap.Int("cache_misses", t.CacheMiss),
			)
		}
	}

	reg := Registry()
	prom := observability.NewPrometheus()
	reg.MustRegister(prom)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("Metrics listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server", zap.Error(err))
		}
	}()
	return prom, func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}
}

// Registry is a fresh registry with the Go runtime and process collectors.
func Registry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
