package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/domain"
	"github.com/TemirB/kaspi-feedback/internal/kaspi"
	"github.com/TemirB/kaspi-feedback/internal/observability"
	"github.com/TemirB/kaspi-feedback/internal/phone"
	"github.com/TemirB/kaspi-feedback/internal/watchlist"
)

//go:generate mockgen -source=service.go -destination=service_mock_test.go -package=ingest
//go:generate mockgen -destination=listener_mock_test.go -package=ingest github.com/TemirB/kaspi-feedback/internal/domain Listener

type Source interface {
	Window() kaspi.Window
	Each(ctx context.Context, w kaspi.Window, fn func(kaspi.Order) error) error
}

type Resolver interface {
	Reset()
	Entries(ctx context.Context, orderID string) []domain.Entry
}

type Storage interface {
	Load() []domain.OrderRecord
	MergeAppend(ctx context.Context, records []domain.OrderRecord) error
}

// Stats describes one ingestion run.
type Stats struct {
	Watched  int
	Fetched  int
	Known    int
	Matched  int
	Stored   int
	Duration time.Duration
}

// Service runs one ingestion cycle: fetch the order window, resolve line
// items, keep orders hitting the watch-list and append the new ones to the
// store.
type Service struct {
	source    Source
	resolver  Resolver
	storage   Storage
	cfg       config.Store
	listeners []domain.Listener
	logger    *zap.Logger
	metrics   observability.Metrics
}

func NewService(
	source Source,
	resolver Resolver,
	storage Storage,
	cfg config.Store,
	logger *zap.Logger,
	metrics observability.Metrics,
	listeners ...domain.Listener,
) *Service {
	if cfg.DefaultStatus == "" {
		cfg.DefaultStatus = string(domain.StatusNew)
	}
	return &Service{
		source:    source,
		resolver:  resolver,
		storage:   storage,
		cfg:       cfg,
		listeners: listeners,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run performs one cycle. Orders matched before a page error are still
// written; the page error is returned afterwards.
func (s *Service) Run(ctx context.Context) (Stats, error) {
	var st Stats
	t0 := time.Now()

	codes, err := watchlist.Load(s.cfg.ArticlesFile)
	if err != nil {
		return st, fmt.Errorf("load watch-list: %w", err)
	}
	st.Watched = codes.Len()
	s.logger.Info("Watch-list loaded",
		zap.String("path", s.cfg.ArticlesFile),
		zap.Int("codes", st.Watched),
	)

	s.resolver.Reset()

	seen := make(map[string]struct{})
	for _, rec := range s.storage.Load() {
		seen[rec.OrderCode] = struct{}{}
	}

	var fresh []domain.OrderRecord
	w := s.source.Window()
	fetchErr := s.source.Each(ctx, w, func(o kaspi.Order) error {
		st.Fetched++
		if _, ok := seen[o.Code]; ok {
			st.Known++
			return nil
		}

		m, ok := watchlist.Match(s.resolver.Entries(ctx, o.ID), codes)
		if !ok {
			return nil
		}

		rec := s.record(o, m)
		fresh = append(fresh, rec)
		seen[o.Code] = struct{}{}
		st.Matched++
		s.metrics.IncMatched()

		s.logger.Info("Order matched",
			zap.String("order_code", rec.OrderCode),
			zap.String("article", rec.Article),
			zap.String("product_name", rec.ProductName),
		)
		return nil
	})
	s.metrics.AddFetched(st.Fetched)

	if len(fresh) > 0 {
		if err := s.storage.MergeAppend(ctx, fresh); err != nil {
			s.logger.Error("Error while appending orders to store",
				zap.Int("count", len(fresh)),
				zap.Error(err),
			)
			st.Duration = time.Since(t0)
			return st, fmt.Errorf("merge append: %w", err)
		}
		st.Stored = len(fresh)
		s.metrics.AddStored(st.Stored)
		s.notify(ctx, fresh)
	}

	st.Duration = time.Since(t0)
	s.logger.Info("Ingestion run finished",
		zap.Time("window_start", w.Start),
		zap.Time("window_end", w.End),
		zap.Int("fetched", st.Fetched),
		zap.Int("known", st.Known),
		zap.Int("matched", st.Matched),
		zap.Int("stored", st.Stored),
		zap.Duration("took", st.Duration),
	)

	if fetchErr != nil {
		return st, fmt.Errorf("fetch orders: %w", fetchErr)
	}
	return st, nil
}

func (s *Service) record(o kaspi.Order, m domain.Match) domain.OrderRecord {
	name := m.Name
	if name == "" {
		name = domain.UnnamedProduct
	}
	return domain.OrderRecord{
		OrderCode:    o.Code,
		Store:        s.cfg.Name,
		ProductName:  name,
		Article:      m.Code,
		CustomerName: o.CustomerName,
		Phone:        phone.Repair(o.CustomerPhone),
		Status:       domain.Status(s.cfg.DefaultStatus),
	}
}

// notify hands stored records to the listeners. Their failures never undo
// the store write.
func (s *Service) notify(ctx context.Context, records []domain.OrderRecord) {
	for _, l := range s.listeners {
		for _, rec := range records {
			if err := l.OrderStored(ctx, rec); err != nil {
				s.logger.Warn("Listener failed",
					zap.String("order_code", rec.OrderCode),
					zap.Error(err),
				)
			}
		}
	}
}
