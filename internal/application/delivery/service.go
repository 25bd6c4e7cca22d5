package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/domain"
	"github.com/TemirB/kaspi-feedback/internal/observability"
	"github.com/TemirB/kaspi-feedback/internal/phone"
	"github.com/TemirB/kaspi-feedback/internal/whatsapp"
)

//go:generate mockgen -source=service.go -destination=service_mock_test.go -package=delivery
//go:generate mockgen -destination=listener_mock_test.go -package=delivery github.com/TemirB/kaspi-feedback/internal/domain Listener

type Storage interface {
	Load() []domain.OrderRecord
	Update(ctx context.Context, fn func([]domain.OrderRecord) ([]domain.OrderRecord, bool)) error
}

type Channel interface {
	Deliver(ctx context.Context, phone, text string) error
}

type Composer interface {
	Compose(o domain.OrderRecord) string
}

// Stats describes one delivery pass.
type Stats struct {
	Pending  int
	Skipped  int
	Failed   int
	Sent     int
	Duration time.Duration
}

// Service scans the store for pending orders and sends each one a review
// request. Successful sends flip the record to sent in one batched write.
type Service struct {
	storage   Storage
	channel   Channel
	composer  Composer
	listeners []domain.Listener
	logger    *zap.Logger
	metrics   observability.Metrics
}

func NewService(
	storage Storage,
	channel Channel,
	composer Composer,
	logger *zap.Logger,
	metrics observability.Metrics,
	listeners ...domain.Listener,
) *Service {
	return &Service{
		storage:   storage,
		channel:   channel,
		composer:  composer,
		listeners: listeners,
		logger:    logger,
		metrics:   metrics,
	}
}

// Process runs one pass. Stats.Sent is the number of records moved to sent.
func (s *Service) Process(ctx context.Context) (Stats, error) {
	var st Stats
	t0 := time.Now()

	delivered := make(map[string]struct{})
	for _, rec := range s.storage.Load() {
		if !rec.Pending() {
			continue
		}
		if _, ok := delivered[rec.OrderCode]; ok {
			continue
		}
		st.Pending++

		to, ok := phone.Normalize(rec.Phone)
		if !ok {
			st.Skipped++
			s.metrics.IncSkippedPhone()
			s.logger.Debug("Skipping order with unusable phone",
				zap.String("order_code", rec.OrderCode),
				zap.String("phone", rec.Phone),
			)
			continue
		}

		err := s.channel.Deliver(ctx, to, s.composer.Compose(rec))
		if err == nil {
			delivered[rec.OrderCode] = struct{}{}
			s.metrics.IncDelivered()
			continue
		}
		if ctx.Err() != nil {
			break
		}

		st.Failed++
		s.metrics.IncDeliveryFailure()
		if errors.Is(err, whatsapp.ErrInvalidNumber) {
			s.logger.Warn("Number is not on WhatsApp",
				zap.String("order_code", rec.OrderCode),
				zap.String("phone", to),
			)
			continue
		}
		s.logger.Warn("Delivery failed, order stays pending",
			zap.String("order_code", rec.OrderCode),
			zap.String("phone", to),
			zap.Error(err),
		)
	}

	if len(delivered) == 0 {
		st.Duration = time.Since(t0)
		return st, ctx.Err()
	}

	// Messages already went out; record them even if the pass was canceled.
	wctx := context.WithoutCancel(ctx)
	sent, err := s.markSent(wctx, delivered)
	st.Duration = time.Since(t0)
	if err != nil {
		s.logger.Error("Error while saving sent statuses",
			zap.Int("delivered", len(delivered)),
			zap.Error(err),
		)
		return st, fmt.Errorf("save sent statuses: %w", err)
	}
	st.Sent = len(sent)

	s.logger.Info("Delivery pass finished",
		zap.Int("pending", st.Pending),
		zap.Int("sent", st.Sent),
		zap.Int("skipped", st.Skipped),
		zap.Int("failed", st.Failed),
		zap.Duration("took", st.Duration),
	)
	s.notify(wctx, sent)
	return st, nil
}

// markSent applies the sent transitions onto a fresh read of the store so
// records appended meanwhile by ingestion are kept. Records already final are
// left untouched.
func (s *Service) markSent(ctx context.Context, delivered map[string]struct{}) ([]domain.OrderRecord, error) {
	var sent []domain.OrderRecord
	err := s.storage.Update(ctx, func(records []domain.OrderRecord) ([]domain.OrderRecord, bool) {
		sent = sent[:0]
		for i := range records {
			if _, ok := delivered[records[i].OrderCode]; !ok || !records[i].Pending() {
				continue
			}
			records[i].Status = domain.StatusSent
			sent = append(sent, records[i])
		}
		return records, len(sent) > 0
	})
	if err != nil {
		return nil, err
	}
	return sent, nil
}

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
