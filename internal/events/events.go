// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/domain"
)

const (
	TypeMatched = "order.matched"
	TypeSent    = "order.sent"
)

//go:generate mockgen -source=events.go -destination=events_mock_test.go -package=events

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Event is the message value. The key is the order code.
type Event struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	OccurredAt time.Time          `json:"occurred_at"`
	Order      domain.OrderRecord `json:"order"`
}

// TypeOf names the event for a record that was just written.
func TypeOf(rec domain.OrderRecord) string {
	if rec.Pending() {
		return TypeMatched
	}
	return TypeSent
}

// Publisher is a domain.Listener writing one Kafka message per stored record.
type Publisher struct {
	writer Writer
	clock  clock.Clock
	logger *zap.Logger
}

func NewPublisher(w Writer, clk clock.Clock, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer: w,
		clock:  clk,
		logger: logger,
	}
}

// NewWriter builds a kafka-go writer for cfg. Messages with the same order
// code land on the same partition.
func NewWriter(cfg config.Kafka) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: false,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func (p *Publisher) OrderStored(ctx context.Context, rec domain.OrderRecord) error {
	ev := Event{
		ID:         uuid.NewString(),
		Type:       TypeOf(rec),
		OccurredAt: p.clock.Now().UTC(),
		Order:      rec,
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(rec.OrderCode),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", ev.Type, err)
	}
	p.logger.Debug("Event published",
		zap.String("type", ev.Type),
		zap.String("order_code", rec.OrderCode),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
