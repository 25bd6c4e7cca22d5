package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/pkg/retry"
)

// DefaultAttempts is how many times one message is tried before giving up.
const DefaultAttempts = 3

var (
	ErrInvalidNumber     = errors.New("whatsapp: phone number is invalid")
	ErrComposeTimeout    = errors.New("whatsapp: compose box did not appear")
	ErrAttemptsExhausted = errors.New("whatsapp: delivery attempts exhausted")
)

//go:generate mockgen -source=whatsapp.go -destination=whatsapp_mock_test.go -package=whatsapp

// Driver is the browser surface of WhatsApp Web.
type Driver interface {
	// Open navigates to link and waits a bounded time for the chat list.
	Open(ctx context.Context, link string) error
	// InvalidNumber reports whether the page says the number is not on WhatsApp.
	InvalidNumber(ctx context.Context) (bool, error)
	// WaitCompose waits for the message box and focuses it. It returns
	// ErrComposeTimeout when the box never became visible.
	WaitCompose(ctx context.Context) error
	ComposeText(ctx context.Context) (string, error)
	Insert(ctx context.Context, text string) error
	// ClickSend clicks the send control and reports whether one was found.
	ClickSend(ctx context.Context) (bool, error)
	PressEnter(ctx context.Context) error
}

// Sender delivers one prefilled message per call through a Driver.
type Sender struct {
	driver Driver
	base   string
	policy config.Retry
	clock  clock.Clock
	logger *zap.Logger

	pacing bool
	rnd    *rand.Rand
}

type Option func(*Sender)

// WithoutPacing removes the randomized human-like pauses.
func WithoutPacing() Option {
	return func(s *Sender) { s.pacing = false }
}

func NewSender(d Driver, cfg config.WhatsApp, policy config.Retry, clk clock.Clock, logger *zap.Logger, opts ...Option) *Sender {
	if policy.Attempts <= 0 {
		policy.Attempts = DefaultAttempts
	}
	s := &Sender{
		driver: d,
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		policy: policy,
		clock:  clk,
		logger: logger,
		pacing: true,
		rnd:    rand.New(rand.NewSource(clk.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DeepLink builds the send URL with the phone digits and the prefilled text.
func (s *Sender) DeepLink(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return fmt.Sprintf("%s/send?phone=%s&text=%s", s.base, digits, strings.ReplaceAll(url.QueryEscape(text), "+", "%20"))
}

// Deliver sends text to phone. It returns ErrInvalidNumber at once when the
// channel rejects the number, and ErrAttemptsExhausted when every attempt
// failed.
func (s *Sender) Deliver(ctx context.Context, phone, text string) error {
	link := s.DeepLink(phone, text)

	err := retry.Do(ctx, s.clock, s.policy, func(attempt int) error {
		err := s.attempt(ctx, link, text)
		if err != nil && !errors.Is(err, ErrInvalidNumber) {
			s.logger.Warn("delivery attempt failed",
				zap.String("phone", phone),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
	switch {
	case err == nil:
		s.logger.Info("message sent", zap.String("phone", phone))
		s.pause(ctx, 2*time.Second, 4*time.Second)
		return nil
	case errors.Is(err, ErrInvalidNumber):
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("%w: %w", ErrAttemptsExhausted, err)
	}
}

func (s *Sender) attempt(ctx context.Context, link, text string) error {
	if err := s.driver.Open(ctx, link); err != nil {
		return fmt.Errorf("open chat: %w", err)
	}

	invalid, err := s.driver.InvalidNumber(ctx)
	if err != nil {
		s.logger.Debug("invalid number check failed", zap.Error(err))
	}
	if invalid {
		return retry.Permanent(ErrInvalidNumber)
	}

	if err := s.driver.WaitCompose(ctx); err != nil {
		return err
	}
	s.pause(ctx, 800*time.Millisecond, 1800*time.Millisecond)

	current, err := s.driver.ComposeText(ctx)
	if err != nil || strings.TrimSpace(current) == "" {
		if err := s.driver.Insert(ctx, text); err != nil {
			s.logger.Warn("insert text failed", zap.Error(err))
		}
	}
	s.pause(ctx, 800*time.Millisecond, 1800*time.Millisecond)

	clicked, err := s.driver.ClickSend(ctx)
	if err == nil && clicked {
		return nil
	}
	if err := s.driver.PressEnter(ctx); err != nil {
		return fmt.Errorf("press enter: %w", err)
	}
	return nil
}

// pause sleeps a random duration in [lo, hi] on the sender clock.
func (s *Sender) pause(ctx context.Context, lo, hi time.Duration) {
	if !s.pacing {
		return
	}
	d := lo + time.Duration(s.rnd.Int63n(int64(hi-lo)+1))
	select {
	case <-s.clock.After(d):
	case <-ctx.Done():
	}
}
