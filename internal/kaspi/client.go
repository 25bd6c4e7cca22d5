package kaspi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/pkg/breaker"
)

const (
	mediaType = "application/vnd.api+json"
	userAgent = "Mozilla/5.0"

	maxBody    = 8 << 20
	maxErrBody = 200
)

var (
	ErrStatus  = errors.New("unexpected response status")
	ErrPayload = errors.New("response is not valid json")
)

// StatusError is returned for any non-2xx answer of the shop API.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("kaspi: %s: status %d: %s", e.URL, e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// Client talks to the shop API with the token header, a request rate limit and
// a circuit breaker that opens after repeated transport or 5xx failures.
type Client struct {
	http    *http.Client
	base    *url.URL
	token   string
	limiter *rate.Limiter
	breaker *breaker.Breaker
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(cfg config.Kaspi, br *breaker.Breaker, logger *zap.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		base:    base,
		token:   cfg.Token,
		limiter: rate.NewLimiter(limit, 1),
		breaker: br,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// endpoint joins path segments onto the base URL.
func (c *Client) endpoint(segments ...string) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(segments, "/")
	return &u
}

// resolve turns a related link into an absolute URL. Relative links are
// taken against the base host.
func (c *Client) resolve(link string) (string, error) {
	ref, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	return c.base.ResolveReference(ref).String(), nil
}

// get fetches rawURL and returns the parsed JSON document.
func (c *Client) get(ctx context.Context, rawURL string) (gjson.Result, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return gjson.Result{}, fmt.Errorf("kaspi: %s: %w", rawURL, err)
		}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return gjson.Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("X-Auth-Token", c.token)
	req.Header.Set("Accept", mediaType+";charset=UTF-8")
	req.Header.Set("Content-Type", mediaType)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.failure()
		return gjson.Result{}, fmt.Errorf("kaspi: get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		c.failure()
		return gjson.Result{}, fmt.Errorf("kaspi: read %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode >= 500 {
			c.failure()
		} else {
			c.success()
		}
		snippet := string(body)
		if len(snippet) > maxErrBody {
			snippet = snippet[:maxErrBody]
		}
		return gjson.Result{}, &StatusError{URL: rawURL, Code: resp.StatusCode, Body: snippet}
	}
	c.success()

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("kaspi: %s: %w", rawURL, ErrPayload)
	}
	return gjson.ParseBytes(body), nil
}

func (c *Client) success() {
	if c.breaker != nil {
		c.breaker.Success()
	}
}

func (c *Client) failure() {
	if c.breaker != nil {
		c.breaker.Failure()
	}
}
