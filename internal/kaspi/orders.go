package kaspi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/juju/clock"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/config"
)

// Order is the part of a source order the pipeline needs.
type Order struct {
	ID            string
	Code          string
	Status        string
	State         string
	CustomerName  string
	CustomerPhone string
}

// Window is the creation-time range of one fetch.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow ends at now shifted by the server offset and spans cfg.Hours back.
func NewWindow(now time.Time, cfg config.Window) Window {
	end := now.Add(time.Duration(cfg.OffsetHours) * time.Hour)
	return Window{
		Start: end.Add(-time.Duration(cfg.Hours) * time.Hour),
		End:   end,
	}
}

type ordersQuery struct {
	PageNumber  int    `url:"page[number]"`
	PageSize    int    `url:"page[size]"`
	CreatedFrom int64  `url:"filter[orders][creationDate][$ge]"`
	CreatedTo   int64  `url:"filter[orders][creationDate][$le]"`
	Status      string `url:"filter[orders][status]"`
	State       string `url:"filter[orders][state]"`
	Include     string `url:"include[orders],omitempty"`
}

// Fetcher pages through the orders endpoint over a trailing window.
type Fetcher struct {
	client *Client
	cfg    config.Window
	clock  clock.Clock
	logger *zap.Logger
}

func NewFetcher(client *Client, cfg config.Window, clk clock.Clock, logger *zap.Logger) *Fetcher {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &Fetcher{
		client: client,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

// Window returns the range a fetch started now would cover.
func (f *Fetcher) Window() Window {
	return NewWindow(f.clock.Now(), f.cfg)
}

func (f *Fetcher) pageURL(page int, w Window) (string, error) {
	v, err := query.Values(ordersQuery{
		PageNumber:  page,
		PageSize:    f.cfg.PageSize,
		CreatedFrom: w.Start.UnixMilli(),
		CreatedTo:   w.End.UnixMilli(),
		Status:      f.cfg.Status,
		State:       f.cfg.State,
		Include:     "user",
	})
	if err != nil {
		return "", err
	}
	u := f.client.endpoint("orders")
	u.RawQuery = v.Encode()
	return u.String(), nil
}

// Each calls fn for every order in w that carries the configured status and
// state, in response order. Pages are requested until one comes back short.
// An empty first page is retried once as page 1 since some accounts number
// pages from 1. Any page error stops the walk and is returned; orders already
// passed to fn stay processed.
func (f *Fetcher) Each(ctx context.Context, w Window, fn func(Order) error) error {
	page := 0
	for {
		u, err := f.pageURL(page, w)
		if err != nil {
			return fmt.Errorf("build orders query: %w", err)
		}
		doc, err := f.client.get(ctx, u)
		if err != nil {
			return fmt.Errorf("fetch orders page %d: %w", page, err)
		}

		data := doc.Get("data").Array()
		f.logger.Debug("orders page",
			zap.Int("page", page),
			zap.Int("count", len(data)),
		)

		if len(data) == 0 {
			if page == 0 {
				page = 1
				continue
			}
			return nil
		}

		for _, node := range data {
			o := parseOrder(node)
			if o.Status != f.cfg.Status || o.State != f.cfg.State {
				f.logger.Debug("skip order outside filter",
					zap.String("order_code", o.Code),
					zap.String("status", o.Status),
					zap.String("state", o.State),
				)
				continue
			}
			if err := fn(o); err != nil {
				return err
			}
		}

		if len(data) < f.cfg.PageSize {
			return nil
		}
		page++
	}
}

func parseOrder(node gjson.Result) Order {
	attrs := node.Get("attributes")
	return Order{
		ID:            node.Get("id").String(),
		Code:          attrs.Get("code").String(),
		Status:        attrs.Get("status").String(),
		State:         attrs.Get("state").String(),
		CustomerName:  attrs.Get("customer.name").String(),
		CustomerPhone: firstOf(attrs, customerPhoneChain),
	}
}
