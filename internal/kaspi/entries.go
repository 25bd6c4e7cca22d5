package kaspi

import (
	"context"
	"errors"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/cache"
	"github.com/TemirB/kaspi-feedback/internal/domain"
	"github.com/TemirB/kaspi-feedback/internal/observability"
)

// Resolver turns an order's line items into (name, code) pairs, looking
// products up through a per-run cache.
type Resolver struct {
	client  *Client
	cache   *cache.Cache[gjson.Result]
	metrics observability.Metrics
	logger  *zap.Logger
}

func NewResolver(client *Client, c *cache.Cache[gjson.Result], metrics observability.Metrics, logger *zap.Logger) *Resolver {
	return &Resolver{
		client:  client,
		cache:   c,
		metrics: metrics,
		logger:  logger,
	}
}

// Reset drops every remembered product. Called once per ingestion run.
func (r *Resolver) Reset() {
	r.cache.Purge()
}

// Entries returns one pair per line item of the order. A failed entries
// request yields no pairs; a failed product lookup degrades to the entry's
// own fields.
func (r *Resolver) Entries(ctx context.Context, orderID string) []domain.Entry {
	u := r.client.endpoint("orders", orderID, "entries")
	doc, err := r.client.get(ctx, u.String())
	if err != nil {
		r.logger.Warn("fetch entries failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil
	}

	items := doc.Get("data").Array()
	out := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		attrs := item.Get("attributes")
		prod := r.product(ctx, item.Get("relationships.product"))

		name := firstOf(prod, productNameChain)
		if name == "" {
			name = firstOf(attrs, entryNameChain)
		}
		if name == "" {
			name = domain.UnnamedProduct
		}

		code := firstOf(prod, productCodeChain)
		if code == "" {
			code = firstOf(attrs, entryCodeChain)
		}

		out = append(out, domain.Entry{Name: name, Code: code})
	}
	return out
}

// product resolves a product relationship, preferring the related link over
// the typed id. It returns the product attributes or an absent result.
func (r *Resolver) product(ctx context.Context, rel gjson.Result) gjson.Result {
	link := rel.Get("links.related").String()
	typ := rel.Get("data.type").String()
	id := rel.Get("data.id").String()

	var key cache.Key
	switch {
	case link != "":
		key = cache.LinkKey(link)
	case typ != "" && id != "":
		key = cache.TypedKey(typ, id)
	default:
		return gjson.Result{}
	}

	if v, ok := r.cache.Get(key); ok {
		r.metrics.IncCacheHit()
		if v == nil {
			return gjson.Result{}
		}
		return *v
	}
	r.metrics.IncCacheMiss()

	var target string
	if link != "" {
		abs, err := r.client.resolve(link)
		if err != nil {
			r.logger.Warn("bad product link", zap.String("link", link), zap.Error(err))
			r.cache.Set(key, nil)
			return gjson.Result{}
		}
		target = abs
	} else {
		target = r.client.endpoint(typ, id).String()
	}

	doc, err := r.client.get(ctx, target)
	if err != nil {
		r.logger.Warn("fetch product failed",
			zap.String("key", string(key)),
			zap.Error(err),
		)
		// Only answers from the API are remembered; transport errors may pass.
		if errors.Is(err, ErrStatus) || errors.Is(err, ErrPayload) {
			r.cache.Set(key, nil)
		}
		return gjson.Result{}
	}

	attrs := productAttributes(doc)
	if !attrs.Exists() {
		r.cache.Set(key, nil)
		return attrs
	}
	r.cache.Set(key, &attrs)
	return attrs
}
