package domain

import (
	"context"
	"encoding/json"
	"strings"
)

type Status string

const (
	StatusNew  Status = "new"
	StatusSent Status = "sent"
)

// UnnamedProduct is stored when neither the product nor the entry carry a name.
const UnnamedProduct = "Атауы жоқ"

// OrderRecord is one matched order persisted in the merge store.
type OrderRecord struct {
	OrderCode    string `json:"order_code"`
	Store        string `json:"store"`
	ProductName  string `json:"product_name"`
	Article      string `json:"article"`
	CustomerName string `json:"name"`
	Phone        string `json:"phone"`
	Status       Status `json:"status"`

	// Legacy variant suffix fields, only present in hand-edited stores.
	ArticleSuffix     string `json:"article_suffix,omitempty"`
	ProductCodeSuffix string `json:"product_code_suffix,omitempty"`

	// Extra holds keys this version does not know; they are written back.
	Extra map[string]json.RawMessage `json:"-"`
	// Raw is set when a known field could not be read. The element is then
	// written back as read and never delivered.
	Raw json.RawMessage `json:"-"`
}

// Pending reports whether the record still waits for delivery. Only "new"
// is pending; any other value, including legacy localized ones, is final.
func (o OrderRecord) Pending() bool {
	return o.Raw == nil && strings.EqualFold(strings.TrimSpace(string(o.Status)), string(StatusNew))
}

// Entry is one resolved order line item.
type Entry struct {
	Name string
	Code string
}

// Match is the first line item of an order that hit the watch-list.
type Match struct {
	Name string
	Code string
}

// Listener observes records after they were durably written to the store.
type Listener interface {
	OrderStored(ctx context.Context, rec OrderRecord) error
}
