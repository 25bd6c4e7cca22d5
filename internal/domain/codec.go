package domain

import (
	"bytes"
	"encoding/json"
	"sort"
)

// recordFields drops the methods so the known fields encode the default way.
type recordFields OrderRecord

func (o *OrderRecord) field(key string) *string {
	switch key {
	case "order_code":
		return &o.OrderCode
	case "store":
		return &o.Store
	case "product_name":
		return &o.ProductName
	case "article":
		return &o.Article
	case "name":
		return &o.CustomerName
	case "phone":
		return &o.Phone
	case "status":
		return (*string)(&o.Status)
	case "article_suffix":
		return &o.ArticleSuffix
	case "product_code_suffix":
		return &o.ProductCodeSuffix
	}
	return nil
}

// UnmarshalJSON reads a store element loosely: scalars of any kind fill the
// string fields, unknown keys go to Extra, and anything else keeps the
// element verbatim in Raw.
func (o *OrderRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		*o = OrderRecord{Raw: append(json.RawMessage(nil), data...)}
		return nil
	}

	var r OrderRecord
	opaque := false
	for k, v := range fields {
		dst := r.field(k)
		if dst == nil {
			if r.Extra == nil {
				r.Extra = make(map[string]json.RawMessage)
			}
			r.Extra[k] = v
			continue
		}
		s, ok := looseString(v)
		if !ok {
			opaque = true
			continue
		}
		*dst = s
	}
	if opaque {
		r.Raw = append(json.RawMessage(nil), data...)
	}
	*o = r
	return nil
}

func (o OrderRecord) MarshalJSON() ([]byte, error) {
	if o.Raw != nil {
		return o.Raw, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(recordFields(o)); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")

	keys := make([]string, 0, len(o.Extra))
	for k := range o.Extra {
		if o.field(k) == nil {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return out, nil
	}
	sort.Strings(keys)

	out = out[:len(out)-1]
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		out = append(out, ',')
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, o.Extra[k]...)
	}
	return append(out, '}'), nil
}

// looseString accepts a string, a number, a bool or null.
func looseString(v json.RawMessage) (string, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "", false
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		return "", false
	}
	if string(v) == "null" {
		return "", true
	}
	return string(v), true
}
