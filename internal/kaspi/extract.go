package kaspi

import (
	"github.com/tidwall/gjson"
)

// extractor reads one candidate value out of a payload node. An empty result
// means the candidate is absent and the next one should be tried.
type extractor func(gjson.Result) string

// field reads a dotted path and accepts only non-empty strings and non-zero
// numbers. Objects, arrays, booleans and null count as absent.
func field(path string) extractor {
	return func(node gjson.Result) string {
		v := node.Get(path)
		switch v.Type {
		case gjson.String:
			return v.Str
		case gjson.Number:
			if v.Num == 0 {
				return ""
			}
			return v.Raw
		default:
			return ""
		}
	}
}

// firstOf runs the chain in order and returns the first non-empty value.
func firstOf(node gjson.Result, chain []extractor) string {
	if !node.Exists() {
		return ""
	}
	for _, ex := range chain {
		if v := ex(node); v != "" {
			return v
		}
	}
	return ""
}

var (
	productNameChain = []extractor{
		field("name"),
		field("title"),
	}
	productCodeChain = []extractor{
		field("productCode"),
		field("code"),
		field("defaultSku.code"),
		field("sku"),
		field("shopSku"),
	}

	entryNameChain = []extractor{
		field("category.title"),
	}
	entryCodeChain = []extractor{
		field("productCode"),
		field("shopSku"),
		field("sku"),
	}

	customerPhoneChain = []extractor{
		field("customer.cellPhone"),
		field("customer.phone"),
	}
)

// productAttributes unwraps a product document. The API answers either
// {"data": {...}} or the bare resource; attributes may sit under
// "attributes" or directly on the resource.
func productAttributes(doc gjson.Result) gjson.Result {
	prod := doc
	if d := doc.Get("data"); d.Exists() {
		prod = d
	}
	if !prod.IsObject() {
		return gjson.Result{}
	}
	if attrs := prod.Get("attributes"); attrs.Exists() {
		return attrs
	}
	return prod
}
