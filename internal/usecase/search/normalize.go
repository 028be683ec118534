package search

import (
	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/fitroom/internal/domain/product"
)

// Candidate list sources, in precedence order.
const (
	sourceResults = "results"
	sourceAds     = "ads"
	sourceNone    = "none"
)

// rule extracts one value from an upstream record, reporting whether it was present.
type rule[T any] func(rec gjson.Result) (T, bool)

// firstOf evaluates rules in order and returns the first present value.
func firstOf[T any](rec gjson.Result, rules []rule[T]) (T, bool) {
	for _, r := range rules {
		if v, ok := r(rec); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// text reads a non-empty string field.
func text(key string) rule[string] {
	return func(rec gjson.Result) (string, bool) {
		v := rec.Get(key)
		if v.Type != gjson.String || v.Str == "" {
			return "", false
		}
		return v.Str, true
	}
}

// anyText reads a string field, empty included.
func anyText(key string) rule[string] {
	return func(rec gjson.Result) (string, bool) {
		v := rec.Get(key)
		if v.Type != gjson.String {
			return "", false
		}
		return v.Str, true
	}
}

// number reads a numeric field.
func number(key string) rule[float64] {
	return func(rec gjson.Result) (float64, bool) {
		v := rec.Get(key)
		if v.Type != gjson.Number {
			return 0, false
		}
		return v.Num, true
	}
}

func numericPrice(key string) rule[product.Price] {
	n := number(key)
	return func(rec gjson.Result) (product.Price, bool) {
		v, ok := n(rec)
		if !ok {
			return product.Price{}, false
		}
		return product.Numeric(v), true
	}
}

func displayPrice(s rule[string]) rule[product.Price] {
	return func(rec gjson.Result) (product.Price, bool) {
		v, ok := s(rec)
		if !ok {
			return product.Price{}, false
		}
		return product.Display(v), true
	}
}

// Extraction rules per item field. Order is the contract: earlier rules win.
var (
	externalIDRules = []rule[string]{text("asin")}
	titleRules      = []rule[string]{text("name"), text("title")}
	imageURLRules   = []rule[string]{text("image")}
	productURLRules = []rule[string]{text("url")}
	ratingRules     = []rule[float64]{number("stars")}
	priceRules      = []rule[product.Price]{
		numericPrice("price"),
		// a present price string wins even when empty; price_string only when non-empty
		displayPrice(anyText("price")),
		displayPrice(text("price_string")),
	}
)

// candidates picks the record list: a non-empty "results" array always wins,
// otherwise "ads" if it is an array, otherwise nothing.
func candidates(body []byte) ([]gjson.Result, string) {
	if res := gjson.GetBytes(body, sourceResults); res.IsArray() {
		if arr := res.Array(); len(arr) > 0 {
			return arr, sourceResults
		}
	}
	if ads := gjson.GetBytes(body, sourceAds); ads.IsArray() {
		return ads.Array(), sourceAds
	}
	return nil, sourceNone
}

// normalizeItem applies the extraction rules to one record. Unknown fields are ignored.
func normalizeItem(rec gjson.Result) product.Item {
	f := product.Fields{}
	f.ExternalID, _ = firstOf(rec, externalIDRules)
	f.Title, _ = firstOf(rec, titleRules)
	f.ImageURL, _ = firstOf(rec, imageURLRules)
	f.ProductURL, _ = firstOf(rec, productURLRules)
	f.Price, _ = firstOf(rec, priceRules)
	if r, ok := firstOf(rec, ratingRules); ok {
		f.Rating = &r
	}
	return product.NewItem(f)
}

// normalize turns an upstream payload into a page of at most limit items.
// The caller must have checked that body is valid JSON.
func normalize(body []byte, limit int) (product.Page, string) {
	recs, source := candidates(body)

	n := min(len(recs), limit)
	items := make([]product.Item, n)
	for i := range n {
		items[i] = normalizeItem(recs[i])
	}
	return product.NewPage(items, len(recs)), source
}
