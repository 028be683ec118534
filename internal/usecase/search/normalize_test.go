package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/fitroom/internal/domain/product"
)

func TestNormalizeItem_TitleFallback(t *testing.T) {
	tests := []struct {
		record string
		want   string
	}{
		{`{"name":"Name","title":"Title"}`, "Name"},
		{`{"title":"Title"}`, "Title"},
		{`{"name":"","title":"Title"}`, "Title"},
		{`{"name":null,"title":"Title"}`, "Title"},
		{`{"name":42,"title":"Title"}`, "Title"},
		{`{}`, ""},
	}

	for _, tc := range tests {
		it := normalizeItem(gjson.Parse(tc.record))
		assert.Equal(t, tc.want, it.Title(), "record %s", tc.record)
	}
}

func TestNormalizeItem_PriceFallback(t *testing.T) {
	tests := []struct {
		record string
		kind   product.PriceKind
		value  any
	}{
		{`{"price":19.99,"price_string":"$19.99"}`, product.PriceNumeric, 19.99},
		{`{"price":0,"price_string":"free"}`, product.PriceNumeric, 0.0},
		{`{"price":"₹499 - ₹999","price_string":"ignored"}`, product.PriceDisplay, "₹499 - ₹999"},
		{`{"price":"","price_string":"$5"}`, product.PriceDisplay, ""},
		{`{"price":null,"price_string":"$5"}`, product.PriceDisplay, "$5"},
		{`{"price_string":"$5"}`, product.PriceDisplay, "$5"},
		{`{"price_string":""}`, product.PriceNone, nil},
		{`{}`, product.PriceNone, nil},
	}

	for _, tc := range tests {
		it := normalizeItem(gjson.Parse(tc.record))
		p := it.Price()
		assert.Equal(t, tc.kind, p.Kind(), "record %s", tc.record)
		assert.Equal(t, tc.value, p.Value(), "record %s", tc.record)
	}
}

func TestNormalizeItem_CanonicalFields(t *testing.T) {
	rec := gjson.Parse(`{
		"asin": "B0TEST",
		"name": "Linen Shirt",
		"image": "https://m.media/img.jpg",
		"url": "https://amazon.in/dp/B0TEST",
		"stars": 4.2,
		"total_reviews": 1200,
		"is_prime": true
	}`)

	it := normalizeItem(rec)
	assert.Equal(t, "B0TEST", it.ExternalID())
	assert.Equal(t, "https://m.media/img.jpg", it.ImageURL())
	assert.Equal(t, "https://amazon.in/dp/B0TEST", it.ProductURL())
	stars, ok := it.Rating()
	assert.True(t, ok)
	assert.Equal(t, 4.2, stars)
}

func TestNormalizeItem_ZeroStarsIsPresent(t *testing.T) {
	zero := normalizeItem(gjson.Parse(`{"stars":0}`))
	stars, ok := zero.Rating()
	assert.True(t, ok)
	assert.Zero(t, stars)

	str := normalizeItem(gjson.Parse(`{"stars":"4.5 out of 5"}`))
	_, ok = str.Rating()
	assert.False(t, ok)
}

func TestNormalizeItem_NonObjectRecord(t *testing.T) {
	it := normalizeItem(gjson.Parse(`null`))
	assert.Empty(t, it.ExternalID())
	assert.Equal(t, product.PriceNone, it.Price().Kind())
}

func TestCandidates_Source(t *testing.T) {
	tests := []struct {
		body   string
		source string
		count  int
	}{
		{`{"results":[{}],"ads":[{},{}]}`, sourceResults, 1},
		{`{"results":[],"ads":[{},{}]}`, sourceAds, 2},
		{`{"ads":[]}`, sourceAds, 0},
		{`{"results":"n/a","ads":"n/a"}`, sourceNone, 0},
	}
	for _, tc := range tests {
		recs, source := candidates([]byte(tc.body))
		assert.Equal(t, tc.source, source, "body %s", tc.body)
		assert.Len(t, recs, tc.count, "body %s", tc.body)
	}
}
