package fitroom

import (
	"encoding/base64"

	"github.com/cockroachdb/errors"

	"github.com/kailas-cloud/fitroom/internal/domain/composition"
	"github.com/kailas-cloud/fitroom/internal/domain/product"
)

// Product is one normalized search hit. Nil fields were absent upstream.
type Product = product.Record

// SearchResult holds up to ten products and the size of the upstream candidate list.
type SearchResult = product.Listing

// TryOnResult is the generated photo.
type TryOnResult struct {
	// DataURI is always data:image/png;base64,<payload>.
	DataURI string
	data    string
}

// Base64 returns the bare image payload.
func (r TryOnResult) Base64() string { return r.data }

// PNG decodes the image payload.
func (r TryOnResult) PNG() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(r.data)
	if err != nil {
		return nil, errors.Wrap(err, "fitroom: decode image")
	}
	return b, nil
}

func tryOnFromResult(r composition.Result) TryOnResult {
	return TryOnResult{DataURI: r.DataURI(), data: r.Image().Data()}
}
