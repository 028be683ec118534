package search

import "context"

// Upstream fetches the raw product-search payload for a query.
// A non-success upstream status must be returned as *domain.UpstreamError.
type Upstream interface {
	Search(ctx context.Context, query string) ([]byte, error)
}
