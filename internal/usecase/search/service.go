package search

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/fitroom/internal/domain"
	"github.com/kailas-cloud/fitroom/internal/domain/product"
	"github.com/kailas-cloud/fitroom/internal/metrics"
)

// Service proxies product searches and normalizes the upstream payload.
type Service struct {
	upstream             Upstream
	credentialConfigured bool
}

// New creates a search service. credentialConfigured reports whether the upstream
// API key is set; without it every search fails with domain.ErrMissingCredential.
func New(upstream Upstream, credentialConfigured bool) *Service {
	return &Service{upstream: upstream, credentialConfigured: credentialConfigured}
}

// Search trims the query, calls the upstream once and returns at most product.MaxItems
// items in upstream order.
func (s *Service) Search(ctx context.Context, query string) (product.Page, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return product.Page{}, domain.ErrInvalidQuery
	}
	if !s.credentialConfigured {
		return product.Page{}, errors.Wrap(domain.ErrMissingCredential, "search api key")
	}

	body, err := s.upstream.Search(ctx, q)
	if err != nil {
		return product.Page{}, errors.Wrap(err, "search upstream")
	}

	if !gjson.ValidBytes(body) {
		metrics.UpstreamErrorsTotal.WithLabelValues("scraperapi", "decode").Inc()
		return product.Page{}, errors.Mark(
			errors.Newf("search upstream returned malformed JSON (%d bytes)", len(body)),
			domain.ErrUnexpected,
		)
	}

	page, source := normalize(body, product.MaxItems)
	metrics.SearchCandidates.WithLabelValues(source).Observe(float64(page.CandidateCount()))

	return page, nil
}

// CredentialConfigured reports whether the upstream API key is set.
func (s *Service) CredentialConfigured() bool { return s.credentialConfigured }

// HealthCheck fails when the service cannot serve searches.
func (s *Service) HealthCheck(_ context.Context) error {
	if !s.credentialConfigured {
		return domain.ErrMissingCredential
	}
	return nil
}
