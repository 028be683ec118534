package search

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/fitroom/internal/domain"
	"github.com/kailas-cloud/fitroom/internal/domain/product"
)

// --- Mocks ---

type mockUpstream struct {
	body      []byte
	err       error
	calls     int
	lastQuery string
}

func (m *mockUpstream) Search(_ context.Context, query string) ([]byte, error) {
	m.calls++
	m.lastQuery = query
	return m.body, m.err
}

func jsonBody(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func records(prefix string, n int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range n {
		out[i] = map[string]any{"asin": fmt.Sprintf("%s%d", prefix, i), "name": fmt.Sprintf("%s item %d", prefix, i)}
	}
	return out
}

// --- Tests ---

func TestSearch_BlankQuery(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n  "} {
		up := &mockUpstream{}
		svc := New(up, true)

		_, err := svc.Search(context.Background(), q)
		assert.True(t, errors.Is(err, domain.ErrInvalidQuery), "query %q: %v", q, err)
		assert.Zero(t, up.calls, "no outbound call for query %q", q)
	}
}

func TestSearch_MissingCredential(t *testing.T) {
	up := &mockUpstream{}
	svc := New(up, false)

	_, err := svc.Search(context.Background(), "red dress")
	assert.True(t, errors.Is(err, domain.ErrMissingCredential))
	assert.Zero(t, up.calls)
}

func TestSearch_InvalidQueryCheckedBeforeCredential(t *testing.T) {
	svc := New(&mockUpstream{}, false)
	_, err := svc.Search(context.Background(), "  ")
	assert.True(t, errors.Is(err, domain.ErrInvalidQuery))
}

func TestSearch_TrimsQuery(t *testing.T) {
	up := &mockUpstream{body: []byte(`{"results":[]}`)}
	svc := New(up, true)

	_, err := svc.Search(context.Background(), "  red dress  ")
	require.NoError(t, err)
	assert.Equal(t, "red dress", up.lastQuery)
	assert.Equal(t, 1, up.calls)
}

func TestSearch_UpstreamError(t *testing.T) {
	up := &mockUpstream{err: &domain.UpstreamError{Upstream: "scraperapi", Status: 403, Body: "forbidden"}}
	svc := New(up, true)

	_, err := svc.Search(context.Background(), "shirt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))

	var ue *domain.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 403, ue.Status)
	assert.Equal(t, "forbidden", ue.Body)
}

func TestSearch_MalformedPayload(t *testing.T) {
	svc := New(&mockUpstream{body: []byte("<html>oops</html>")}, true)

	_, err := svc.Search(context.Background(), "shirt")
	assert.True(t, errors.Is(err, domain.ErrUnexpected), "got %v", err)
}

func TestSearch_RedDressScenario(t *testing.T) {
	up := &mockUpstream{body: []byte(`{"results":[{"asin":"A1","name":"Red Dress","price":19.99}]}`)}
	svc := New(up, true)

	page, err := svc.Search(context.Background(), "red dress")
	require.NoError(t, err)

	assert.Equal(t, 1, page.CandidateCount())
	require.Len(t, page.Items(), 1)

	it := page.Items()[0]
	assert.Equal(t, "A1", it.ExternalID())
	assert.Equal(t, "Red Dress", it.Title())
	amount, ok := it.Price().Amount()
	assert.True(t, ok)
	assert.Equal(t, 19.99, amount)
	assert.Empty(t, it.ImageURL())
	assert.Empty(t, it.ProductURL())
	_, hasRating := it.Rating()
	assert.False(t, hasRating)
}

func TestSearch_TruncatesToTenInOrder(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 37} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			body := jsonBody(t, map[string]any{"results": records("R", n), "ads": records("AD", 3)})
			svc := New(&mockUpstream{body: body}, true)

			page, err := svc.Search(context.Background(), "q")
			require.NoError(t, err)

			if n == 0 {
				// empty results fall back to ads
				assert.Equal(t, 3, page.CandidateCount())
				return
			}
			assert.Equal(t, n, page.CandidateCount())
			require.Len(t, page.Items(), min(n, product.MaxItems))
			for i, it := range page.Items() {
				assert.Equal(t, fmt.Sprintf("R%d", i), it.ExternalID())
			}
		})
	}
}

func TestSearch_ResultsBeatLargerAds(t *testing.T) {
	body := jsonBody(t, map[string]any{"results": records("R", 2), "ads": records("AD", 20)})
	svc := New(&mockUpstream{body: body}, true)

	page, err := svc.Search(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, 2, page.CandidateCount())
	for _, it := range page.Items() {
		assert.Contains(t, it.ExternalID(), "R")
		assert.NotContains(t, it.ExternalID(), "AD")
	}
}

func TestSearch_EmptyResultsFallBackToAds(t *testing.T) {
	body := []byte(`{"results":[],"ads":[{"asin":"AD1","title":"Sponsored Shirt","price_string":"₹499"}]}`)
	svc := New(&mockUpstream{body: body}, true)

	page, err := svc.Search(context.Background(), "shirt")
	require.NoError(t, err)

	require.Len(t, page.Items(), 1)
	it := page.Items()[0]
	assert.Equal(t, "AD1", it.ExternalID())
	assert.Equal(t, "Sponsored Shirt", it.Title())
	display, ok := it.Price().Text()
	assert.True(t, ok)
	assert.Equal(t, "₹499", display)
}

func TestSearch_NoCandidateLists(t *testing.T) {
	tests := map[string]string{
		"empty object":        `{}`,
		"results not array":   `{"results":{"asin":"A1"}}`,
		"both absent or null": `{"results":null,"ads":null}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			svc := New(&mockUpstream{body: []byte(body)}, true)
			page, err := svc.Search(context.Background(), "q")
			require.NoError(t, err)
			assert.Empty(t, page.Items())
			assert.Zero(t, page.CandidateCount())
		})
	}
}

func TestSearch_HealthCheck(t *testing.T) {
	assert.NoError(t, New(&mockUpstream{}, true).HealthCheck(context.Background()))
	assert.True(t, errors.Is(New(&mockUpstream{}, false).HealthCheck(context.Background()), domain.ErrMissingCredential))
	assert.False(t, New(&mockUpstream{}, false).CredentialConfigured())
}
