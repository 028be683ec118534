package fitroom

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/fitroom/internal/domain/composition"
	"github.com/kailas-cloud/fitroom/internal/domain/image"
	"github.com/kailas-cloud/fitroom/internal/domain/product"
	healthuc "github.com/kailas-cloud/fitroom/internal/usecase/health"
)

func ptr[T any](v T) *T { return &v }

func TestSearch_ConvertsPage(t *testing.T) {
	rating := 4.5
	page := product.NewPage([]product.Item{
		product.NewItem(product.Fields{ExternalID: "A1", Title: "Red Dress", Price: product.Numeric(19.99)}),
		product.NewItem(product.Fields{ExternalID: "A2", Price: product.Display("₹499"), Rating: &rating}),
	}, 25)

	var gotQuery string
	c := &Client{searchSvc: &mockSearchUC{searchFn: func(_ context.Context, q string) (product.Page, error) {
		gotQuery = q
		return page, nil
	}}}

	res, err := c.Search(context.Background(), "dress")
	require.NoError(t, err)
	assert.Equal(t, "dress", gotQuery)
	assert.Equal(t, 25, res.RawCount)
	require.Len(t, res.Items, 2)

	assert.Equal(t, Product{ASIN: ptr("A1"), Title: ptr("Red Dress"), Price: 19.99}, res.Items[0])
	assert.Equal(t, Product{ASIN: ptr("A2"), Price: "₹499", Stars: ptr(4.5)}, res.Items[1])
}

func TestSearch_JSONShape(t *testing.T) {
	page := product.NewPage([]product.Item{
		product.NewItem(product.Fields{ExternalID: "A1", Title: "Red Dress", Price: product.Numeric(19.99)}),
	}, 1)
	c := &Client{searchSvc: &mockSearchUC{searchFn: func(context.Context, string) (product.Page, error) {
		return page, nil
	}}}

	res, err := c.Search(context.Background(), "red dress")
	require.NoError(t, err)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"asin":"A1","title":"Red Dress","image":null,"price":19.99,"stars":null,"url":null}],"rawCount":1}`, string(b))
}

func TestSearch_Error(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{searchFn: func(context.Context, string) (product.Page, error) {
		return product.Page{}, ErrInvalidQuery
	}}}

	_, err := c.Search(context.Background(), " ")
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestTryOn(t *testing.T) {
	var got composition.Request
	c := &Client{composeSvc: &mockComposeUC{composeFn: func(_ context.Context, req composition.Request) (composition.Result, error) {
		got = req
		return composition.NewResult(image.FromData("iVBORw0KGgo=")), nil
	}}}

	res, err := c.TryOnBytes(context.Background(), []byte("USER"), []byte("CLOTH"))
	require.NoError(t, err)

	assert.Equal(t, "VVNFUg==", got.Subject().Data())
	assert.Equal(t, "Q0xPVEg=", got.Reference().Data())
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", res.DataURI)
	assert.Equal(t, "iVBORw0KGgo=", res.Base64())

	png, err := res.PNG()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, png)
}

func TestTryOn_Error(t *testing.T) {
	c := &Client{composeSvc: &mockComposeUC{composeFn: func(context.Context, composition.Request) (composition.Result, error) {
		return composition.Result{}, ErrNoImageReturned
	}}}

	_, err := c.TryOn(context.Background(), "VVNFUg==", "Q0xPVEg=")
	assert.True(t, errors.Is(err, ErrNoImageReturned))
}

func TestHealth(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status:           healthuc.Degraded,
		Checks:           map[string]healthuc.CheckResult{"search": healthuc.CheckOK, "compose": healthuc.CheckError},
		SearchKeyPresent: true,
	}}}

	h := c.Health(context.Background())
	assert.Equal(t, "degraded", h.Status)
	assert.Equal(t, map[string]string{"search": "ok", "compose": "error"}, h.Checks)
	assert.True(t, h.SearchKeyPresent)
	assert.False(t, h.GenerativeKeyPresent)
}

// Полный путь через New: обе апстрим-зависимости подменены httptest-серверами.
func TestNew_EndToEnd(t *testing.T) {
	scraper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk", r.URL.Query().Get("api_key"))
		assert.Equal(t, "US", r.URL.Query().Get("country"))
		assert.Equal(t, "com", r.URL.Query().Get("tld"))
		_, _ = w.Write([]byte(`{"results":[{"asin":"B1","title":"Tee","price":"$9"}]}`))
	}))
	defer scraper.Close()

	genai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "gk", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"T1VU"}}]}}]}`))
	}))
	defer genai.Close()

	c, err := New(
		WithSearchAPIKey("sk"),
		WithLocale("US", "com"),
		WithGenerativeAPIKey("gk"),
		WithModel("test-model"),
		WithBaseURLs(scraper.URL, genai.URL),
		WithTimeouts(time.Second, time.Second),
	)
	require.NoError(t, err)

	res, err := c.Search(context.Background(), "tee")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "$9", res.Items[0].Price)

	out, err := c.TryOn(context.Background(), "data:image/png;base64,VVNFUg==", "Q0xPVEg=")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,T1VU", out.DataURI)

	h := c.Health(context.Background())
	assert.Equal(t, "ok", h.Status)
}

func TestNew_MissingKeys(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "shirt")
	assert.True(t, errors.Is(err, ErrMissingCredential))

	_, err = c.TryOn(context.Background(), "VVNFUg==", "Q0xPVEg=")
	assert.True(t, errors.Is(err, ErrMissingCredential))

	h := c.Health(context.Background())
	assert.Equal(t, "degraded", h.Status)
	assert.False(t, h.SearchKeyPresent)
	assert.False(t, h.GenerativeKeyPresent)
}

func TestNew_BadGenerativeURL(t *testing.T) {
	c, err := New(WithGenerativeAPIKey("gk"), WithBaseURLs("", "not a url"))
	require.NoError(t, err)

	_, err = c.TryOn(context.Background(), "VVNFUg==", "Q0xPVEg=")
	assert.True(t, errors.Is(err, ErrClientUnavailable))
}

func TestClientOptions(t *testing.T) {
	cfg := defaultClientConfig()
	assert.Equal(t, "IN", cfg.country)
	assert.Equal(t, "in", cfg.tld)
	assert.Equal(t, DefaultModel, cfg.model)

	WithLocale("", "co.uk").apply(cfg)
	assert.Equal(t, "IN", cfg.country)
	assert.Equal(t, "co.uk", cfg.tld)

	WithTimeouts(0, 5*time.Second).apply(cfg)
	assert.Equal(t, 30*time.Second, cfg.searchTimeout)
	assert.Equal(t, 5*time.Second, cfg.generativeTimeout)

	WithInstruction("swap the jacket").apply(cfg)
	assert.Equal(t, "swap the jacket", cfg.instruction)

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	assert.Same(t, logger, cfg.logger)

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	assert.Equal(t, prometheus.Registerer(reg), cfg.metricsReg)
}

func TestObserver_NilSafe(t *testing.T) {
	// nil observer should not panic.
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	require.NoError(t, err)

	obs.observe("search", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("search", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if f.GetName() == "fitroom_sdk_operations_total" {
			found = true
			assert.Len(t, f.GetMetric(), 2)
		}
	}
	assert.True(t, found, "fitroom_sdk_operations_total not found")
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := newObserver(nil, reg)
	require.NoError(t, err)

	// Второй клиент на том же реестре не должен падать.
	_, err = newObserver(nil, reg)
	assert.NoError(t, err)
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	require.NoError(t, err)
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}
