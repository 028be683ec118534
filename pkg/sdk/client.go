package fitroom

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fitroom/internal/domain/composition"
	"github.com/kailas-cloud/fitroom/internal/domain/product"
	"github.com/kailas-cloud/fitroom/internal/transport/gemini"
	"github.com/kailas-cloud/fitroom/internal/transport/scraperapi"
	composeuc "github.com/kailas-cloud/fitroom/internal/usecase/compose"
	healthuc "github.com/kailas-cloud/fitroom/internal/usecase/health"
	searchuc "github.com/kailas-cloud/fitroom/internal/usecase/search"
)

// Upstream defaults.
const (
	DefaultSearchBaseURL     = "https://api.scraperapi.com"
	DefaultGenerativeBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel             = "gemini-2.5-flash-image-preview"
)

// Internal interfaces, replaced by mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, query string) (product.Page, error)
}

type composeUseCase interface {
	Compose(ctx context.Context, req composition.Request) (composition.Result, error)
}

// Client is the fitroom SDK entry point. It is safe for concurrent use.
type Client struct {
	searchSvc  searchUseCase
	composeSvc composeUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client. Missing API keys do not fail construction: the affected
// operation returns ErrMissingCredential instead.
func New(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs), nil
}

func wireClient(cfg *clientConfig, obs *observer) *Client {
	searchSvc := searchuc.New(scraperapi.NewClient(&scraperapi.Config{
		APIKey:  cfg.searchAPIKey,
		BaseURL: cfg.searchBaseURL,
		Country: cfg.country,
		TLD:     cfg.tld,
		Timeout: cfg.searchTimeout,
		Logger:  zap.NewNop(),
	}), cfg.searchAPIKey != "")

	gen, genErr := gemini.NewClient(&gemini.Config{
		APIKey:     cfg.generativeAPIKey,
		BaseURL:    cfg.generativeBaseURL,
		APIVersion: cfg.apiVersion,
		Model:      cfg.model,
		Timeout:    cfg.generativeTimeout,
		Logger:     zap.NewNop(),
	})
	// nil interface, not a typed nil *gemini.Client
	var generator composeuc.Generator
	if genErr == nil {
		generator = gen
	} else if obs.logger != nil {
		obs.logger.Warn("generative client unavailable", "error", genErr)
	}
	composeSvc := composeuc.New(generator, cfg.generativeAPIKey != "").
		WithClientError(genErr).
		WithInstruction(cfg.instruction)

	healthSvc := healthuc.New(searchSvc, composeSvc).
		WithCheck("search", searchSvc).
		WithCheck("compose", composeSvc)

	return &Client{
		searchSvc:  searchSvc,
		composeSvc: composeSvc,
		healthSvc:  healthSvc,
		obs:        obs,
	}
}

// Search returns up to ten normalized products for query.
func (c *Client) Search(ctx context.Context, query string) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	page, err := c.searchSvc.Search(ctx, query)
	if err != nil {
		return SearchResult{}, errors.Wrap(err, "search")
	}
	return page.Listing(), nil
}

// TryOn dresses the person in subject with the garment in reference. Both images are
// base64 strings, optionally prefixed with a data:image/...;base64, header.
func (c *Client) TryOn(ctx context.Context, subject, reference string) (res TryOnResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("try_on", start, err) }()

	out, err := c.composeSvc.Compose(ctx, composition.NewRequest(subject, reference))
	if err != nil {
		return TryOnResult{}, errors.Wrap(err, "try on")
	}
	return tryOnFromResult(out), nil
}

// TryOnBytes is TryOn for raw image bytes.
func (c *Client) TryOnBytes(ctx context.Context, subject, reference []byte) (TryOnResult, error) {
	return c.TryOn(ctx,
		base64.StdEncoding.EncodeToString(subject),
		base64.StdEncoding.EncodeToString(reference),
	)
}
