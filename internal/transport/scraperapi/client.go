// Package scraperapi calls the ScraperAPI structured Amazon search endpoint.
package scraperapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fitroom/internal/domain"
	"github.com/kailas-cloud/fitroom/internal/metrics"
)

const (
	upstreamName = "scraperapi"
	searchPath   = "/structured/amazon/search"
)

// Client fetches raw search payloads. It makes exactly one request per call.
type Client struct {
	http    *resty.Client
	apiKey  string
	country string
	tld     string
	logger  *zap.Logger
}

// Config holds the search provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Country string
	TLD     string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a ScraperAPI client.
func NewClient(cfg *Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:    rc,
		apiKey:  cfg.APIKey,
		country: cfg.Country,
		tld:     cfg.TLD,
		logger:  logger,
	}
}

// Search implements search.Upstream. Any non-2xx status is returned as
// *domain.UpstreamError carrying the upstream body as text.
func (c *Client) Search(ctx context.Context, query string) ([]byte, error) {
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key": c.apiKey,
			"query":   query,
			"country": c.country,
			"tld":     c.tld,
		}).
		Get(searchPath)

	metrics.UpstreamRequestDuration.WithLabelValues(upstreamName).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(upstreamName, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(upstreamName, "transport").Inc()
		msg := transportMessage(err)
		c.logger.Warn("search upstream unreachable", zap.String("error", msg))
		return nil, &domain.UpstreamError{Upstream: upstreamName, Message: msg}
	}

	status := resp.StatusCode()
	metrics.UpstreamRequestsTotal.WithLabelValues(upstreamName, strconv.Itoa(status)).Inc()

	if !resp.IsSuccess() {
		metrics.UpstreamErrorsTotal.WithLabelValues(upstreamName, "status").Inc()
		c.logger.Warn("search upstream returned error status",
			zap.Int("status", status),
			zap.Int("body_bytes", len(resp.Body())),
		)
		return nil, &domain.UpstreamError{Upstream: upstreamName, Status: status, Body: string(resp.Body())}
	}

	return resp.Body(), nil
}

// transportMessage drops the request URL from transport errors: it carries the api key.
func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err.Error()
	}
	return err.Error()
}
