// Package gemini calls the Gemini generateContent endpoint for image editing.
package gemini

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fitroom/internal/domain"
	"github.com/kailas-cloud/fitroom/internal/domain/composition"
	"github.com/kailas-cloud/fitroom/internal/metrics"
)

const upstreamName = "gemini"

// Client sends one generateContent request per call. It never retries.
type Client struct {
	http   *resty.Client
	path   string
	model  string
	logger *zap.Logger
}

// Config holds the generative provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	Model      string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// NewClient creates a Gemini client. It fails when the endpoint or model is unusable.
func NewClient(cfg *Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse generative base url")
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, errors.Newf("generative base url %q must be an absolute http(s) url", cfg.BaseURL)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("generative model is not set")
	}
	version := cfg.APIVersion
	if version == "" {
		version = "v1beta"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:   rc,
		path:   "/" + version + "/models/" + url.PathEscape(model) + ":generateContent",
		model:  model,
		logger: logger.With(zap.String("model", model)),
	}, nil
}

// Generate implements compose.Generator. It returns the parts of the first candidate,
// or none when the model produced no candidate.
func (c *Client) Generate(ctx context.Context, parts []composition.Part) ([]composition.Part, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: toWire(parts)}},
	}

	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.path)

	metrics.UpstreamRequestDuration.WithLabelValues(upstreamName).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(upstreamName, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(upstreamName, "transport").Inc()
		msg := transportMessage(err)
		c.logger.Warn("generative upstream unreachable", zap.String("error", msg))
		return nil, &domain.UpstreamError{Upstream: upstreamName, Message: msg}
	}

	status := resp.StatusCode()
	metrics.UpstreamRequestsTotal.WithLabelValues(upstreamName, strconv.Itoa(status)).Inc()

	if !resp.IsSuccess() {
		metrics.UpstreamErrorsTotal.WithLabelValues(upstreamName, "status").Inc()
		c.logger.Warn("generative upstream returned error status", zap.Int("status", status))
		return nil, parseAPIError(status, resp.Body())
	}

	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(upstreamName, "decode").Inc()
		return nil, errors.Wrap(err, "decode generateContent response")
	}

	if len(out.Candidates) == 0 {
		reason := ""
		if out.PromptFeedback != nil {
			reason = out.PromptFeedback.BlockReason
		}
		c.logger.Info("model returned no candidates", zap.String("block_reason", reason))
		return nil, nil
	}

	first := out.Candidates[0]
	c.logger.Debug("model responded",
		zap.String("finish_reason", first.FinishReason),
		zap.Int("parts", len(first.Content.Parts)),
		zap.Duration("took", time.Since(start)),
	)
	return fromWire(first.Content.Parts), nil
}

// parseAPIError extracts the human-readable message from a Google API error body.
func parseAPIError(status int, body []byte) error {
	ue := &domain.UpstreamError{Upstream: upstreamName, Status: status, Body: string(body)}
	if msg := gjson.GetBytes(body, "error.message"); msg.Type == gjson.String && msg.Str != "" {
		ue.Message = msg.Str
	} else {
		ue.Message = strings.TrimSpace(string(body))
	}
	return ue
}

func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err.Error()
	}
	return err.Error()
}
