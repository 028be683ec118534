package fitroom

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	searchAPIKey  string
	searchBaseURL string
	country       string
	tld           string
	searchTimeout time.Duration

	generativeAPIKey  string
	generativeBaseURL string
	apiVersion        string
	model             string
	instruction       string
	generativeTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		searchBaseURL:     DefaultSearchBaseURL,
		country:           "IN",
		tld:               "in",
		searchTimeout:     30 * time.Second,
		generativeBaseURL: DefaultGenerativeBaseURL,
		apiVersion:        "v1beta",
		model:             DefaultModel,
		generativeTimeout: 90 * time.Second,
	}
}

// WithSearchAPIKey sets the ScraperAPI key. Without it Search fails with ErrMissingCredential.
func WithSearchAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchAPIKey = key
	})
}

// WithLocale sets the Amazon marketplace. Defaults: country "IN", tld "in".
func WithLocale(country, tld string) Option {
	return optionFunc(func(c *clientConfig) {
		if country != "" {
			c.country = country
		}
		if tld != "" {
			c.tld = tld
		}
	})
}

// WithGenerativeAPIKey sets the Gemini key. Without it TryOn fails with ErrMissingCredential.
func WithGenerativeAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.generativeAPIKey = key
	})
}

// WithModel selects the image model. Default: DefaultModel.
func WithModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.model = model
	})
}

// WithInstruction replaces the try-on prompt sent ahead of both images.
func WithInstruction(text string) Option {
	return optionFunc(func(c *clientConfig) {
		c.instruction = text
	})
}

// WithBaseURLs points the client at different upstream hosts, e.g. test servers.
// Empty values keep the defaults.
func WithBaseURLs(search, generative string) Option {
	return optionFunc(func(c *clientConfig) {
		if search != "" {
			c.searchBaseURL = search
		}
		if generative != "" {
			c.generativeBaseURL = generative
		}
	})
}

// WithTimeouts bounds each upstream call. Zero keeps the default (30s search, 90s generate).
func WithTimeouts(search, generative time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		if search > 0 {
			c.searchTimeout = search
		}
		if generative > 0 {
			c.generativeTimeout = generative
		}
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
