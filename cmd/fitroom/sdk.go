package main

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/kailas-cloud/fitroom/internal/config"
	fitroom "github.com/kailas-cloud/fitroom/pkg/sdk"
)

// newSDKClient builds an in-process client from the environment's config file.
// Diagnostics go to stderr so stdout stays machine-readable.
func newSDKClient(env string) (*fitroom.Client, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	level := slog.LevelWarn
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return fitroom.New(
		fitroom.WithSearchAPIKey(cfg.Search.APIKey),
		fitroom.WithLocale(cfg.Search.Country, cfg.Search.TLD),
		fitroom.WithGenerativeAPIKey(cfg.Generative.APIKey),
		fitroom.WithModel(cfg.Generative.Model),
		fitroom.WithBaseURLs(cfg.Search.BaseURL, cfg.Generative.BaseURL),
		fitroom.WithTimeouts(cfg.SearchTimeout(), cfg.GenerativeTimeout()),
		fitroom.WithLogger(logger),
	)
}
