package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fitroom/internal/config"
	logpkg "github.com/kailas-cloud/fitroom/internal/logger"
	"github.com/kailas-cloud/fitroom/internal/metrics"
	chiTransport "github.com/kailas-cloud/fitroom/internal/transport/chi"
	"github.com/kailas-cloud/fitroom/internal/transport/gemini"
	"github.com/kailas-cloud/fitroom/internal/transport/scraperapi"
	composeuc "github.com/kailas-cloud/fitroom/internal/usecase/compose"
	healthuc "github.com/kailas-cloud/fitroom/internal/usecase/health"
	searchuc "github.com/kailas-cloud/fitroom/internal/usecase/search"
	"github.com/kailas-cloud/fitroom/internal/version"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.env)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	logger, err := logpkg.NewLogger(opts.env, cfg.Logging.Level)
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting fitroom API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", opts.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("country", cfg.Search.Country),
		zap.String("tld", cfg.Search.TLD),
		zap.String("model", cfg.Generative.Model),
		zap.Bool("search_key_present", cfg.Search.APIKey != ""),
		zap.Bool("generative_key_present", cfg.Generative.APIKey != ""),
	)

	// Register upstream metrics explicitly (no init())
	metrics.RegisterUpstreamMetrics()

	svc := buildServices(&cfg, logger)
	server := chiTransport.NewServer(svc.search, svc.compose, svc.health, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.MaxAgeSec))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "http server")
		}
		return nil
	case <-sigCtx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return errors.Wrap(err, "shutdown")
	}

	logger.Info("Server stopped gracefully")
	return nil
}

type services struct {
	search  *searchuc.Service
	compose *composeuc.Service
	health  *healthuc.Service
}

// buildServices wires upstream clients into use cases. It never fails: a missing
// credential or a broken generative client is reported per request.
func buildServices(cfg *config.Config, logger *zap.Logger) services {
	scraper := scraperapi.NewClient(&scraperapi.Config{
		APIKey:  cfg.Search.APIKey,
		BaseURL: cfg.Search.BaseURL,
		Country: cfg.Search.Country,
		TLD:     cfg.Search.TLD,
		Timeout: cfg.SearchTimeout(),
		Logger:  logger,
	})
	searchSvc := searchuc.New(scraper, cfg.Search.APIKey != "")

	gen, genErr := gemini.NewClient(&gemini.Config{
		APIKey:     cfg.Generative.APIKey,
		BaseURL:    cfg.Generative.BaseURL,
		APIVersion: cfg.Generative.APIVersion,
		Model:      cfg.Generative.Model,
		Timeout:    cfg.GenerativeTimeout(),
		Logger:     logger,
	})

	// Pass nil interface (not typed nil pointer!) if the client failed to build.
	// Go gotcha: (*gemini.Client)(nil) wrapped in Generator != nil.
	var generator composeuc.Generator
	if genErr != nil {
		logger.Error("Generative client unavailable", zap.Error(genErr))
	} else {
		generator = gen
	}
	composeSvc := composeuc.New(generator, cfg.Generative.APIKey != "").WithClientError(genErr)

	healthSvc := healthuc.New(searchSvc, composeSvc).
		WithCheck("search", searchSvc).
		WithCheck("compose", composeSvc)

	return services{search: searchSvc, compose: composeSvc, health: healthSvc}
}
