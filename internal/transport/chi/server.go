package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	gochi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fitroom/internal/domain"
	"github.com/kailas-cloud/fitroom/internal/domain/composition"
	"github.com/kailas-cloud/fitroom/internal/domain/product"
	logpkg "github.com/kailas-cloud/fitroom/internal/logger"
	healthuc "github.com/kailas-cloud/fitroom/internal/usecase/health"
)

// DefaultMaxBodyBytes bounds POST /api/generate bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 25 << 20

// Searcher runs a normalized product search.
type Searcher interface {
	Search(ctx context.Context, query string) (product.Page, error)
}

// Composer runs a virtual try-on.
type Composer interface {
	Compose(ctx context.Context, req composition.Request) (composition.Result, error)
}

// HealthReporter produces a liveness report without calling upstreams.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the fitroom HTTP API.
type Server struct {
	search        Searcher
	composer      Composer
	health        HealthReporter
	logger        *zap.Logger
	validate      *validator.Validate
	maxBodyBytes  int64
	searchErrors  []errorHandler
	composeErrors []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, composer Composer, health HealthReporter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		search:        search,
		composer:      composer,
		health:        health,
		logger:        logger,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		maxBodyBytes:  DefaultMaxBodyBytes,
		searchErrors:  searchErrorHandlers(),
		composeErrors: composeErrorHandlers(),
	}
}

// WithMaxBodyBytes limits the size of request bodies.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Register mounts all routes on r.
func (s *Server) Register(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/search", s.SearchProducts)
	r.Post("/api/generate", s.Generate)
	r.Get("/metrics", s.Metrics)
}

// Handler returns a router with all routes mounted and no middleware.
func (s *Server) Handler() http.Handler {
	r := gochi.NewRouter()
	s.Register(r)
	return r
}

// HealthCheck handles GET /health. It answers 200 whenever the process is up.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, http.StatusOK, healthResponse{
		OK:                   true,
		APIKeyPresent:        report.SearchKeyPresent,
		GenerativeKeyPresent: report.GenerativeKeyPresent,
		Status:               string(report.Status),
		Checks:               checks,
	})
}

// SearchProducts handles GET /search?q=<text>. The query parameter may also be named "query".
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q, err := queryParam(r, "q", "query")
	if err != nil {
		s.handleError(w, r, s.searchErrors, errors.Mark(err, domain.ErrInvalidQuery))
		return
	}

	page, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleError(w, r, s.searchErrors, err)
		return
	}

	writeJSON(w, http.StatusOK, page.Listing())
}

// Generate handles POST /api/generate.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.handleError(w, r, s.composeErrors, errors.Wrap(err, "invalid request body"))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.handleError(w, r, s.composeErrors, errors.Mark(err, domain.ErrMissingImages))
		return
	}

	res, err := s.composer.Compose(r.Context(), composition.NewRequest(req.UserImage, req.ClothImage))
	if err != nil {
		s.handleError(w, r, s.composeErrors, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Image: res.DataURI()})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// queryParam returns the first non-empty of the named form parameters.
// A repeated parameter is joined with commas.
func queryParam(r *http.Request, names ...string) (string, error) {
	values := r.URL.Query()
	for _, name := range names {
		var v []string
		if err := runtime.BindQueryParameter("form", true, false, name, values, &v); err != nil {
			return "", errors.Wrapf(err, "bind %s", name)
		}
		if joined := strings.Join(v, ","); joined != "" {
			return joined, nil
		}
	}
	return "", nil
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, handlers []errorHandler, err error) {
	logger := logpkg.FromContext(r.Context(), s.logger)
	for _, h := range handlers {
		if h(w, err) {
			logger.Warn("request failed", zap.Error(err))
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
