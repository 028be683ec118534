package chi

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/kailas-cloud/fitroom/internal/domain"
)

// Client-facing messages. Frontends match on these strings.
const (
	msgQueryRequired        = "query param q is required"
	msgSearchKeyMissing     = "SCRAPERAPI_KEY not configured on server"
	msgSearchUpstream       = "ScraperAPI error"
	msgImagesRequired       = "Both images are required."
	msgGenerativeKeyMissing = "Server misconfigured: missing GENAI_API_KEY"
	msgClientUnavailable    = "GenAI SDK not installed on server or failed to import: "
	msgNoImageReturned      = "No image returned from model."
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func searchErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, msgQueryRequired),
		sentinelHandler(domain.ErrMissingCredential, http.StatusInternalServerError, msgSearchKeyMissing),
		searchUpstreamHandler,
	}
}

func composeErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrMissingImages, http.StatusBadRequest, msgImagesRequired),
		sentinelHandler(domain.ErrMissingCredential, http.StatusInternalServerError, msgGenerativeKeyMissing),
		clientUnavailableHandler,
		sentinelHandler(domain.ErrNoImageReturned, http.StatusInternalServerError, msgNoImageReturned),
		composeUpstreamHandler,
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

// searchUpstreamHandler relays the upstream status and body verbatim with 502.
// A failure without any upstream response reports status 0.
func searchUpstreamHandler(w http.ResponseWriter, err error) bool {
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	body := ue.Body
	if ue.Status == 0 {
		body = ue.Message
	}
	writeJSON(w, http.StatusBadGateway, upstreamErrorResponse{
		Error:  msgSearchUpstream,
		Status: ue.Status,
		Body:   body,
	})
	return true
}

func clientUnavailableHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrClientUnavailable) {
		return false
	}
	writeError(w, http.StatusInternalServerError, msgClientUnavailable+err.Error())
	return true
}

// composeUpstreamHandler reports model failures as 500 with the upstream message.
func composeUpstreamHandler(w http.ResponseWriter, err error) bool {
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	msg := ue.Message
	if msg == "" {
		msg = ue.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
	return true
}
