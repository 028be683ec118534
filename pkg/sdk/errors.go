package fitroom

import "github.com/kailas-cloud/fitroom/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrMissingCredential = domain.ErrMissingCredential
	ErrUpstream          = domain.ErrUpstream
	ErrMissingImages     = domain.ErrMissingImages
	ErrClientUnavailable = domain.ErrClientUnavailable
	ErrNoImageReturned   = domain.ErrNoImageReturned
)

// UpstreamError carries what an upstream reported. Use errors.As() to extract it.
type UpstreamError = domain.UpstreamError
