package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidQuery signals an empty or whitespace-only search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrMissingCredential signals that an upstream credential is not configured.
	ErrMissingCredential = errors.New("missing credential")
	// ErrUpstream signals a failed upstream call or a non-success upstream status.
	ErrUpstream = errors.New("upstream error")
	// ErrMissingImages signals that a composition request lacks one of its images.
	ErrMissingImages = errors.New("missing images")
	// ErrClientUnavailable signals that the generative client could not be constructed.
	ErrClientUnavailable = errors.New("client unavailable")
	// ErrNoImageReturned signals a model response without any image part.
	ErrNoImageReturned = errors.New("no image returned")
	// ErrUnexpected is the catch-all for failures not classified above.
	ErrUnexpected = errors.New("unexpected error")
)

// UpstreamError wraps ErrUpstream with what the upstream reported.
// Status is zero when no HTTP response was received (network failure, timeout).
type UpstreamError struct {
	Upstream string
	Status   int
	Body     string
	Message  string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s: %s", ErrUpstream.Error(), e.Upstream, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s returned %d: %s", ErrUpstream.Error(), e.Upstream, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s returned %d", ErrUpstream.Error(), e.Upstream, e.Status)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// ClientUnavailableError matches ErrClientUnavailable and reads as its cause.
type ClientUnavailableError struct {
	Cause error
}

func (e *ClientUnavailableError) Error() string { return e.Cause.Error() }

func (e *ClientUnavailableError) Unwrap() error { return e.Cause }

// Is reports ErrClientUnavailable as a match.
func (e *ClientUnavailableError) Is(target error) bool { return target == ErrClientUnavailable }

// NewClientUnavailable wraps cause so that it matches ErrClientUnavailable while keeping its message.
func NewClientUnavailable(cause error) error {
	if cause == nil {
		return ErrClientUnavailable
	}
	return &ClientUnavailableError{Cause: cause}
}
