package compose

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/kailas-cloud/fitroom/internal/domain"
	"github.com/kailas-cloud/fitroom/internal/domain/composition"
	"github.com/kailas-cloud/fitroom/internal/domain/image"
	"github.com/kailas-cloud/fitroom/internal/metrics"
)

// Outcome labels for metrics.ComposeResultsTotal.
const (
	outcomeOK            = "ok"
	outcomeInvalid       = "invalid"
	outcomeMisconfigured = "misconfigured"
	outcomeUpstream      = "upstream_error"
	outcomeNoImage       = "no_image"
)

// Service dresses a person photo in a garment through a generative image model.
type Service struct {
	generator            Generator
	credentialConfigured bool
	clientErr            error
	instruction          string
}

// New creates a compose service. generator may be nil when the client could not be
// built; pass the construction error through WithClientError so callers see why.
func New(generator Generator, credentialConfigured bool) *Service {
	return &Service{
		generator:            generator,
		credentialConfigured: credentialConfigured,
		instruction:          Instruction,
	}
}

// WithClientError records why the generator is unavailable.
func (s *Service) WithClientError(err error) *Service {
	s.clientErr = err
	return s
}

// WithInstruction overrides the prompt text. Empty keeps the default.
func (s *Service) WithInstruction(text string) *Service {
	if text != "" {
		s.instruction = text
	}
	return s
}

// Compose validates the request, sends exactly one generation call and returns the
// first image the model produced.
func (s *Service) Compose(ctx context.Context, req composition.Request) (composition.Result, error) {
	if err := req.Validate(); err != nil {
		observe(outcomeInvalid)
		return composition.Result{}, err
	}
	if !s.credentialConfigured {
		observe(outcomeMisconfigured)
		return composition.Result{}, errors.Wrap(domain.ErrMissingCredential, "generative api key")
	}
	if s.generator == nil {
		observe(outcomeMisconfigured)
		return composition.Result{}, domain.NewClientUnavailable(s.clientErr)
	}

	parts := []composition.Part{
		composition.TextPart{Text: s.instruction},
		composition.InlineImagePart{MIMEType: image.MIMEPNG, Data: req.Subject().Data()},
		composition.InlineImagePart{MIMEType: image.MIMEPNG, Data: req.Reference().Data()},
	}

	out, err := s.generator.Generate(ctx, parts)
	if err != nil {
		observe(outcomeUpstream)
		if !errors.Is(err, domain.ErrUpstream) {
			err = &domain.UpstreamError{Upstream: "gemini", Message: err.Error()}
		}
		return composition.Result{}, errors.Wrap(err, "generate")
	}

	img, ok := composition.FirstImage(out)
	if !ok {
		observe(outcomeNoImage)
		return composition.Result{}, domain.ErrNoImageReturned
	}

	observe(outcomeOK)
	return composition.NewResult(image.FromData(img.Data)), nil
}

// CredentialConfigured reports whether the generative API key is set.
func (s *Service) CredentialConfigured() bool { return s.credentialConfigured }

// HealthCheck fails when the service cannot serve compositions.
func (s *Service) HealthCheck(_ context.Context) error {
	if !s.credentialConfigured {
		return domain.ErrMissingCredential
	}
	if s.generator == nil {
		return domain.NewClientUnavailable(s.clientErr)
	}
	return nil
}

func observe(outcome string) {
	metrics.ComposeResultsTotal.WithLabelValues(outcome).Inc()
}
