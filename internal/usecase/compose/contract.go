package compose

import (
	"context"

	"github.com/kailas-cloud/fitroom/internal/domain/composition"
)

// Generator sends one multimodal request to the image model and returns the response
// parts of the first candidate. Failures must wrap domain.ErrUpstream.
type Generator interface {
	Generate(ctx context.Context, parts []composition.Part) ([]composition.Part, error)
}
