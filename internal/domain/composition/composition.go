// Package composition models a try-on request to the generative model and the
// parts exchanged with it.
package composition

import (
	"github.com/kailas-cloud/fitroom/internal/domain"
	"github.com/kailas-cloud/fitroom/internal/domain/image"
)

// Request pairs the person photo with the garment reference.
type Request struct {
	subject   image.Payload
	reference image.Payload
}

// NewRequest parses both images, stripping any data URI prefix.
func NewRequest(subject, reference string) Request {
	return Request{subject: image.Parse(subject), reference: image.Parse(reference)}
}

// Subject returns the photo of the person to dress.
func (r Request) Subject() image.Payload { return r.subject }

// Reference returns the garment image.
func (r Request) Reference() image.Payload { return r.reference }

// Validate returns domain.ErrMissingImages unless both images carry data.
func (r Request) Validate() error {
	if r.subject.IsEmpty() || r.reference.IsEmpty() {
		return domain.ErrMissingImages
	}
	return nil
}

// Result is the single generated image.
type Result struct {
	image image.Payload
}

// NewResult creates a result.
func NewResult(img image.Payload) Result { return Result{image: img} }

// Image returns the generated payload.
func (r Result) Image() image.Payload { return r.image }

// DataURI renders the image as data:image/png;base64,<payload>. The model's own mime
// type is never used.
func (r Result) DataURI() string { return r.image.DataURI(image.MIMEPNG) }
