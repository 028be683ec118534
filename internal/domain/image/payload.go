// Package image holds encoded raster payloads passed through the service untouched.
package image

import "regexp"

// MIMEPNG is the only mime type the service sends or returns.
const MIMEPNG = "image/png"

var dataURIPrefix = regexp.MustCompile(`^data:image/[a-z]+;base64,`)

// Payload is base64-encoded image data without any data URI prefix.
// The data is never decoded or inspected.
type Payload struct {
	data string
}

// Parse accepts a bare base64 string or a data:image/<fmt>;base64, URI.
func Parse(s string) Payload {
	return Payload{data: dataURIPrefix.ReplaceAllString(s, "")}
}

// FromData wraps base64 data that is already prefix-free.
func FromData(data string) Payload {
	return Payload{data: data}
}

// Data returns the base64 payload.
func (p Payload) Data() string { return p.data }

// IsEmpty reports whether there is no payload.
func (p Payload) IsEmpty() bool { return p.data == "" }

// DataURI renders the payload as a data URI with the given mime type.
func (p Payload) DataURI(mimeType string) string {
	return "data:" + mimeType + ";base64," + p.data
}
