package composition

// Part is one element of a model request or response. The concrete types are
// TextPart, InlineImagePart and OtherPart.
type Part interface {
	isPart()
}

// TextPart carries natural-language text.
type TextPart struct {
	Text string
}

// InlineImagePart carries base64 image data.
type InlineImagePart struct {
	MIMEType string
	Data     string
}

// OtherPart stands for any part kind the service does not use.
type OtherPart struct {
	Kind string
}

func (TextPart) isPart()        {}
func (InlineImagePart) isPart() {}
func (OtherPart) isPart()       {}

// FirstImage scans parts in order and returns the first inline image with data.
func FirstImage(parts []Part) (InlineImagePart, bool) {
	for _, p := range parts {
		if img, ok := p.(InlineImagePart); ok && img.Data != "" {
			return img, true
		}
	}
	return InlineImagePart{}, false
}
