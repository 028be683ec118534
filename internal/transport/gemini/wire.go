package gemini

import "github.com/kailas-cloud/fitroom/internal/domain/composition"

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type wirePart struct {
	Text         string         `json:"text,omitempty"`
	InlineData   *inlineData    `json:"inlineData,omitempty"`
	Thought      bool           `json:"thought,omitempty"`
	FunctionCall map[string]any `json:"functionCall,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func toWire(parts []composition.Part) []wirePart {
	out := make([]wirePart, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case composition.TextPart:
			out = append(out, wirePart{Text: v.Text})
		case composition.InlineImagePart:
			out = append(out, wirePart{InlineData: &inlineData{MIMEType: v.MIMEType, Data: v.Data}})
		}
	}
	return out
}

func fromWire(parts []wirePart) []composition.Part {
	out := make([]composition.Part, 0, len(parts))
	for _, p := range parts {
		switch {
		case p.InlineData != nil:
			out = append(out, composition.InlineImagePart{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data})
		case p.Thought:
			out = append(out, composition.OtherPart{Kind: "thought"})
		case p.Text != "":
			out = append(out, composition.TextPart{Text: p.Text})
		case p.FunctionCall != nil:
			out = append(out, composition.OtherPart{Kind: "functionCall"})
		default:
			out = append(out, composition.OtherPart{Kind: "unknown"})
		}
	}
	return out
}
