package invoice

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// VisionModel describes an image against an extraction prompt and returns
// the model's reply text. The interface exists so the pipeline can be tested
// without network access.
type VisionModel interface {
	Describe(ctx context.Context, system, user string, image []byte, mimeType string) (string, error)
}

// Gemini calls the Gemini API. Credentials come from the environment
// (GEMINI_API_KEY or Application Default Credentials).
type Gemini struct {
	model string
}

// NewGemini creates a Gemini-backed vision model. An empty model name falls
// back to DefaultModel.
func NewGemini(model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{model: model}
}

// Describe submits one chat turn holding the instruction text and the inline
// image, with the extraction task as system instruction.
func (g *Gemini) Describe(ctx context.Context, system, user string, image []byte, mimeType string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: user},
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     image,
					},
				},
			},
		},
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return rawText, nil
}
