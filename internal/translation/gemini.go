package translation

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used when none is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider completes prompts through the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found. Set GEMINI_API_KEY or configure gemini.api_key in .mdtrans.yaml")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

// Complete sends one generateContent request.
func (p *GeminiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.3),
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	return text, nil
}
