package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Lister enumerates the models a credential has access to.
type Lister struct {
	provider string
	apiKey   string
}

// NewLister creates a model lister for the given provider ("openai" or
// "gemini").
func NewLister(provider, apiKey string) *Lister {
	return &Lister{provider: provider, apiKey: apiKey}
}

// ListAvailableModels prints identifier and display name for every model
// supporting text generation. A missing credential is an error; an empty
// catalog or a rejected credential only prints a diagnostic so callers
// keep a zero exit status.
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.apiKey == "" {
		return fmt.Errorf("API key not found. Set the provider's key environment variable or configure it in .mdtrans.yaml")
	}

	switch l.provider {
	case "gemini":
		return l.listGemini(ctx)
	case "openai", "":
		return l.listOpenAI(ctx)
	default:
		return fmt.Errorf("unsupported provider %q (openai or gemini)", l.provider)
	}
}

func (l *Lister) listOpenAI(ctx context.Context) error {
	client := openai.NewClient(l.apiKey)
	list, err := client.ListModels(ctx)
	if err != nil {
		fmt.Printf("Could not list OpenAI models: %v\n", err)
		return nil
	}

	var ids []string
	for _, m := range list.Models {
		if isOpenAIChatModel(m.ID) {
			ids = append(ids, m.ID)
		}
	}
	if len(ids) == 0 {
		fmt.Println("No text generation models found for this key")
		return nil
	}
	sort.Strings(ids)

	fmt.Println("Available text generation models (OpenAI):")
	for _, id := range ids {
		// The OpenAI catalog carries no display name; the identifier
		// doubles for it.
		fmt.Printf("  %-40s %s\n", id, id)
	}
	return nil
}

func isOpenAIChatModel(id string) bool {
	if strings.Contains(id, "tts") || strings.Contains(id, "audio") ||
		strings.Contains(id, "embedding") || strings.Contains(id, "dall-e") ||
		strings.Contains(id, "whisper") || strings.Contains(id, "image") {
		return false
	}
	return strings.Contains(id, "gpt") || strings.HasPrefix(id, "o1") ||
		strings.HasPrefix(id, "o3") || strings.Contains(id, "chat")
}

func (l *Lister) listGemini(ctx context.Context) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Printf("Could not create Gemini client: %v\n", err)
		return nil
	}

	count := 0
	fmt.Println("Available text generation models (Gemini):")
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			fmt.Printf("Could not list Gemini models: %v\n", err)
			return nil
		}
		if !supportsGeneration(model) {
			continue
		}
		fmt.Printf("  %-40s %s\n", strings.TrimPrefix(model.Name, "models/"), model.DisplayName)
		count++
	}
	if count == 0 {
		fmt.Println("No text generation models found for this key")
	}
	return nil
}

func supportsGeneration(m *genai.Model) bool {
	for _, action := range m.SupportedActions {
		if action == "generateContent" {
			return true
		}
	}
	return false
}
