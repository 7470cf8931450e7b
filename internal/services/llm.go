package services

import (
	"context"
	"fmt"

	"alfredoptarigan/resume-screener/internal/config"
)

// EmbeddingDimension is the length of every résumé vector.
const EmbeddingDimension = 384

// TextGenerator sends one prompt to a generative model and returns its raw
// text. Implementations do not retry; failures wrap ErrGeneration.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into an EmbeddingDimension-long vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// LLMService is implemented by each provider client.
type LLMService interface {
	TextGenerator
	Embedder
}

// NewLLMService builds the provider client selected by cfg.LLM.Provider.
func NewLLMService(ctx context.Context, cfg *config.Config) (LLMService, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, cfg.LLM.Temperature)
	case "openai":
		return NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.EmbedModel, cfg.LLM.Temperature), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLM.Provider)
	}
}

func checkDimension(vector []float32) error {
	if len(vector) != EmbeddingDimension {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), EmbeddingDimension)
	}
	return nil
}

// truncateForEmbedding keeps embedding requests under provider input limits.
func truncateForEmbedding(text string) string {
	const maxChars = 30000
	runes := []rune(text)
	if len(runes) > maxChars {
		return string(runes[:maxChars])
	}
	return text
}
