package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

type geminiService struct {
	client      *genai.Client
	modelName   string
	embedModel  string
	temperature float32
}

func NewGeminiService(ctx context.Context, apiKey, modelName, embedModel string, temperature float32) (LLMService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		embedModel:  embedModel,
		temperature: temperature,
	}, nil
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	dimension := int32(EmbeddingDimension)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(truncateForEmbedding(text)), &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	vector := result.Embeddings[0].Values
	if err := checkDimension(vector); err != nil {
		return nil, err
	}

	return vector, nil
}

// GenerateText implements TextGenerator.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", fmt.Errorf("%w: gemini request failed: %v", ErrGeneration, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: gemini returned nil response", ErrGeneration)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in gemini response", ErrGeneration)
	}

	log.Printf("📊 Gemini response received: %d characters", len(text))
	return text, nil
}
