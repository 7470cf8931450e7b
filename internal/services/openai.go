package services

import (
	"context"
	"fmt"
	"log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type openAIService struct {
	client      *openai.Client
	modelName   string
	embedModel  string
	temperature float32
}

func NewOpenAIService(apiKey, modelName, embedModel string, temperature float32) LLMService {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &openAIService{
		client:      &client,
		modelName:   modelName,
		embedModel:  embedModel,
		temperature: temperature,
	}
}

// GenerateEmbedding implements Embedder.
func (o *openAIService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	resp, err := o.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{truncateForEmbedding(text)},
		},
		Model:      openai.EmbeddingModel(o.embedModel),
		Dimensions: openai.Int(EmbeddingDimension),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	// Convert []float64 to []float32
	embedding64 := resp.Data[0].Embedding
	embedding32 := make([]float32, len(embedding64))
	for i, v := range embedding64 {
		embedding32[i] = float32(v)
	}

	if err := checkDimension(embedding32); err != nil {
		return nil, err
	}

	return embedding32, nil
}

// GenerateText implements TextGenerator.
func (o *openAIService) GenerateText(ctx context.Context, prompt string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(o.modelName),
		Temperature: openai.Float(float64(o.temperature)),
	})
	if err != nil {
		log.Printf("❌ OpenAI API error: %v", err)
		return "", fmt.Errorf("%w: openai request failed: %v", ErrGeneration, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrGeneration)
	}

	text := completion.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("%w: no text content in openai response", ErrGeneration)
	}

	log.Printf("📊 OpenAI response received: %d characters", len(text))
	return text, nil
}
