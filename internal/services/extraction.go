package services

import (
	"context"
	"fmt"
	"log"

	"alfredoptarigan/resume-screener/internal/models"
)

// ExtractionService wraps the generative model behind the three screening
// prompts. Each operation is a single call with no retry.
type ExtractionService interface {
	ParseResume(ctx context.Context, resumeText, similarContext string) (*models.ParsedResume, error)
	ScoreResume(ctx context.Context, resumeText, jobDescription string) (*models.ScoreResult, error)
	GenerateAssessment(ctx context.Context, parsed *models.ParsedResume) (*models.Assessment, error)
}

type extractionService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
}

func NewExtractionService(generator TextGenerator) ExtractionService {
	return &extractionService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
	}
}

func (e *extractionService) ParseResume(ctx context.Context, resumeText, similarContext string) (*models.ParsedResume, error) {
	prompt := e.promptBuilder.BuildExtractionPrompt(resumeText, similarContext)
	log.Printf("📝 Extraction prompt length: %d characters", len(prompt))

	var parsed models.ParsedResume
	if err := e.generateJSON(ctx, prompt, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	return &parsed, nil
}

func (e *extractionService) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*models.ScoreResult, error) {
	prompt := e.promptBuilder.BuildScoringPrompt(resumeText, jobDescription)
	log.Printf("📝 Scoring prompt length: %d characters", len(prompt))

	var score models.ScoreResult
	if err := e.generateJSON(ctx, prompt, &score); err != nil {
		return nil, fmt.Errorf("failed to score resume: %w", err)
	}

	return &score, nil
}

func (e *extractionService) GenerateAssessment(ctx context.Context, parsed *models.ParsedResume) (*models.Assessment, error) {
	if parsed == nil {
		parsed = &models.ParsedResume{}
	}

	prompt := e.promptBuilder.BuildAssessmentPrompt(
		parsed.Skills,
		models.NormalizeProjects(parsed.Projects),
		parsed.Internships,
	)
	log.Printf("📝 Assessment prompt length: %d characters", len(prompt))

	var assessment models.Assessment
	if err := e.generateJSON(ctx, prompt, &assessment); err != nil {
		return nil, fmt.Errorf("failed to generate assessment: %w", err)
	}

	if err := ValidateAssessment(&assessment); err != nil {
		return nil, err
	}

	return &assessment, nil
}

func (e *extractionService) generateJSON(ctx context.Context, prompt string, target interface{}) error {
	response, err := e.generator.GenerateText(ctx, prompt)
	if err != nil {
		return err
	}

	if err := ParseJSONResponse(response, target); err != nil {
		log.Printf("❌ Could not decode model response (%d characters): %v", len(response), err)
		return err
	}

	return nil
}
