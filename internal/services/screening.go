package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
)

// ScreenInput is one upload: the raw PDF plus the job description it is
// scored against. An empty job description stops the pipeline after parsing.
type ScreenInput struct {
	ResumePDF      []byte
	Filename       string
	JobDescription string
}

// ScreeningResult carries every stage outcome. A stage that failed leaves its
// value nil and sets the matching error message.
type ScreeningResult struct {
	ScreeningID     string
	Parsed          *models.ParsedResume
	ParseError      string
	Score           *models.ScoreResult
	ScoreError      string
	Status          models.ScreeningStatus
	Assessment      *models.Assessment
	AssessmentError string
}

type ScreeningService interface {
	Screen(ctx context.Context, input ScreenInput) (*ScreeningResult, error)
}

type ScreeningOptions struct {
	Neighbors      int
	ScoreThreshold int
}

type screeningService struct {
	pdfParser  PDFParserService
	embedder   Embedder
	store      SimilarityStore
	extraction ExtractionService
	repo       repositories.ScreeningRepository
	opts       ScreeningOptions
}

func NewScreeningService(
	pdfParser PDFParserService,
	embedder Embedder,
	store SimilarityStore,
	extraction ExtractionService,
	repo repositories.ScreeningRepository,
	opts ScreeningOptions,
) ScreeningService {
	if repo == nil {
		repo = repositories.NewNoopScreeningRepository()
	}
	return &screeningService{
		pdfParser:  pdfParser,
		embedder:   embedder,
		store:      store,
		extraction: extraction,
		repo:       repo,
		opts:       opts,
	}
}

// ShouldGenerateAssessment is the gate between scoring and question
// generation. The comparison is strict.
func ShouldGenerateAssessment(score, threshold int) bool {
	return score > threshold
}

func (s *screeningService) Screen(ctx context.Context, input ScreenInput) (*ScreeningResult, error) {
	start := time.Now()

	log.Printf("📄 Extracting text from %s (%d bytes)", input.Filename, len(input.ResumePDF))
	resumeText, err := s.pdfParser.ExtractText(input.ResumePDF)
	if err != nil {
		return nil, err
	}

	result := &ScreeningResult{
		ScreeningID: uuid.New().String(),
		Status:      models.StatusParsed,
	}

	similarContext := s.retrieve(ctx, resumeText)

	log.Println("🤖 Parsing resume...")
	parsed, err := s.extraction.ParseResume(ctx, resumeText, similarContext)
	if err != nil {
		log.Printf("❌ Parsing failed: %v", err)
		result.ParseError = fmt.Sprintf("Parsing failed: %v", err)
		parsed = &models.ParsedResume{}
	} else {
		result.Parsed = parsed
	}

	jobDescription := strings.TrimSpace(input.JobDescription)
	if jobDescription == "" {
		log.Println("⚠️  No job description provided, skipping scoring")
		s.persist(input, result)
		return result, nil
	}

	log.Println("🤖 Scoring resume against job description...")
	score, err := s.extraction.ScoreResume(ctx, resumeText, jobDescription)
	if err != nil {
		log.Printf("❌ Scoring failed: %v", err)
		result.ScoreError = fmt.Sprintf("Scoring failed: %v", err)
		result.Status = models.StatusFailed
		s.persist(input, result)
		return result, nil
	}
	result.Score = score
	result.Status = models.StatusScored
	log.Printf("📊 Resume score: %d", score.Score)

	if !ShouldGenerateAssessment(score.Score, s.opts.ScoreThreshold) {
		log.Printf("⚠️  Score %d is not above threshold %d, no assessment generated", score.Score, s.opts.ScoreThreshold)
		result.Status = models.StatusBelowThreshold
		s.persist(input, result)
		return result, nil
	}

	log.Println("🎓 Generating assessment...")
	assessment, err := s.extraction.GenerateAssessment(ctx, parsed)
	if err != nil {
		log.Printf("❌ Assessment generation failed: %v", err)
		result.AssessmentError = fmt.Sprintf("Assessment generation failed: %v", err)
	} else {
		result.Assessment = assessment
		result.Status = models.StatusAssessmentReady
		log.Printf("✅ Assessment ready with %d questions", assessment.TotalQuestions())
	}

	s.persist(input, result)
	log.Printf("✅ Screening %s finished in %s", result.ScreeningID, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// retrieve embeds the résumé, looks up previously seen résumés and then adds
// this one. Failures only cost the extraction prompt its context.
func (s *screeningService) retrieve(ctx context.Context, resumeText string) string {
	if s.embedder == nil || s.store == nil {
		return ""
	}

	vector, err := s.embedder.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		log.Printf("⚠️  Embedding failed, continuing without similar resumes: %v", err)
		return ""
	}

	similarContext := RetrieveContext(ctx, s.store, vector, s.opts.Neighbors)

	id, err := s.store.Add(ctx, vector, resumeText)
	if err != nil {
		log.Printf("⚠️  Failed to store resume embedding: %v", err)
	} else {
		log.Printf("✅ Stored resume embedding #%d", id)
	}

	return similarContext
}

// persist records the outcome only. Résumé text and assessment content
// never reach the database.
func (s *screeningService) persist(input ScreenInput, result *ScreeningResult) {
	record := &models.ScreeningRecord{
		ID:                  uuid.MustParse(result.ScreeningID),
		OriginalFileName:    input.Filename,
		HasJobDescription:   strings.TrimSpace(input.JobDescription) != "",
		ParseOK:             result.Parsed != nil,
		Status:              result.Status,
		AssessmentGenerated: result.Assessment != nil,
	}
	if result.Score != nil {
		score := result.Score.Score
		record.Score = &score
	}
	if msg := firstNonEmpty(result.ParseError, result.ScoreError, result.AssessmentError); msg != "" {
		record.ErrorMessage = &msg
	}

	if err := s.repo.Create(record); err != nil {
		log.Printf("⚠️  Failed to save screening %s: %v", result.ScreeningID, err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
