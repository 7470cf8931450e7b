package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-screener/internal/models"
)

type stubParser struct {
	text string
	err  error
}

func (p stubParser) ExtractText(data []byte) (string, error) {
	return p.text, p.err
}

func (p stubParser) ExtractTextFromFile(path string) (*PDFContent, error) {
	return &PDFContent{Text: p.text, PageCount: 1, FilePath: path}, p.err
}

type recordingRepo struct {
	records  []*models.ScreeningRecord
	attempts []*models.AssessmentAttempt
}

func (r *recordingRepo) Create(record *models.ScreeningRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *recordingRepo) FindByID(id uuid.UUID) (*models.ScreeningRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *recordingRepo) AddAttempt(attempt *models.AssessmentAttempt) error {
	r.attempts = append(r.attempts, attempt)
	return nil
}

const parsedResumeJSON = `{
  "name": "Jane Doe",
  "contact": {"phone": "555-0100", "email": "jane@example.com"},
  "skills": ["Go", "PostgreSQL"],
  "projects": ["CLI tool", {"title": "Scraper", "stack": "Go"}],
  "internships": [{"title": "Backend Intern", "company": "Acme", "duration": "3 months", "work": "APIs"}]
}`

type screeningFixture struct {
	gen      *stubGenerator
	embedder *stubEmbedder
	store    SimilarityStore
	repo     *recordingRepo
	svc      ScreeningService
}

func newScreeningFixture(gen *stubGenerator, parser PDFParserService) *screeningFixture {
	f := &screeningFixture{
		gen:      gen,
		embedder: &stubEmbedder{},
		store:    NewMemoryStore(),
		repo:     &recordingRepo{},
	}
	f.svc = NewScreeningService(parser, f.embedder, f.store, NewExtractionService(gen), f.repo,
		ScreeningOptions{Neighbors: 3, ScoreThreshold: 40})
	return f
}

func scoreReply(score int) string {
	return fmt.Sprintf(`Here you go: {"score": %d, "feedback": "ok", "chain_of_thought": "compared skills"}`, score)
}

func TestScreenGateBoundary(t *testing.T) {
	tests := []struct {
		score          int
		wantAssessment bool
		wantStatus     models.ScreeningStatus
	}{
		{score: 40, wantAssessment: false, wantStatus: models.StatusBelowThreshold},
		{score: 41, wantAssessment: true, wantStatus: models.StatusAssessmentReady},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %d", tt.score), func(t *testing.T) {
			gen := (&stubGenerator{}).
				on(markerExtraction, parsedResumeJSON).
				on(markerScoring, scoreReply(tt.score)).
				on(markerAssessment, sampleAssessmentJSON)
			f := newScreeningFixture(gen, stubParser{text: "Jane Doe Go developer"})

			result, err := f.svc.Screen(context.Background(), ScreenInput{
				ResumePDF:      []byte("%PDF"),
				Filename:       "jane.pdf",
				JobDescription: "Go backend engineer",
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantAssessment, result.Assessment != nil)
			if tt.wantAssessment {
				assert.Equal(t, 1, gen.callsContaining(markerAssessment))
			} else {
				assert.Zero(t, gen.callsContaining(markerAssessment))
			}
		})
	}
}

func TestScreenEndToEnd(t *testing.T) {
	gen := (&stubGenerator{}).
		on(markerExtraction, parsedResumeJSON).
		on(markerScoring, scoreReply(55)).
		on(markerAssessment, "```json\n"+sampleAssessmentJSON+"\n```")
	f := newScreeningFixture(gen, stubParser{text: "Jane Doe Go developer"})

	result, err := f.svc.Screen(context.Background(), ScreenInput{
		ResumePDF:      []byte("%PDF"),
		Filename:       "jane.pdf",
		JobDescription: "Go backend engineer",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Parsed)
	assert.Equal(t, "Jane Doe", result.Parsed.Name.String())
	require.NotNil(t, result.Score)
	assert.Equal(t, 55, result.Score.Score)
	require.NotNil(t, result.Assessment)
	assert.Equal(t, 7, result.Assessment.TotalQuestions())
	assert.Equal(t, models.StatusAssessmentReady, result.Status)

	prompt := gen.calls[len(gen.calls)-1]
	assert.Contains(t, prompt, "CLI tool")
	assert.Contains(t, prompt, "Backend Intern")

	assert.Equal(t, 1, f.store.Count())
	require.Len(t, f.repo.records, 1)
	rec := f.repo.records[0]
	assert.Equal(t, result.ScreeningID, rec.ID.String())
	assert.True(t, rec.ParseOK)
	assert.True(t, rec.AssessmentGenerated)
	require.NotNil(t, rec.Score)
	assert.Equal(t, 55, *rec.Score)
	assert.Nil(t, rec.ErrorMessage)
}

func TestScreenWithoutJobDescriptionStopsAfterParse(t *testing.T) {
	gen := (&stubGenerator{}).on(markerExtraction, parsedResumeJSON)
	f := newScreeningFixture(gen, stubParser{text: "resume"})

	result, err := f.svc.Screen(context.Background(), ScreenInput{
		ResumePDF:      []byte("%PDF"),
		JobDescription: "   \n",
	})
	require.NoError(t, err)

	assert.NotNil(t, result.Parsed)
	assert.Nil(t, result.Score)
	assert.Nil(t, result.Assessment)
	assert.Equal(t, models.StatusParsed, result.Status)
	assert.Zero(t, gen.callsContaining(markerScoring))
	assert.Len(t, gen.calls, 1)
}

func TestScreenParseFailureContinues(t *testing.T) {
	gen := (&stubGenerator{}).
		on(markerExtraction, "Sorry, I cannot help with that.").
		on(markerScoring, scoreReply(72)).
		on(markerAssessment, sampleAssessmentJSON)
	f := newScreeningFixture(gen, stubParser{text: "resume"})

	result, err := f.svc.Screen(context.Background(), ScreenInput{
		ResumePDF:      []byte("%PDF"),
		JobDescription: "Data engineer",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Parsed)
	assert.Contains(t, result.ParseError, "Parsing failed")
	require.NotNil(t, result.Score)
	assert.Equal(t, 72, result.Score.Score)
	assert.NotNil(t, result.Assessment)
	require.Len(t, f.repo.records, 1)
	assert.False(t, f.repo.records[0].ParseOK)
}

func TestScreenScoreFailureSkipsGate(t *testing.T) {
	gen := (&stubGenerator{}).
		on(markerExtraction, parsedResumeJSON).
		on(markerScoring, `{"feedback": "no number here"}`)
	f := newScreeningFixture(gen, stubParser{text: "resume"})

	result, err := f.svc.Screen(context.Background(), ScreenInput{
		ResumePDF:      []byte("%PDF"),
		JobDescription: "Data engineer",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Score)
	assert.Contains(t, result.ScoreError, "Scoring failed")
	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Zero(t, gen.callsContaining(markerAssessment))
}

func TestScreenAssessmentFailureIsInline(t *testing.T) {
	gen := (&stubGenerator{}).
		on(markerExtraction, parsedResumeJSON).
		on(markerScoring, scoreReply(90)).
		on(markerAssessment, `{"mcqs": []}`)
	f := newScreeningFixture(gen, stubParser{text: "resume"})

	result, err := f.svc.Screen(context.Background(), ScreenInput{
		ResumePDF:      []byte("%PDF"),
		JobDescription: "Data engineer",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Assessment)
	assert.Contains(t, result.AssessmentError, "Assessment generation failed")
	assert.Equal(t, models.StatusScored, result.Status)
}

func TestScreenEmbeddingFailureSkipsRetrieval(t *testing.T) {
	gen := (&stubGenerator{}).on(markerExtraction, parsedResumeJSON)
	f := newScreeningFixture(gen, stubParser{text: "resume"})
	f.embedder.err = errors.New("embedding quota exceeded")

	result, err := f.svc.Screen(context.Background(), ScreenInput{ResumePDF: []byte("%PDF")})
	require.NoError(t, err)

	assert.NotNil(t, result.Parsed)
	assert.Zero(t, f.store.Count())
	assert.Equal(t, 1, gen.callsContaining(markerExtraction))
}

func TestScreenRetrievesOnlyEarlierResumes(t *testing.T) {
	gen := (&stubGenerator{}).on(markerExtraction, parsedResumeJSON)
	f := newScreeningFixture(gen, stubParser{text: "first resume body"})

	_, err := f.svc.Screen(context.Background(), ScreenInput{ResumePDF: []byte("%PDF")})
	require.NoError(t, err)
	assert.Contains(t, gen.calls[0], "Context from similar resumes:\n\n")

	second := NewScreeningService(stubParser{text: "second resume"}, f.embedder, f.store,
		NewExtractionService(gen), f.repo, ScreeningOptions{Neighbors: 3, ScoreThreshold: 40})
	_, err = second.Screen(context.Background(), ScreenInput{ResumePDF: []byte("%PDF")})
	require.NoError(t, err)

	assert.Contains(t, gen.calls[1], "first resume body")
	assert.Equal(t, 2, f.store.Count())
}

func TestScreenDocumentParseErrorAborts(t *testing.T) {
	gen := &stubGenerator{}
	f := newScreeningFixture(gen, NewPDFParserService())

	result, err := f.svc.Screen(context.Background(), ScreenInput{ResumePDF: []byte("not a pdf")})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentParse)
	assert.Nil(t, result)
	assert.Zero(t, f.embedder.calls)
	assert.Empty(t, gen.calls)
	assert.Empty(t, f.repo.records)
}

func TestShouldGenerateAssessment(t *testing.T) {
	assert.False(t, ShouldGenerateAssessment(40, 40))
	assert.True(t, ShouldGenerateAssessment(41, 40))
	assert.False(t, ShouldGenerateAssessment(0, 40))
}
