package services

import (
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	ExpectedMCQs           = 3
	ExpectedFillInTheBlank = 2
	ExpectedCodeCompletion = 2
)

// ValidateAssessment rejects assessments that cannot be graded. Counts other
// than 3/2/2 are logged but accepted.
func ValidateAssessment(a *models.Assessment) error {
	if a == nil || a.TotalQuestions() == 0 {
		return fmt.Errorf("%w: assessment has no questions", ErrAssessmentFormat)
	}

	for i, q := range a.MCQs {
		if blank(string(q.Question)) || blank(string(q.Answer)) {
			return fmt.Errorf("%w: mcq %d is missing its question or answer", ErrAssessmentFormat, i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: mcq %d has %d options", ErrAssessmentFormat, i+1, len(q.Options))
		}
	}

	for i, q := range a.FillInTheBlanks {
		if blank(string(q.Question)) || blank(string(q.Answer)) {
			return fmt.Errorf("%w: fill-in-the-blank %d is missing its question or answer", ErrAssessmentFormat, i+1)
		}
	}

	for i, q := range a.CodeCompletion {
		if blank(string(q.Question)) {
			return fmt.Errorf("%w: code completion %d has no stub", ErrAssessmentFormat, i+1)
		}
	}

	if len(a.MCQs) != ExpectedMCQs || len(a.FillInTheBlanks) != ExpectedFillInTheBlank || len(a.CodeCompletion) != ExpectedCodeCompletion {
		log.Printf("⚠️  Assessment counts differ from 3/2/2: got %d/%d/%d",
			len(a.MCQs), len(a.FillInTheBlanks), len(a.CodeCompletion))
	}

	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
