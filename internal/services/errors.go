package services

import "errors"

var (
	// ErrDocumentParse means the upload could not be read as a PDF with text.
	ErrDocumentParse = errors.New("document parse error")
	// ErrGeneration means the generative model call failed outright.
	ErrGeneration = errors.New("generation error")
	// ErrExtractionFormat means the model replied but no JSON object could be decoded.
	ErrExtractionFormat = errors.New("extraction format error")
	// ErrAssessmentFormat means a generated assessment is unusable for grading.
	ErrAssessmentFormat = errors.New("assessment format error")
	// ErrNoAssessment means the session holds no assessment to render or grade.
	ErrNoAssessment = errors.New("no assessment found")
	// ErrDimensionMismatch means a vector does not have EmbeddingDimension components.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
