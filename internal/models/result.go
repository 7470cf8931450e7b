package models

// ScreenResponse is returned by POST /screen. Stage errors are reported
// inline so a failure in one stage still renders the others.
type ScreenResponse struct {
	ScreeningID     string          `json:"screening_id,omitempty"`
	Parsed          interface{}     `json:"parsed"`
	ParseError      *string         `json:"parse_error,omitempty"`
	Score           interface{}     `json:"score,omitempty"`
	ScoreError      *string         `json:"score_error,omitempty"`
	Status          ScreeningStatus `json:"status"`
	AssessmentReady bool            `json:"assessment_ready"`
	AssessmentError *string         `json:"assessment_error,omitempty"`
	AssessmentTotal int             `json:"assessment_total,omitempty"`
	Message         string          `json:"message"`
}

type AssessmentResponse struct {
	ScreeningID string         `json:"screening_id,omitempty"`
	Assessment  AssessmentView `json:"assessment"`
}

type GradeResponse struct {
	Result  GradeResult `json:"result"`
	Message string      `json:"message"`
}

type WarningResponse struct {
	Warning string `json:"warning"`
}
