package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ScreeningStatus string

const (
	StatusParsed          ScreeningStatus = "parsed"
	StatusScored          ScreeningStatus = "scored"
	StatusBelowThreshold  ScreeningStatus = "below_threshold"
	StatusAssessmentReady ScreeningStatus = "assessment_ready"
	StatusFailed          ScreeningStatus = "failed"
)

// ScreeningRecord is the persisted outcome of one screening run. It never
// stores résumé text or assessment content.
type ScreeningRecord struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OriginalFileName    string          `gorm:"type:text" json:"original_filename"`
	HasJobDescription   bool            `gorm:"not null;default:false" json:"has_job_description"`
	ParseOK             bool            `gorm:"not null;default:false" json:"parse_ok"`
	Score               *int            `json:"score,omitempty"`
	Status              ScreeningStatus `gorm:"not null;default:'parsed'" json:"status"`
	AssessmentGenerated bool            `gorm:"not null;default:false" json:"assessment_generated"`
	ErrorMessage        *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt           time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Attempts []AssessmentAttempt `gorm:"foreignKey:ScreeningID" json:"attempts,omitempty"`
}

func (ScreeningRecord) TableName() string {
	return "screenings"
}

// AssessmentAttempt is one graded submission. Breakdown holds per-kind
// correct/total counts, never answers or feedback.
type AssessmentAttempt struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ScreeningID uuid.UUID         `gorm:"type:uuid;not null;index" json:"screening_id"`
	Score       int               `gorm:"not null" json:"score"`
	Total       int               `gorm:"not null" json:"total"`
	Passed      bool              `gorm:"not null" json:"passed"`
	Breakdown   datatypes.JSONMap `json:"breakdown"`
	CreatedAt   time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}
