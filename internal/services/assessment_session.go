package services

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/resume-screener/internal/models"
)

const (
	assessmentSessionKey  = "assessment_data"
	screeningIDSessionKey = "screening_id"
)

// AssessmentSession keeps the generated assessment between the screening
// request and the grading request of one user session.
type AssessmentSession interface {
	Save(c *fiber.Ctx, assessment *models.Assessment, screeningID string) error
	Load(c *fiber.Ctx) (*models.Assessment, string, error)
	Clear(c *fiber.Ctx) error
}

type assessmentSession struct {
	store *session.Store
}

func NewAssessmentSession(store *session.Store) AssessmentSession {
	return &assessmentSession{store: store}
}

// Save implements AssessmentSession.
func (s *assessmentSession) Save(c *fiber.Ctx, assessment *models.Assessment, screeningID string) error {
	data, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to encode assessment: %w", err)
	}

	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	sess.Set(assessmentSessionKey, string(data))
	if screeningID != "" {
		sess.Set(screeningIDSessionKey, screeningID)
	} else {
		sess.Delete(screeningIDSessionKey)
	}

	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load implements AssessmentSession. It returns ErrNoAssessment when the
// session holds no assessment.
func (s *assessmentSession) Load(c *fiber.Ctx) (*models.Assessment, string, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load session: %w", err)
	}

	raw, ok := sess.Get(assessmentSessionKey).(string)
	if !ok || raw == "" {
		return nil, "", ErrNoAssessment
	}

	var assessment models.Assessment
	if err := json.Unmarshal([]byte(raw), &assessment); err != nil {
		return nil, "", fmt.Errorf("%w: stored assessment is unreadable: %v", ErrNoAssessment, err)
	}

	screeningID, _ := sess.Get(screeningIDSessionKey).(string)
	return &assessment, screeningID, nil
}

// Clear implements AssessmentSession.
func (s *assessmentSession) Clear(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	sess.Delete(assessmentSessionKey)
	sess.Delete(screeningIDSessionKey)

	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
