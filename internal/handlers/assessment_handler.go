package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

const (
	noAssessmentWarning = "No assessment found. Please parse and score a resume first."
	msgPassed           = "Well done!"
	msgFailed           = "Keep practicing and try again."
)

type AssessmentHandler struct {
	session services.AssessmentSession
	grading services.GradingService
	repo    repositories.ScreeningRepository
}

func NewAssessmentHandler(
	session services.AssessmentSession,
	grading services.GradingService,
	repo repositories.ScreeningRepository,
) *AssessmentHandler {
	return &AssessmentHandler{
		session: session,
		grading: grading,
		repo:    repo,
	}
}

// HandleGetAssessment handles GET /assessment
func (h *AssessmentHandler) HandleGetAssessment(c *fiber.Ctx) error {
	assessment, screeningID, err := h.session.Load(c)
	if err != nil {
		return h.loadError(c, err)
	}

	return c.JSON(models.AssessmentResponse{
		ScreeningID: screeningID,
		Assessment:  assessment.View(),
	})
}

// HandleSubmit handles POST /assessment/submit
func (h *AssessmentHandler) HandleSubmit(c *fiber.Ctx) error {
	assessment, screeningID, err := h.session.Load(c)
	if err != nil {
		return h.loadError(c, err)
	}

	var answers models.AnswerSet
	if err := c.BodyParser(&answers); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result := h.grading.Grade(c.UserContext(), assessment, answers)

	// Graded assessments cannot be resubmitted.
	if err := h.session.Clear(c); err != nil {
		log.Printf("⚠️  Failed to clear graded assessment from session: %v", err)
	}

	h.recordAttempt(screeningID, result)

	message := msgFailed
	if result.Passed {
		message = msgPassed
	}

	return c.JSON(models.GradeResponse{
		Result:  *result,
		Message: message,
	})
}

func (h *AssessmentHandler) loadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNoAssessment) {
		return c.Status(fiber.StatusConflict).JSON(models.WarningResponse{
			Warning: noAssessmentWarning,
		})
	}

	log.Printf("❌ Failed to load assessment from session: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to load session",
	})
}

func (h *AssessmentHandler) recordAttempt(screeningID string, result *models.GradeResult) {
	if h.repo == nil || screeningID == "" {
		return
	}

	id, err := uuid.Parse(screeningID)
	if err != nil {
		return
	}

	attempt := &models.AssessmentAttempt{
		ScreeningID: id,
		Score:       result.Score,
		Total:       result.Total,
		Passed:      result.Passed,
		Breakdown:   datatypes.JSONMap(result.Breakdown()),
	}
	if err := h.repo.AddAttempt(attempt); err != nil {
		log.Printf("⚠️  Failed to record assessment attempt for %s: %v", screeningID, err)
	}
}
