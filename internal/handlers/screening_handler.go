package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

const (
	msgAssessmentReady = "Assessment Ready!"
	msgBelowThreshold  = "Score is below threshold. Improve resume and try again."
	msgParsedOnly      = "Resume parsed. Provide a job description to score it."
	msgScoreFailed     = "Resume could not be scored."
	msgAssessmentError = "Resume scored, but the assessment could not be generated."
)

type ScreeningHandler struct {
	screening services.ScreeningService
	uploads   services.UploadReader
	session   services.AssessmentSession
}

func NewScreeningHandler(
	screening services.ScreeningService,
	uploads services.UploadReader,
	session services.AssessmentSession,
) *ScreeningHandler {
	return &ScreeningHandler{
		screening: screening,
		uploads:   uploads,
		session:   session,
	}
}

// HandleScreen handles POST /screen
func (h *ScreeningHandler) HandleScreen(c *fiber.Ctx) error {
	resume, err := c.FormFile("resume")
	if err != nil {
		return h.reject(c, fiber.StatusBadRequest, "resume is required. Please upload a PDF file as 'resume'.")
	}

	data, err := h.uploads.ReadPDF(resume)
	if err != nil {
		if errors.Is(err, services.ErrInvalidUpload) {
			return h.reject(c, fiber.StatusBadRequest, err.Error())
		}
		return h.reject(c, fiber.StatusInternalServerError, "Failed to read uploaded resume")
	}

	result, err := h.screening.Screen(c.UserContext(), services.ScreenInput{
		ResumePDF:      data,
		Filename:       resume.Filename,
		JobDescription: c.FormValue("job_description"),
	})
	if err != nil {
		if errors.Is(err, services.ErrDocumentParse) {
			return h.reject(c, fiber.StatusUnprocessableEntity, "Could not extract text from the uploaded PDF")
		}
		log.Printf("❌ Screening failed: %v", err)
		return h.reject(c, fiber.StatusInternalServerError, "Screening failed")
	}

	// A completed screening replaces whatever assessment the session held.
	if result.Assessment != nil {
		err = h.session.Save(c, result.Assessment, result.ScreeningID)
	} else {
		err = h.session.Clear(c)
	}
	if err != nil {
		log.Printf("❌ Failed to update session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store assessment in session",
		})
	}

	return c.JSON(buildScreenResponse(result))
}

// reject answers a screening that never completed and drops the session's
// previous assessment.
func (h *ScreeningHandler) reject(c *fiber.Ctx, status int, message string) error {
	if err := h.session.Clear(c); err != nil {
		log.Printf("⚠️  Failed to clear previous assessment: %v", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func buildScreenResponse(result *services.ScreeningResult) models.ScreenResponse {
	resp := models.ScreenResponse{
		ScreeningID: result.ScreeningID,
		Status:      result.Status,
	}

	if result.Parsed != nil {
		resp.Parsed = result.Parsed
	} else {
		resp.Parsed = models.NewStageFailure("Parsing")
		resp.ParseError = optional(result.ParseError)
	}

	switch {
	case result.Score != nil:
		resp.Score = result.Score
	case result.ScoreError != "":
		resp.Score = models.NewStageFailure("Scoring")
		resp.ScoreError = optional(result.ScoreError)
	}

	if result.Assessment != nil {
		resp.AssessmentReady = true
		resp.AssessmentTotal = result.Assessment.TotalQuestions()
	}
	resp.AssessmentError = optional(result.AssessmentError)

	switch {
	case resp.AssessmentReady:
		resp.Message = msgAssessmentReady
	case result.AssessmentError != "":
		resp.Message = msgAssessmentError
	case result.Status == models.StatusBelowThreshold:
		resp.Message = msgBelowThreshold
	case result.ScoreError != "":
		resp.Message = msgScoreFailed
	default:
		resp.Message = msgParsedOnly
	}

	return resp
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
