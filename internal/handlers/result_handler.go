package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/repositories"
)

type ResultHandler struct {
	repo repositories.ScreeningRepository
}

func NewResultHandler(repo repositories.ScreeningRepository) *ResultHandler {
	return &ResultHandler{
		repo: repo,
	}
}

// HandleGetResult handles GET /screenings/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	if !repositories.IsPersistent(h.repo) {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "Screening history is disabled. Set DB_ENABLED=true to keep outcomes.",
		})
	}

	// Parse ID from params
	screeningID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid screening ID format",
		})
	}

	record, err := h.repo.FindByID(screeningID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Screening not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load screening",
		})
	}

	return c.JSON(record)
}
