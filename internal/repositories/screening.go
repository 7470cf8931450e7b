package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-screener/internal/models"
)

var ErrNotFound = errors.New("screening not found")

type ScreeningRepository interface {
	Create(record *models.ScreeningRecord) error
	FindByID(id uuid.UUID) (*models.ScreeningRecord, error)
	AddAttempt(attempt *models.AssessmentAttempt) error
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	if db == nil {
		return NewNoopScreeningRepository()
	}
	return &screeningRepository{db: db}
}

func (r *screeningRepository) Create(record *models.ScreeningRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create screening: %w", err)
	}
	return nil
}

func (r *screeningRepository) FindByID(id uuid.UUID) (*models.ScreeningRecord, error) {
	var record models.ScreeningRecord
	err := r.db.
		Preload("Attempts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find screening: %w", err)
	}
	return &record, nil
}

func (r *screeningRepository) AddAttempt(attempt *models.AssessmentAttempt) error {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return fmt.Errorf("failed to create assessment attempt: %w", err)
		}

		result := tx.Model(&models.ScreeningRecord{}).
			Where("id = ?", attempt.ScreeningID).
			Update("updated_at", time.Now())
		if result.Error != nil {
			return fmt.Errorf("failed to touch screening: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// noopScreeningRepository is used when the database is disabled.
type noopScreeningRepository struct{}

func NewNoopScreeningRepository() ScreeningRepository {
	return noopScreeningRepository{}
}

func (noopScreeningRepository) Create(record *models.ScreeningRecord) error {
	return nil
}

func (noopScreeningRepository) FindByID(id uuid.UUID) (*models.ScreeningRecord, error) {
	return nil, ErrNotFound
}

func (noopScreeningRepository) AddAttempt(attempt *models.AssessmentAttempt) error {
	return nil
}

// IsPersistent reports whether records written to repo can be read back.
func IsPersistent(repo ScreeningRepository) bool {
	_, noop := repo.(noopScreeningRepository)
	return !noop
}
