package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-prep/internal/models"
)

type ResumeRepository interface {
	Replace(ctx context.Context, resume *models.Resume) ([]models.Resume, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error)
	FindAll(ctx context.Context) ([]models.Resume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Replace implements ResumeRepository. A user keeps one résumé: the rows it
// replaced are returned so the caller can drop their files.
func (r *resumeRepository) Replace(ctx context.Context, resume *models.Resume) ([]models.Resume, error) {
	var previous []models.Resume

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", resume.UserID).Find(&previous).Error; err != nil {
			return fmt.Errorf("failed to find previous resumes: %w", err)
		}

		if len(previous) > 0 {
			if err := tx.Where("user_id = ?", resume.UserID).Delete(&models.Resume{}).Error; err != nil {
				return fmt.Errorf("failed to delete previous resumes: %w", err)
			}
		}

		if resume.ID == uuid.Nil {
			resume.ID = uuid.New()
		}
		if err := tx.Create(resume).Error; err != nil {
			return fmt.Errorf("failed to create resume: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return previous, nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}

// FindAll implements ResumeRepository.
func (r *resumeRepository) FindAll(ctx context.Context) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}

	return resumes, nil
}
