package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-prep/internal/models"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
	FindLatest(ctx context.Context, interviewID uuid.UUID, userID string) (*models.Feedback, error)
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateResult(ctx context.Context, id uuid.UUID, result *FeedbackUpdateData) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	FindPendingJobs(ctx context.Context, limit int) ([]models.Feedback, error)
}

type FeedbackUpdateData struct {
	TotalScore          float64
	CategoryScores      models.CategoryScores
	Strengths           models.StringList
	AreasForImprovement models.StringList
	FinalAssessment     string
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	if feedback.Status == "" {
		feedback.Status = models.StatusQueued
	}

	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedback %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return &feedback, nil
}

// FindLatest returns the newest feedback a user received for an interview.
func (r *feedbackRepository) FindLatest(ctx context.Context, interviewID uuid.UUID, userID string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Order("created_at DESC").
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedback for interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return &feedback, nil
}

// Claim moves a queued row to processing. It reports false when the row
// was already taken by another worker or is no longer queued.
func (r *feedbackRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Where("id = ? AND status = ?", id, models.StatusQueued).
		Updates(map[string]interface{}{
			"status":     models.StatusProcessing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to claim feedback: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *feedbackRepository) UpdateResult(ctx context.Context, id uuid.UUID, data *FeedbackUpdateData) error {
	result := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                models.StatusCompleted,
			"total_score":           data.TotalScore,
			"category_scores":       data.CategoryScores,
			"strengths":             data.Strengths,
			"areas_for_improvement": data.AreasForImprovement,
			"final_assessment":      data.FinalAssessment,
			"error_message":         nil,
			"updated_at":            time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *feedbackRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	result := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *feedbackRepository) FindPendingJobs(ctx context.Context, limit int) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&feedback).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return feedback, nil
}
