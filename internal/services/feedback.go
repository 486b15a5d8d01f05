package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
)

// FeedbackService accepts transcripts for scoring and serves the results.
type FeedbackService interface {
	Submit(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error)
	Latest(ctx context.Context, interviewID uuid.UUID, userID string) (*models.Feedback, error)
}

type feedbackService struct {
	interviewRepo repositories.InterviewRepository
	feedbackRepo  repositories.FeedbackRepository
	worker        Worker
}

func NewFeedbackService(interviewRepo repositories.InterviewRepository, feedbackRepo repositories.FeedbackRepository, worker Worker) FeedbackService {
	return &feedbackService{
		interviewRepo: interviewRepo,
		feedbackRepo:  feedbackRepo,
		worker:        worker,
	}
}

func (s *feedbackService) Submit(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	interviewID, err := uuid.Parse(strings.TrimSpace(req.InterviewID))
	if err != nil {
		return nil, invalidInput("interviewId must be a valid id")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, invalidInput("userId is required")
	}
	if len(req.Transcript) == 0 {
		return nil, invalidInput("transcript cannot be empty")
	}

	if _, err := s.interviewRepo.FindByID(ctx, interviewID); err != nil {
		return nil, classifyStorageError("interview not found", err)
	}

	feedback := &models.Feedback{
		InterviewID: interviewID,
		UserID:      req.UserID,
		Transcript:  models.Transcript(req.Transcript),
		Status:      models.StatusQueued,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, classifyStorageError("failed to create feedback job", err)
	}

	s.worker.EnqueueJob(feedback.ID)
	return feedback, nil
}

func (s *feedbackService) Latest(ctx context.Context, interviewID uuid.UUID, userID string) (*models.Feedback, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalidInput("userId is required")
	}

	feedback, err := s.feedbackRepo.FindLatest(ctx, interviewID, userID)
	if err != nil {
		return nil, classifyStorageError("feedback not found", err)
	}
	return feedback, nil
}
