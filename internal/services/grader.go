package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
)

type SubmissionService interface {
	Submit(ctx context.Context, req models.SubmissionRequest) (*models.MockSubmission, error)
	Result(ctx context.Context, submissionID uuid.UUID) (*models.MockResult, error)
}

type submissionService struct {
	interviewRepo  repositories.InterviewRepository
	submissionRepo repositories.SubmissionRepository
}

func NewSubmissionService(interviewRepo repositories.InterviewRepository, submissionRepo repositories.SubmissionRepository) SubmissionService {
	return &submissionService{
		interviewRepo:  interviewRepo,
		submissionRepo: submissionRepo,
	}
}

func (s *submissionService) Submit(ctx context.Context, req models.SubmissionRequest) (*models.MockSubmission, error) {
	interviewID, err := uuid.Parse(strings.TrimSpace(req.InterviewID))
	if err != nil {
		return nil, invalidInput("interviewId must be a valid id")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, invalidInput("userId is required")
	}
	if len(req.Answers) == 0 {
		return nil, invalidInput("answers array cannot be empty")
	}

	if _, err := s.interviewRepo.FindByID(ctx, interviewID); err != nil {
		return nil, classifyStorageError("interview not found", err)
	}

	submission := &models.MockSubmission{
		InterviewID: interviewID,
		UserID:      req.UserID,
		Answers:     models.SubmittedAnswers(req.Answers),
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, classifyStorageError("failed to save submission", err)
	}

	return submission, nil
}

func (s *submissionService) Result(ctx context.Context, submissionID uuid.UUID) (*models.MockResult, error) {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, classifyStorageError("submission not found", err)
	}

	interview, err := s.interviewRepo.FindByID(ctx, submission.InterviewID)
	if err != nil {
		return nil, classifyStorageError("interview not found", err)
	}

	return GradeSubmission(interview, submission), nil
}

// GradeSubmission compares answers to the interview's MCQs by position.
// Unanswered questions count as incorrect; extra answers are ignored.
func GradeSubmission(interview *models.Interview, submission *models.MockSubmission) *models.MockResult {
	result := &models.MockResult{
		SubmissionID: submission.ID,
		InterviewID:  interview.ID,
		Role:         interview.Role,
		Total:        len(interview.MCQs),
		Answers:      make([]models.GradedAnswer, 0, len(interview.MCQs)),
	}

	for i, mcq := range interview.MCQs {
		var selected string
		if i < len(submission.Answers) {
			selected = submission.Answers[i].SelectedOption
		}

		correct := selected != "" && selected == mcq.CorrectAnswer
		if correct {
			result.Correct++
		}

		result.Answers = append(result.Answers, models.GradedAnswer{
			Question:       mcq.Question,
			SelectedOption: selected,
			CorrectAnswer:  mcq.CorrectAnswer,
			IsCorrect:      correct,
		})
	}

	result.Incorrect = result.Total - result.Correct
	return result
}
