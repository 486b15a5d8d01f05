package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
	repomocks "alfredoptarigan/interview-prep/internal/repositories/mocks"
)

func TestGradeSubmission(t *testing.T) {
	interview := &models.Interview{
		ID:   uuid.New(),
		Role: "Backend Engineer",
		MCQs: sampleMCQs(4),
	}

	submission := &models.MockSubmission{
		ID: uuid.New(),
		Answers: models.SubmittedAnswers{
			{Question: interview.MCQs[0].Question, SelectedOption: interview.MCQs[0].CorrectAnswer},
			{Question: interview.MCQs[1].Question, SelectedOption: "Option A1"},
			{Question: interview.MCQs[2].Question, SelectedOption: interview.MCQs[2].CorrectAnswer},
		},
	}

	result := GradeSubmission(interview, submission)

	assert.Equal(t, submission.ID, result.SubmissionID)
	assert.Equal(t, interview.ID, result.InterviewID)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 2, result.Incorrect)
	require.Len(t, result.Answers, 4)
	assert.True(t, result.Answers[0].IsCorrect)
	assert.False(t, result.Answers[1].IsCorrect)
	assert.Equal(t, "Option B1", result.Answers[1].CorrectAnswer)
	assert.True(t, result.Answers[2].IsCorrect)
	assert.False(t, result.Answers[3].IsCorrect)
	assert.Empty(t, result.Answers[3].SelectedOption)
}

// fakeSubmissionRepo keeps submissions in memory.
type fakeSubmissionRepo struct {
	saved map[uuid.UUID]*models.MockSubmission
}

func (f *fakeSubmissionRepo) Create(_ context.Context, submission *models.MockSubmission) error {
	submission.ID = uuid.New()
	f.saved[submission.ID] = submission
	return nil
}

func (f *fakeSubmissionRepo) FindByID(_ context.Context, id uuid.UUID) (*models.MockSubmission, error) {
	if s, ok := f.saved[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("submission %s: %w", id, repositories.ErrNotFound)
}

func TestSubmissionServiceSubmitAndGrade(t *testing.T) {
	ctrl := gomock.NewController(t)
	interviewRepo := repomocks.NewMockInterviewRepository(ctrl)
	submissions := &fakeSubmissionRepo{saved: map[uuid.UUID]*models.MockSubmission{}}

	interview := &models.Interview{ID: uuid.New(), Role: "SRE", MCQs: sampleMCQs(2)}
	interviewRepo.EXPECT().FindByID(gomock.Any(), interview.ID).Return(interview, nil).Times(2)

	svc := NewSubmissionService(interviewRepo, submissions)
	submission, err := svc.Submit(context.Background(), models.SubmissionRequest{
		InterviewID: interview.ID.String(),
		UserID:      "user-1",
		Answers: []models.SubmittedAnswer{
			{Question: interview.MCQs[0].Question, SelectedOption: interview.MCQs[0].CorrectAnswer},
			{Question: interview.MCQs[1].Question, SelectedOption: interview.MCQs[1].CorrectAnswer},
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, submission.ID)

	result, err := svc.Result(context.Background(), submission.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 0, result.Incorrect)
}

func TestSubmissionServiceSubmitErrors(t *testing.T) {
	missing := uuid.New()

	testCases := []struct {
		name     string
		req      models.SubmissionRequest
		mock     func(repo *repomocks.MockInterviewRepository)
		wantKind ErrorKind
	}{
		{
			name:     "bad interview id",
			req:      models.SubmissionRequest{InterviewID: "nope", UserID: "u", Answers: []models.SubmittedAnswer{{SelectedOption: "a"}}},
			wantKind: KindInvalidInput,
		},
		{
			name:     "missing user",
			req:      models.SubmissionRequest{InterviewID: missing.String(), Answers: []models.SubmittedAnswer{{SelectedOption: "a"}}},
			wantKind: KindInvalidInput,
		},
		{
			name:     "empty answers",
			req:      models.SubmissionRequest{InterviewID: missing.String(), UserID: "u"},
			wantKind: KindInvalidInput,
		},
		{
			name: "unknown interview",
			req:  models.SubmissionRequest{InterviewID: missing.String(), UserID: "u", Answers: []models.SubmittedAnswer{{SelectedOption: "a"}}},
			mock: func(repo *repomocks.MockInterviewRepository) {
				repo.EXPECT().FindByID(gomock.Any(), missing).
					Return(nil, fmt.Errorf("interview %s: %w", missing, repositories.ErrNotFound))
			},
			wantKind: KindNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomocks.NewMockInterviewRepository(ctrl)
			if tc.mock != nil {
				tc.mock(repo)
			}

			svc := NewSubmissionService(repo, &fakeSubmissionRepo{saved: map[uuid.UUID]*models.MockSubmission{}})
			_, err := svc.Submit(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.wantKind, KindOf(err))
		})
	}
}
