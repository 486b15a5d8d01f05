package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"alfredoptarigan/interview-prep/internal/models"
	repomocks "alfredoptarigan/interview-prep/internal/repositories/mocks"
)

type recordingEvaluator struct {
	mu   sync.Mutex
	seen []uuid.UUID
	done chan uuid.UUID
}

func (r *recordingEvaluator) EvaluateFeedback(_ context.Context, feedbackID uuid.UUID) error {
	r.mu.Lock()
	r.seen = append(r.seen, feedbackID)
	r.mu.Unlock()
	select {
	case r.done <- feedbackID:
	default:
	}
	return nil
}

func waitForJob(t *testing.T, done <-chan uuid.UUID) uuid.UUID {
	t.Helper()
	select {
	case id := <-done:
		return id
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job")
		return uuid.Nil
	}
}

func TestWorkerProcessesEnqueuedJob(t *testing.T) {
	evaluator := &recordingEvaluator{done: make(chan uuid.UUID, 1)}
	w := NewWorker(newFakeFeedbackRepo(), evaluator, 2, time.Hour)
	w.Start(context.Background())
	defer w.Stop()

	id := uuid.New()
	w.EnqueueJob(id)

	assert.Equal(t, id, waitForJob(t, evaluator.done))
}

func TestWorkerPollsPendingJobs(t *testing.T) {
	repo := newFakeFeedbackRepo()
	pending := &models.Feedback{InterviewID: uuid.New(), UserID: "user-1"}
	require.NoError(t, repo.Create(context.Background(), pending))

	evaluator := &recordingEvaluator{done: make(chan uuid.UUID, 16)}
	w := NewWorker(repo, evaluator, 1, 20*time.Millisecond)
	w.Start(context.Background())
	defer w.Stop()

	assert.Equal(t, pending.ID, waitForJob(t, evaluator.done))
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	w := NewWorker(newFakeFeedbackRepo(), &recordingEvaluator{done: make(chan uuid.UUID, 1)}, 1, time.Hour)
	w.Start(context.Background())
	w.Stop()
	w.Stop()

	// enqueue after stop must not block
	w.EnqueueJob(uuid.New())
}

func TestFeedbackServiceSubmitQueuesJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	interviewRepo := repomocks.NewMockInterviewRepository(ctrl)
	feedbackRepo := newFakeFeedbackRepo()
	evaluator := &recordingEvaluator{done: make(chan uuid.UUID, 1)}

	interviewID := uuid.New()
	interviewRepo.EXPECT().FindByID(gomock.Any(), interviewID).Return(&models.Interview{ID: interviewID}, nil)

	w := NewWorker(feedbackRepo, evaluator, 1, time.Hour)
	w.Start(context.Background())
	defer w.Stop()

	svc := NewFeedbackService(interviewRepo, feedbackRepo, w)
	feedback, err := svc.Submit(context.Background(), models.FeedbackRequest{
		InterviewID: interviewID.String(),
		UserID:      "user-1",
		Transcript:  []models.TranscriptLine{{Role: "user", Content: "Hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusQueued, feedback.Status)
	assert.Equal(t, feedback.ID, waitForJob(t, evaluator.done))

	latest, err := svc.Latest(context.Background(), interviewID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, feedback.ID, latest.ID)

	_, err = svc.Latest(context.Background(), interviewID, "someone-else")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestFeedbackServiceSubmitRejectsEmptyTranscript(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewFeedbackService(repomocks.NewMockInterviewRepository(ctrl), newFakeFeedbackRepo(), nil)

	_, err := svc.Submit(context.Background(), models.FeedbackRequest{
		InterviewID: uuid.New().String(),
		UserID:      "user-1",
	})
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}
