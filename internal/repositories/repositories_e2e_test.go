//go:build e2e

package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"alfredoptarigan/interview-prep/internal/models"
)

const (
	e2eInterviews       = "e2e_interviews"
	e2eResumeInterviews = "e2e_resume_interviews"
)

func TestRepositoriesE2E(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}
	suite.Run(t, &RepositoriesTestSuite{dsn: dsn})
}

type RepositoriesTestSuite struct {
	suite.Suite
	dsn string
	db  *gorm.DB

	interviews InterviewRepository
	feedback   FeedbackRepository
	resumes    ResumeRepository
}

func (s *RepositoriesTestSuite) SetupSuite() {
	db, err := gorm.Open(postgres.Open(s.dsn), &gorm.Config{})
	require.NoError(s.T(), err)
	s.db = db

	for _, table := range []string{e2eInterviews, e2eResumeInterviews} {
		require.NoError(s.T(), db.Table(table).AutoMigrate(&models.Interview{}))
	}
	require.NoError(s.T(), db.AutoMigrate(&models.Resume{}, &models.MockSubmission{}, &models.Feedback{}))

	s.interviews = NewInterviewRepository(db, []string{e2eInterviews, e2eResumeInterviews}, 5*time.Second)
	s.feedback = NewFeedbackRepository(db)
	s.resumes = NewResumeRepository(db)
}

func (s *RepositoriesTestSuite) TearDownTest() {
	for _, table := range []string{e2eInterviews, e2eResumeInterviews, "resumes", "mock_submissions", "feedback"} {
		require.NoError(s.T(), s.db.Exec("TRUNCATE TABLE "+table).Error)
	}
}

func (s *RepositoriesTestSuite) TearDownSuite() {
	for _, table := range []string{e2eInterviews, e2eResumeInterviews} {
		require.NoError(s.T(), s.db.Exec("DROP TABLE IF EXISTS "+table).Error)
	}
}

func (s *RepositoriesTestSuite) TestInterviewRoundTrip() {
	t := s.T()
	ctx := context.Background()

	interview := &models.Interview{
		Role:      "Backend Engineer",
		Type:      "technical",
		Level:     "Senior",
		TechStack: models.StringList{"Go", "PostgreSQL"},
		Questions: models.OpenEndedQuestions{{Question: "Explain MVCC.", Answer: "Versioned rows."}},
		MCQs: models.MultipleChoiceQuestions{{
			Question:      "Which isolation level prevents phantom reads?",
			Options:       []string{"Read uncommitted", "Read committed", "Repeatable read", "Serializable"},
			CorrectAnswer: "Serializable",
		}},
		UserID:     "user-1",
		Finalized:  true,
		CoverImage: "/covers/adobe.png",
	}

	id, err := s.interviews.Add(ctx, e2eResumeInterviews, interview)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	found, err := s.interviews.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, interview.Role, found.Role)
	assert.Equal(t, interview.TechStack, found.TechStack)
	assert.Equal(t, interview.Questions, found.Questions)
	assert.Equal(t, interview.MCQs, found.MCQs)
	assert.True(t, found.Finalized)

	byUser, err := s.interviews.FindByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	latest, err := s.interviews.FindLatest(ctx, "user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, latest)

	_, err = s.interviews.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func (s *RepositoriesTestSuite) TestFeedbackClaim() {
	t := s.T()
	ctx := context.Background()

	feedback := &models.Feedback{
		InterviewID: uuid.New(),
		UserID:      "user-1",
		Transcript:  models.Transcript{{Role: "user", Content: "hello"}},
	}
	require.NoError(t, s.feedback.Create(ctx, feedback))

	pending, err := s.feedback.FindPendingJobs(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	claimed, err := s.feedback.Claim(ctx, feedback.ID)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = s.feedback.Claim(ctx, feedback.ID)
	require.NoError(t, err)
	assert.False(t, claimed)

	require.NoError(t, s.feedback.UpdateResult(ctx, feedback.ID, &FeedbackUpdateData{
		TotalScore:          81,
		CategoryScores:      models.CategoryScores{{Name: "Communication Skills", Score: 80, Comment: "Clear."}},
		Strengths:           models.StringList{"Concise"},
		AreasForImprovement: models.StringList{"Depth"},
		FinalAssessment:     "Good.",
	}))

	latest, err := s.feedback.FindLatest(ctx, feedback.InterviewID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, latest.Status)
	require.NotNil(t, latest.TotalScore)
	assert.Equal(t, 81.0, *latest.TotalScore)
}

func (s *RepositoriesTestSuite) TestResumeReplace() {
	t := s.T()
	ctx := context.Background()

	first := &models.Resume{UserID: "user-1", FileName: "a.pdf", StorageKey: "resume_a.pdf"}
	previous, err := s.resumes.Replace(ctx, first)
	require.NoError(t, err)
	assert.Empty(t, previous)

	second := &models.Resume{UserID: "user-1", FileName: "b.pdf", StorageKey: "resume_b.pdf"}
	previous, err = s.resumes.Replace(ctx, second)
	require.NoError(t, err)
	require.Len(t, previous, 1)
	assert.Equal(t, "resume_a.pdf", previous[0].StorageKey)

	all, err := s.resumes.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
