package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type SubmittedAnswer struct {
	Question       string `json:"question"`
	SelectedOption string `json:"selectedOption"`
}

type SubmittedAnswers []SubmittedAnswer

func (a SubmittedAnswers) Value() (driver.Value, error) {
	return jsonValue(a)
}

func (a *SubmittedAnswers) Scan(value any) error {
	return scanJSON(value, a)
}

type MockSubmission struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	InterviewID uuid.UUID        `gorm:"type:uuid;not null;index" json:"interviewId"`
	UserID      string           `gorm:"type:text;not null" json:"userId"`
	Answers     SubmittedAnswers `gorm:"type:jsonb" json:"answers"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

func (MockSubmission) TableName() string {
	return "mock_submissions"
}

// MockResult is the graded view of a MockSubmission.
type MockResult struct {
	SubmissionID uuid.UUID      `json:"submissionId"`
	InterviewID  uuid.UUID      `json:"interviewId"`
	Role         string         `json:"role"`
	Total        int            `json:"total"`
	Correct      int            `json:"correct"`
	Incorrect    int            `json:"incorrect"`
	Answers      []GradedAnswer `json:"answers"`
}

type GradedAnswer struct {
	Question       string `json:"question"`
	SelectedOption string `json:"selectedOption"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}
