package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type FeedbackStatus string

const (
	StatusQueued     FeedbackStatus = "queued"
	StatusProcessing FeedbackStatus = "processing"
	StatusCompleted  FeedbackStatus = "completed"
	StatusFailed     FeedbackStatus = "failed"
)

type TranscriptLine struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Transcript []TranscriptLine

func (t Transcript) Value() (driver.Value, error) {
	return jsonValue(t)
}

func (t *Transcript) Scan(value any) error {
	return scanJSON(value, t)
}

type CategoryScore struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

type CategoryScores []CategoryScore

func (c CategoryScores) Value() (driver.Value, error) {
	return jsonValue(c)
}

func (c *CategoryScores) Scan(value any) error {
	return scanJSON(value, c)
}

type Feedback struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InterviewID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"interviewId"`
	UserID              string         `gorm:"type:text;not null;index" json:"userId"`
	Transcript          Transcript     `gorm:"type:jsonb" json:"-"`
	Status              FeedbackStatus `gorm:"not null;default:'queued'" json:"status"`
	TotalScore          *float64       `gorm:"type:decimal(5,2)" json:"totalScore,omitempty"`
	CategoryScores      CategoryScores `gorm:"type:jsonb" json:"categoryScores,omitempty"`
	Strengths           StringList     `gorm:"type:jsonb" json:"strengths,omitempty"`
	AreasForImprovement StringList     `gorm:"type:jsonb" json:"areasForImprovement,omitempty"`
	FinalAssessment     *string        `gorm:"type:text" json:"finalAssessment,omitempty"`
	ErrorMessage        *string        `gorm:"type:text" json:"errorMessage,omitempty"`
	CreatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}
