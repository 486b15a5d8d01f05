package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateRequest is the inbound job-parameter payload. It arrives as JSON
// or as form fields.
type GenerateRequest struct {
	Role      string         `json:"role" form:"role"`
	Level     string         `json:"level" form:"level"`
	TechStack string         `json:"techstack" form:"techstack"`
	Type      string         `json:"type" form:"type"`
	Amount    QuestionAmount `json:"amount" form:"amount"`
	UserID    string         `json:"userid" form:"userid"`
}

// QuestionAmount accepts a JSON number, a numeric JSON string or a form value.
type QuestionAmount int

func (a *QuestionAmount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*a = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	return a.UnmarshalText([]byte(raw))
}

func (a *QuestionAmount) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*a = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("amount must be a number, got %q", raw)
	}
	*a = QuestionAmount(n)
	return nil
}

// ParameterRequest is the validated form of GenerateRequest.
type ParameterRequest struct {
	Role          string
	Level         string
	TechStack     []string
	Focus         Focus
	QuestionCount int
	RequesterID   string
}

type ResumeRequest struct {
	Document    []byte
	MediaType   string
	FileName    string
	RequesterID string
}

type SubmissionRequest struct {
	InterviewID string            `json:"interviewId"`
	UserID      string            `json:"userId"`
	Answers     []SubmittedAnswer `json:"answers"`
}

type FeedbackRequest struct {
	InterviewID string           `json:"interviewId"`
	UserID      string           `json:"userId"`
	Transcript  []TranscriptLine `json:"transcript"`
}

type APIResponse struct {
	Success     bool   `json:"success"`
	Data        any    `json:"data,omitempty"`
	Error       string `json:"error,omitempty"`
	RawResponse string `json:"rawResponse,omitempty"`
}

type ResumeUploadResponse struct {
	ID      string `json:"id"`
	FileURL string `json:"fileUrl"`
}

type ResumeListItem struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	UploadedAt string `json:"uploadedAt"`
	FileURL    string `json:"fileUrl"`
}

type FeedbackAccepted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type SimilarInterview struct {
	InterviewID uuid.UUID `json:"interviewId"`
	Role        string    `json:"role"`
	Level       string    `json:"level"`
	Score       float32   `json:"score"`
}

type InterviewScript struct {
	InterviewID uuid.UUID `json:"interviewId"`
	Questions   string    `json:"questions"`
}
