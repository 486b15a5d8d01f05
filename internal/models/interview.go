package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Focus string

const (
	FocusBehavioral Focus = "behavioral"
	FocusTechnical  Focus = "technical"
	FocusMixed      Focus = "mixed"
)

func (f Focus) Valid() bool {
	switch f {
	case FocusBehavioral, FocusTechnical, FocusMixed:
		return true
	}
	return false
}

type OpenEndedQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type MultipleChoiceQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Interview is written once after both question sets validated and never
// updated afterwards.
type Interview struct {
	ID         uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	Role       string                  `gorm:"type:text" json:"role"`
	Type       string                  `gorm:"type:text" json:"type"`
	Level      string                  `gorm:"type:text" json:"level"`
	TechStack  StringList              `gorm:"type:jsonb" json:"techstack"`
	Questions  OpenEndedQuestions      `gorm:"type:jsonb" json:"questions"`
	MCQs       MultipleChoiceQuestions `gorm:"column:mcqs;type:jsonb" json:"mcqs"`
	UserID     string                  `gorm:"type:text;index" json:"userId"`
	Finalized  bool                    `gorm:"not null" json:"finalized"`
	CoverImage string                  `gorm:"type:text" json:"coverImage"`
	CreatedAt  time.Time               `gorm:"index" json:"createdAt"`
}

// QuestionTexts returns the open-ended question prompts in order.
func (i *Interview) QuestionTexts() []string {
	texts := make([]string, 0, len(i.Questions))
	for _, q := range i.Questions {
		texts = append(texts, q.Question)
	}
	return texts
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return jsonValue(l)
}

func (l *StringList) Scan(value any) error {
	return scanJSON(value, l)
}

type OpenEndedQuestions []OpenEndedQuestion

func (q OpenEndedQuestions) Value() (driver.Value, error) {
	return jsonValue(q)
}

func (q *OpenEndedQuestions) Scan(value any) error {
	return scanJSON(value, q)
}

type MultipleChoiceQuestions []MultipleChoiceQuestion

func (q MultipleChoiceQuestions) Value() (driver.Value, error) {
	return jsonValue(q)
}

func (q *MultipleChoiceQuestions) Scan(value any) error {
	return scanJSON(value, q)
}

func jsonValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jsonb column: %w", err)
	}
	return string(data), nil
}

func scanJSON(value any, dest any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb column type %T", value)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode jsonb column: %w", err)
	}
	return nil
}
