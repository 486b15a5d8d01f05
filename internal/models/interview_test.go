package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONColumnsRoundTrip(t *testing.T) {
	mcqs := MultipleChoiceQuestions{
		{
			Question:      "Which isolation level prevents phantom reads?",
			Options:       []string{"Read committed", "Repeatable read", "Serializable", "Read uncommitted"},
			CorrectAnswer: "Serializable",
		},
	}

	value, err := mcqs.Value()
	require.NoError(t, err)

	// postgres drivers hand jsonb back as either []byte or string
	for _, raw := range []any{[]byte(value.(string)), value.(string)} {
		var got MultipleChoiceQuestions
		require.NoError(t, got.Scan(raw))
		assert.Equal(t, mcqs, got)
	}
}

func TestScanNilLeavesEmpty(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan(nil))
	assert.Nil(t, list)
}

func TestScanRejectsUnknownType(t *testing.T) {
	var questions OpenEndedQuestions
	err := questions.Scan(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported jsonb column type int")
}

func TestFocusValid(t *testing.T) {
	assert.True(t, FocusBehavioral.Valid())
	assert.True(t, FocusTechnical.Valid())
	assert.True(t, FocusMixed.Valid())
	assert.False(t, Focus("hr").Valid())
	assert.False(t, Focus("").Valid())
}

func TestQuestionTexts(t *testing.T) {
	interview := Interview{Questions: OpenEndedQuestions{
		{Question: "Tell me about a hard bug.", Answer: "..."},
		{Question: "How do you review code?", Answer: "..."},
	}}
	assert.Equal(t, []string{"Tell me about a hard bug.", "How do you review code?"}, interview.QuestionTexts())
}
