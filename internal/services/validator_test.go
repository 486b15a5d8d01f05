package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-prep/internal/models"
)

func sampleMCQs(n int) []models.MultipleChoiceQuestion {
	mcqs := make([]models.MultipleChoiceQuestion, 0, n)
	for i := 0; i < n; i++ {
		options := []string{
			fmt.Sprintf("Option A%d", i),
			fmt.Sprintf("Option B%d", i),
			fmt.Sprintf("Option C%d", i),
			fmt.Sprintf("Option D%d", i),
		}
		mcqs = append(mcqs, models.MultipleChoiceQuestion{
			Question:      fmt.Sprintf("Question number %d", i+1),
			Options:       options,
			CorrectAnswer: options[i%4],
		})
	}
	return mcqs
}

func sampleOpenEnded(n int) []models.OpenEndedQuestion {
	questions := make([]models.OpenEndedQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, models.OpenEndedQuestion{
			Question: fmt.Sprintf("Describe situation %d", i+1),
			Answer:   fmt.Sprintf("A good answer mentions point %d", i+1),
		})
	}
	return questions
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestParseOpenEndedQuestions(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		wantLen  int
		wantKind ErrorKind
		wantMsg  string
	}{
		{
			name:    "valid batch",
			text:    `[{"question":"Why Go?","answer":"Simplicity"},{"question":"Why Postgres?","answer":"Reliability"}]`,
			wantLen: 2,
		},
		{
			name:     "not json",
			text:     `here you go`,
			wantKind: KindMalformedGenerationOutput,
		},
		{
			name:     "object instead of array",
			text:     `{"question":"Why Go?","answer":"Simplicity"}`,
			wantKind: KindSchemaViolation,
			wantMsg:  "expected a JSON array, received object",
		},
		{
			name:     "array of strings",
			text:     `["Why Go?"]`,
			wantKind: KindSchemaViolation,
			wantMsg:  "item 0: expected an object, received string",
		},
		{
			name:     "missing answer",
			text:     `[{"question":"Why Go?"}]`,
			wantKind: KindSchemaViolation,
		},
		{
			name:     "blank answer",
			text:     `[{"question":"Why Go?","answer":"   "}]`,
			wantKind: KindSchemaViolation,
			wantMsg:  "open-ended item 0: answer is empty",
		},
		{
			name:     "empty batch",
			text:     `[]`,
			wantKind: KindSchemaViolation,
			wantMsg:  "received 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := ParseOpenEndedQuestions(tc.text)
			if tc.wantKind == "" {
				require.NoError(t, err)
				assert.Len(t, questions, tc.wantLen)
				return
			}

			require.Error(t, err)
			assert.Nil(t, questions)
			assert.Equal(t, tc.wantKind, KindOf(err))
			assert.Equal(t, tc.text, RawResponseOf(err))
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestParseMultipleChoiceQuestionsAcceptsValidBatch(t *testing.T) {
	for _, expected := range []int{10, 20, 25} {
		t.Run(fmt.Sprintf("%d items", expected), func(t *testing.T) {
			questions, err := ParseMultipleChoiceQuestions(mustJSON(t, sampleMCQs(expected)), expected)
			require.NoError(t, err)
			require.Len(t, questions, expected)

			for _, q := range questions {
				assert.Len(t, q.Options, 4)
				assert.Contains(t, q.Options, q.CorrectAnswer)

				seen := map[string]bool{}
				for _, option := range q.Options {
					assert.False(t, seen[option], "duplicate option %q", option)
					seen[option] = true
				}
			}
		})
	}
}

func TestParseMultipleChoiceQuestionsRejectsWrongCount(t *testing.T) {
	for _, expected := range []int{10, 20, 25} {
		for _, actual := range []int{expected - 1, expected + 1} {
			t.Run(fmt.Sprintf("expected %d got %d", expected, actual), func(t *testing.T) {
				_, err := ParseMultipleChoiceQuestions(mustJSON(t, sampleMCQs(actual)), expected)
				require.Error(t, err)
				assert.Equal(t, KindSchemaViolation, KindOf(err))
				assert.Contains(t, err.Error(), fmt.Sprintf("expected %d multiple-choice questions, received %d", expected, actual))
			})
		}
	}
}

func TestParseMultipleChoiceQuestionsRejectsInvalidItem(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(q *models.MultipleChoiceQuestion)
		wantMsg string
	}{
		{
			name:   "three options",
			mutate: func(q *models.MultipleChoiceQuestion) { q.Options = q.Options[:3] },
		},
		{
			name:   "five options",
			mutate: func(q *models.MultipleChoiceQuestion) { q.Options = append(q.Options, "Option E") },
		},
		{
			name: "duplicate options",
			mutate: func(q *models.MultipleChoiceQuestion) {
				q.Options = []string{"Same", "Same", "Other", "Another"}
				q.CorrectAnswer = "Other"
			},
		},
		{
			name:    "answer not among options",
			mutate:  func(q *models.MultipleChoiceQuestion) { q.CorrectAnswer = "None of the above" },
			wantMsg: "is not one of the options",
		},
		{
			name:    "empty answer",
			mutate:  func(q *models.MultipleChoiceQuestion) { q.CorrectAnswer = "" },
			wantMsg: "correctAnswer is empty",
		},
		{
			name:    "blank question",
			mutate:  func(q *models.MultipleChoiceQuestion) { q.Question = " " },
			wantMsg: "question is empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mcqs := sampleMCQs(10)
			tc.mutate(&mcqs[7])

			_, err := ParseMultipleChoiceQuestions(mustJSON(t, mcqs), 10)
			require.Error(t, err)
			assert.Equal(t, KindSchemaViolation, KindOf(err))
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestParseMultipleChoiceQuestionsMalformed(t *testing.T) {
	raw := `[{"question":"q","options":["a","b","c","d"],"correctAnswer":"a"`
	_, err := ParseMultipleChoiceQuestions(raw, 1)
	require.Error(t, err)
	assert.Equal(t, KindMalformedGenerationOutput, KindOf(err))
	assert.Equal(t, raw, RawResponseOf(err))
}
