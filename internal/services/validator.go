package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"alfredoptarigan/interview-prep/internal/models"
)

const mcqOptionCount = 4

var openEndedSchema = mustCompileSchema("open_ended.json", map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"question", "answer"},
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"answer":   map[string]any{"type": "string"},
		},
	},
})

var multipleChoiceSchema = mustCompileSchema("multiple_choice.json", map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"question", "options", "correctAnswer"},
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    mcqOptionCount,
				"maxItems":    mcqOptionCount,
				"uniqueItems": true,
			},
			"correctAnswer": map[string]any{"type": "string"},
		},
	},
})

func mustCompileSchema(name string, schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// ParseOpenEndedQuestions parses normalized model output into open-ended
// questions. Any invalid item rejects the whole batch.
func ParseOpenEndedQuestions(text string) ([]models.OpenEndedQuestion, error) {
	var questions []models.OpenEndedQuestion
	if err := decodeBatch(text, openEndedSchema, &questions); err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, schemaViolation(text, "expected at least one open-ended question, received 0")
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, schemaViolation(text, "open-ended item %d: question is empty", i)
		}
		if strings.TrimSpace(q.Answer) == "" {
			return nil, schemaViolation(text, "open-ended item %d: answer is empty", i)
		}
	}

	return questions, nil
}

// ParseMultipleChoiceQuestions parses normalized model output into exactly
// expected multiple-choice questions.
func ParseMultipleChoiceQuestions(text string, expected int) ([]models.MultipleChoiceQuestion, error) {
	var questions []models.MultipleChoiceQuestion
	if err := decodeBatch(text, multipleChoiceSchema, &questions); err != nil {
		return nil, err
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return nil, schemaViolation(text, "multiple-choice item %d: question is empty", i)
		}
		for j, option := range q.Options {
			if strings.TrimSpace(option) == "" {
				return nil, schemaViolation(text, "multiple-choice item %d: option %d is empty", i, j)
			}
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, schemaViolation(text, "multiple-choice item %d: correctAnswer is empty", i)
		}
		if !containsString(q.Options, q.CorrectAnswer) {
			return nil, schemaViolation(text, "multiple-choice item %d: correctAnswer %q is not one of the options", i, q.CorrectAnswer)
		}
	}

	if len(questions) != expected {
		return nil, schemaViolation(text, "expected %d multiple-choice questions, received %d", expected, len(questions))
	}

	return questions, nil
}

func decodeBatch(text string, schema *jsonschema.Schema, dest any) error {
	var generic any
	if err := json.Unmarshal([]byte(text), &generic); err != nil {
		return &PipelineError{
			Kind:        KindMalformedGenerationOutput,
			Message:     "model output is not valid JSON",
			RawResponse: text,
			Cause:       err,
		}
	}

	items, ok := generic.([]any)
	if !ok {
		return schemaViolation(text, "expected a JSON array, received %s", jsonKind(generic))
	}
	for i, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return schemaViolation(text, "item %d: expected an object, received %s", i, jsonKind(item))
		}
	}

	if err := schema.Validate(generic); err != nil {
		return &PipelineError{
			Kind:        KindSchemaViolation,
			Message:     "model output does not match the expected shape",
			RawResponse: text,
			Cause:       err,
		}
	}

	if err := json.Unmarshal([]byte(text), dest); err != nil {
		return &PipelineError{
			Kind:        KindMalformedGenerationOutput,
			Message:     "failed to decode model output",
			RawResponse: text,
			Cause:       err,
		}
	}
	return nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
