package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/interview-prep/internal/models"
)

func TestParameterPromptsEmbedEveryParameter(t *testing.T) {
	pb := NewPromptBuilder()
	req := models.ParameterRequest{
		Role:          "Backend Engineer",
		Level:         "mid",
		TechStack:     []string{"Go", "Postgres", "Kafka"},
		Focus:         models.FocusTechnical,
		QuestionCount: 3,
		RequesterID:   "user-1",
	}

	prompts := map[string]string{
		"open-ended":      pb.BuildOpenEndedPrompt(req),
		"multiple-choice": pb.BuildMultipleChoicePrompt(req, 25),
	}

	for name, prompt := range prompts {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, prompt, "Backend Engineer")
			assert.Contains(t, prompt, "mid")
			for _, tech := range req.TechStack {
				assert.Contains(t, prompt, tech)
			}
			assert.Contains(t, prompt, "technical")
			assert.Contains(t, prompt, "/ or *")
			assert.Contains(t, prompt, "JSON array")
		})
	}

	assert.Contains(t, prompts["open-ended"], "exactly 3 open-ended questions")
	assert.Contains(t, prompts["multiple-choice"], "exactly 25 multiple-choice questions")
	assert.Contains(t, prompts["multiple-choice"], `"correctAnswer"`)
}

func TestParameterPromptsAreDeterministic(t *testing.T) {
	pb := NewPromptBuilder()
	req := models.ParameterRequest{Role: "SRE", Level: "senior", TechStack: []string{"Kubernetes"}, Focus: models.FocusMixed, QuestionCount: 5}

	assert.Equal(t, pb.BuildOpenEndedPrompt(req), pb.BuildOpenEndedPrompt(req))
	assert.Equal(t, pb.BuildMultipleChoicePrompt(req, 25), pb.BuildMultipleChoicePrompt(req, 25))
}

func TestResumePromptsEmbedResumeText(t *testing.T) {
	pb := NewPromptBuilder()
	resume := "Jane Doe\n\nBuilt a payments platform in Go."

	open := pb.BuildResumeOpenEndedPrompt(resume, 5)
	mcq := pb.BuildResumeMultipleChoicePrompt(resume, 10)

	assert.Contains(t, open, resume)
	assert.Contains(t, open, "exactly 5 open-ended questions")
	assert.Contains(t, mcq, resume)
	assert.Contains(t, mcq, "Ensure exactly 10 questions are generated.")
}

func TestBuildInterviewerScript(t *testing.T) {
	pb := NewPromptBuilder()
	script := pb.BuildInterviewerScript([]string{"Tell me about yourself.", "Why this role?"})
	assert.Equal(t, "- Tell me about yourself.\n- Why this role?", script)
}

func TestBuildFeedbackPromptListsCategoriesAndTranscript(t *testing.T) {
	pb := NewPromptBuilder()
	prompt := pb.BuildFeedbackPrompt([]models.TranscriptLine{
		{Role: "assistant", Content: "What is a goroutine?"},
		{Role: "user", Content: "A lightweight thread managed by the Go runtime."},
	})

	assert.Contains(t, prompt, "- assistant: What is a goroutine?\n")
	assert.Contains(t, prompt, "- user: A lightweight thread managed by the Go runtime.\n")
	for _, category := range FeedbackCategories {
		assert.Equal(t, 2, strings.Count(prompt, category), category)
	}
}
