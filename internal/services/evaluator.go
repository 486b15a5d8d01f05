package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
)

// EvaluatorService scores a queued transcript into structured feedback.
type EvaluatorService interface {
	EvaluateFeedback(ctx context.Context, feedbackID uuid.UUID) error
}

type evaluatorService struct {
	feedbackRepo  repositories.FeedbackRepository
	generator     TextGenerator
	events        EventPublisher
	metrics       *Metrics
	promptBuilder *PromptBuilder
	maxRetries    int
	retryDelay    time.Duration
}

func NewEvaluatorService(
	feedbackRepo repositories.FeedbackRepository,
	generator TextGenerator,
	events EventPublisher,
	metrics *Metrics,
	maxRetries int,
	retryDelay time.Duration,
) EvaluatorService {
	return &evaluatorService{
		feedbackRepo:  feedbackRepo,
		generator:     generator,
		events:        events,
		metrics:       metrics,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		retryDelay:    retryDelay,
	}
}

type FeedbackResult struct {
	TotalScore          float64                `json:"totalScore"`
	CategoryScores      []models.CategoryScore `json:"categoryScores"`
	Strengths           []string               `json:"strengths"`
	AreasForImprovement []string               `json:"areasForImprovement"`
	FinalAssessment     string                 `json:"finalAssessment"`
}

var feedbackSchema = mustCompileSchema("feedback.json", map[string]any{
	"type":     "object",
	"required": []string{"totalScore", "categoryScores", "strengths", "areasForImprovement", "finalAssessment"},
	"properties": map[string]any{
		"totalScore": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"categoryScores": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"name", "score", "comment"},
				"properties": map[string]any{
					"name":    map[string]any{"type": "string"},
					"score":   map[string]any{"type": "number", "minimum": 0, "maximum": 100},
					"comment": map[string]any{"type": "string"},
				},
			},
		},
		"strengths":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"areasForImprovement": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"finalAssessment":     map[string]any{"type": "string"},
	},
})

func (e *evaluatorService) EvaluateFeedback(ctx context.Context, feedbackID uuid.UUID) error {
	claimed, err := e.feedbackRepo.Claim(ctx, feedbackID)
	if err != nil {
		return fmt.Errorf("failed to claim feedback job: %w", err)
	}
	if !claimed {
		log.Printf("⏭️ Feedback job %s is no longer queued, skipping", feedbackID)
		return nil
	}

	log.Printf("🔄 Starting feedback scoring for job ID: %s", feedbackID)

	feedback, err := e.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		return e.fail(ctx, feedbackID, fmt.Errorf("failed to get feedback: %w", err))
	}

	prompt := e.promptBuilder.BuildFeedbackPrompt(feedback.Transcript)
	log.Printf("📝 Feedback prompt length: %d characters", len(prompt))

	response, err := GenerateTextWithRetry(ctx, e.generator, prompt, e.maxRetries, e.retryDelay)
	if err != nil {
		return e.fail(ctx, feedbackID, fmt.Errorf("failed to generate feedback: %w", err))
	}
	log.Printf("✅ Feedback response received: %d characters", len(response))

	result, err := ParseFeedback(response)
	if err != nil {
		log.Printf("❌ Raw feedback output: %s", response)
		return e.fail(ctx, feedbackID, err)
	}

	log.Println("💾 Saving feedback results...")
	updateData := &repositories.FeedbackUpdateData{
		TotalScore:          result.TotalScore,
		CategoryScores:      models.CategoryScores(result.CategoryScores),
		Strengths:           models.StringList(result.Strengths),
		AreasForImprovement: models.StringList(result.AreasForImprovement),
		FinalAssessment:     result.FinalAssessment,
	}
	if err := e.feedbackRepo.UpdateResult(ctx, feedbackID, updateData); err != nil {
		return e.fail(ctx, feedbackID, fmt.Errorf("failed to save results: %w", err))
	}

	feedback.Status = models.StatusCompleted
	feedback.TotalScore = &updateData.TotalScore
	feedback.CategoryScores = updateData.CategoryScores
	feedback.Strengths = updateData.Strengths
	feedback.AreasForImprovement = updateData.AreasForImprovement
	feedback.FinalAssessment = &updateData.FinalAssessment

	if e.events != nil {
		if err := e.events.PublishFeedbackCompleted(ctx, feedback); err != nil {
			log.Printf("⚠️ Failed to publish feedback %s: %v", feedbackID, err)
		}
	}

	e.metrics.ObserveFeedbackJob(string(models.StatusCompleted))
	log.Printf("✅ Feedback scoring completed successfully for job ID: %s", feedbackID)
	return nil
}

func (e *evaluatorService) fail(ctx context.Context, feedbackID uuid.UUID, cause error) error {
	e.metrics.ObserveFeedbackJob(string(models.StatusFailed))
	if err := e.feedbackRepo.UpdateError(ctx, feedbackID, cause.Error()); err != nil {
		log.Printf("⚠️ Failed to record error for feedback %s: %v", feedbackID, err)
	}
	return cause
}

// ParseFeedback decodes a scoring response. Every fixed category must be
// scored exactly once and nothing else may appear.
func ParseFeedback(response string) (*FeedbackResult, error) {
	jsonStr := extractJSON(response)

	var generic any
	if err := json.Unmarshal([]byte(jsonStr), &generic); err != nil {
		return nil, &PipelineError{
			Kind:        KindMalformedGenerationOutput,
			Message:     "feedback output is not valid JSON",
			RawResponse: response,
			Cause:       err,
		}
	}
	if err := feedbackSchema.Validate(generic); err != nil {
		return nil, &PipelineError{
			Kind:        KindSchemaViolation,
			Message:     "feedback output does not match the expected shape",
			RawResponse: response,
			Cause:       err,
		}
	}

	var result FeedbackResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, &PipelineError{
			Kind:        KindMalformedGenerationOutput,
			Message:     "failed to decode feedback output",
			RawResponse: response,
			Cause:       err,
		}
	}

	seen := make(map[string]bool, len(FeedbackCategories))
	for _, c := range result.CategoryScores {
		name := strings.TrimSpace(c.Name)
		if !containsString(FeedbackCategories, name) {
			return nil, schemaViolation(response, "unknown feedback category %q", c.Name)
		}
		if seen[name] {
			return nil, schemaViolation(response, "feedback category %q scored twice", name)
		}
		seen[name] = true
	}
	for _, name := range FeedbackCategories {
		if !seen[name] {
			return nil, schemaViolation(response, "feedback category %q is missing", name)
		}
	}

	return &result, nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
