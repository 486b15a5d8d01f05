package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/interview-prep/internal/config"
	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/repositories"
)

// InterviewGenerator turns job parameters or a résumé into a validated,
// persisted interview. Every failure comes back as a *PipelineError and
// nothing is written unless both question sets validated.
type InterviewGenerator interface {
	GenerateFromParameters(ctx context.Context, req models.ParameterRequest) (*models.Interview, error)
	GenerateFromResume(ctx context.Context, req models.ResumeRequest) (*models.Interview, error)
}

type interviewGenerator struct {
	extractor     TextExtractor
	generator     TextGenerator
	interviewRepo repositories.InterviewRepository
	promptBuilder *PromptBuilder
	flows         config.FlowsConfig

	// optional, nil disables
	similarity SimilarityService
	events     EventPublisher
	metrics    *Metrics

	coverPicker func() string
	sideEffects time.Duration
}

func NewInterviewGenerator(
	extractor TextExtractor,
	generator TextGenerator,
	interviewRepo repositories.InterviewRepository,
	flows config.FlowsConfig,
	similarity SimilarityService,
	events EventPublisher,
	metrics *Metrics,
) InterviewGenerator {
	return &interviewGenerator{
		extractor:     extractor,
		generator:     generator,
		interviewRepo: interviewRepo,
		promptBuilder: NewPromptBuilder(),
		flows:         flows,
		similarity:    similarity,
		events:        events,
		metrics:       metrics,
		coverPicker:   RandomInterviewCover,
		sideEffects:   15 * time.Second,
	}
}

// GenerateFromParameters implements InterviewGenerator.
func (g *interviewGenerator) GenerateFromParameters(ctx context.Context, req models.ParameterRequest) (interview *models.Interview, err error) {
	ctx = context.WithoutCancel(ctx)
	flow := g.flows.Parameters
	start := time.Now()
	defer func() { g.finish(flow, start, err) }()

	log.Printf("📥 [%s] Received request from %s: %s (%s, %s)", flow.Name, req.RequesterID, req.Role, req.Level, req.Focus)
	if err := validateParameterRequest(req, flow); err != nil {
		return nil, err
	}

	openPrompt := g.promptBuilder.BuildOpenEndedPrompt(req)
	mcqPrompt := g.promptBuilder.BuildMultipleChoicePrompt(req, flow.MCQCount)

	questions, mcqs, err := g.generateBatches(ctx, flow, openPrompt, mcqPrompt)
	if err != nil {
		return nil, err
	}

	interview = &models.Interview{
		Role:       req.Role,
		Type:       string(req.Focus),
		Level:      req.Level,
		TechStack:  models.StringList(req.TechStack),
		Questions:  questions,
		MCQs:       mcqs,
		UserID:     req.RequesterID,
		Finalized:  true,
		CoverImage: g.coverPicker(),
		CreatedAt:  time.Now().UTC(),
	}

	if err := g.persist(ctx, flow, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

// GenerateFromResume implements InterviewGenerator.
func (g *interviewGenerator) GenerateFromResume(ctx context.Context, req models.ResumeRequest) (interview *models.Interview, err error) {
	ctx = context.WithoutCancel(ctx)
	flow := g.flows.Resume
	start := time.Now()
	defer func() { g.finish(flow, start, err) }()

	log.Printf("📥 [%s] Received résumé %q (%s, %d bytes) from %s", flow.Name, req.FileName, req.MediaType, len(req.Document), req.RequesterID)
	if strings.TrimSpace(req.RequesterID) == "" {
		return nil, invalidInput("userid is required")
	}
	if !flow.Accepts(req.MediaType) {
		return nil, invalidInput("unsupported document type %q, accepted: %s", req.MediaType, strings.Join(flow.AcceptedMediaTypes, ", "))
	}

	log.Printf("📄 [%s] Extracting résumé text...", flow.Name)
	extracted, err := g.extractor.Extract(req.Document, req.MediaType)
	if err != nil {
		return nil, err
	}

	resumeText := strings.TrimSpace(extracted.Content)
	if resumeText == "" {
		return nil, invalidInput("no text could be extracted from the résumé")
	}
	resumeText = g.truncateResume(resumeText, flow.MaxResumeChars)

	openPrompt := g.promptBuilder.BuildResumeOpenEndedPrompt(resumeText, flow.OpenEndedCount)
	mcqPrompt := g.promptBuilder.BuildResumeMultipleChoicePrompt(resumeText, flow.MCQCount)

	questions, mcqs, err := g.generateBatches(ctx, flow, openPrompt, mcqPrompt)
	if err != nil {
		return nil, err
	}

	interview = &models.Interview{
		Role:       flow.DefaultRole,
		Type:       flow.DefaultType,
		Level:      flow.DefaultLevel,
		TechStack:  models.StringList{},
		Questions:  questions,
		MCQs:       mcqs,
		UserID:     req.RequesterID,
		Finalized:  true,
		CoverImage: g.coverPicker(),
		CreatedAt:  time.Now().UTC(),
	}

	if err := g.persist(ctx, flow, interview); err != nil {
		return nil, err
	}
	return interview, nil
}

func validateParameterRequest(req models.ParameterRequest, flow config.FlowConfig) error {
	switch {
	case strings.TrimSpace(req.Role) == "":
		return invalidInput("role is required")
	case strings.TrimSpace(req.Level) == "":
		return invalidInput("level is required")
	case len(req.TechStack) == 0:
		return invalidInput("techstack is required")
	case !req.Focus.Valid():
		return invalidInput("type must be one of behavioral, technical, mixed, got %q", req.Focus)
	case req.QuestionCount <= 0:
		return invalidInput("amount must be a positive number")
	case req.QuestionCount > flow.MaxQuestionCount:
		return invalidInput("amount must be at most %d, got %d", flow.MaxQuestionCount, req.QuestionCount)
	case strings.TrimSpace(req.RequesterID) == "":
		return invalidInput("userid is required")
	}
	return nil
}

// generateBatches issues both generation calls at once. The first failure
// cancels the other call and is the one reported.
func (g *interviewGenerator) generateBatches(ctx context.Context, flow config.FlowConfig, openPrompt, mcqPrompt string) ([]models.OpenEndedQuestion, []models.MultipleChoiceQuestion, error) {
	var (
		questions []models.OpenEndedQuestion
		mcqs      []models.MultipleChoiceQuestion
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("🤖 [%s] Generating open-ended questions (prompt %d chars)...", flow.Name, len(openPrompt))
		raw, err := g.generate(gctx, openPrompt)
		if err != nil {
			return err
		}

		parsed, err := ParseOpenEndedQuestions(NormalizeResponse(raw))
		if err != nil {
			return withRawResponse(err, raw)
		}
		questions = parsed
		log.Printf("✅ [%s] %d open-ended questions validated", flow.Name, len(parsed))
		return nil
	})

	group.Go(func() error {
		log.Printf("🤖 [%s] Generating %d multiple-choice questions (prompt %d chars)...", flow.Name, flow.MCQCount, len(mcqPrompt))
		raw, err := g.generate(gctx, mcqPrompt)
		if err != nil {
			return err
		}

		parsed, err := ParseMultipleChoiceQuestions(NormalizeResponse(raw), flow.MCQCount)
		if err != nil {
			return withRawResponse(err, raw)
		}
		mcqs = parsed
		log.Printf("✅ [%s] %d multiple-choice questions validated", flow.Name, len(parsed))
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return questions, mcqs, nil
}

func (g *interviewGenerator) generate(ctx context.Context, prompt string) (string, error) {
	raw, err := g.generator.GenerateText(ctx, prompt)
	if err == nil {
		return raw, nil
	}
	if KindOf(err) != "" {
		return "", err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "", newError(KindGenerationTimeout, "generation call timed out", err)
	}
	return "", newError(KindGenerationUnavailable, "generation call failed", err)
}

// withRawResponse replaces the normalized text attached by the validator
// with what the model actually returned.
func withRawResponse(err error, raw string) error {
	var pe *PipelineError
	if errors.As(err, &pe) {
		pe.RawResponse = raw
	}
	return err
}

func (g *interviewGenerator) persist(ctx context.Context, flow config.FlowConfig, interview *models.Interview) error {
	log.Printf("💾 [%s] Saving interview to %s...", flow.Name, flow.Collection)
	if _, err := g.interviewRepo.Add(ctx, flow.Collection, interview); err != nil {
		return classifyStorageError("failed to save interview", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.sideEffects)
	defer cancel()

	if g.similarity != nil {
		if err := g.similarity.Index(ctx, interview); err != nil {
			log.Printf("⚠️ [%s] Failed to index interview %s: %v", flow.Name, interview.ID, err)
		}
	}
	if g.events != nil {
		if err := g.events.PublishInterviewCreated(ctx, flow.Collection, interview); err != nil {
			log.Printf("⚠️ [%s] Failed to publish interview %s: %v", flow.Name, interview.ID, err)
		}
	}
	return nil
}

func (g *interviewGenerator) finish(flow config.FlowConfig, start time.Time, err error) {
	elapsed := time.Since(start)
	if err == nil {
		g.metrics.ObserveGeneration(flow.Name, "success", elapsed)
		log.Printf("✅ [%s] Interview generated in %s", flow.Name, elapsed.Round(time.Millisecond))
		return
	}

	g.metrics.ObserveGeneration(flow.Name, string(KindOf(err)), elapsed)
	log.Printf("❌ [%s] Generation failed after %s: %v", flow.Name, elapsed.Round(time.Millisecond), err)
	if raw := RawResponseOf(err); raw != "" {
		log.Printf("❌ [%s] Raw model output: %s", flow.Name, raw)
	}
}

func (g *interviewGenerator) truncateResume(text string, maxChars int) string {
	truncated := TrimToBoundary(text, maxChars)
	if truncated != text {
		log.Printf("✂️ Résumé text truncated from %d to %d characters", utf8.RuneCountInString(text), utf8.RuneCountInString(truncated))
	}
	return truncated
}
