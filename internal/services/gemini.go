package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

//go:generate mockgen -source=./gemini.go -destination=./mocks/gemini.mock.go -package=svcmocks

// TextGenerator is the single contract the pipeline has with an LLM.
// An empty string with a nil error is a valid (if useless) answer.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService interface {
	TextGenerator
	Embedder
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	embedModel  string
	temperature float32
	timeout     time.Duration
}

func NewGeminiService(apiKey, modelName, embedModel string, temperature float32, timeout time.Duration) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		modelName:   modelName,
		embedModel:  embedModel,
		temperature: temperature,
		timeout:     timeout,
	}, nil
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, classifyGenerationError(err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, newError(KindGenerationUnavailable, "empty embedding result", nil)
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements TextGenerator.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Printf("❌ Gemini API error (prompt %d chars): %v", len(prompt), err)
		return "", classifyGenerationError(err)
	}

	if resp == nil {
		log.Println("⚠️ Gemini API returned nil response")
		return "", nil
	}

	text := resp.Text()
	if text == "" {
		log.Println("⚠️ No text content in Gemini response")
	}

	return text, nil
}

func classifyGenerationError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindGenerationTimeout, "generation call timed out", err)
	}
	return newError(KindGenerationUnavailable, "generation call failed", err)
}

// GenerateTextWithRetry retries transient generation failures with a
// doubling delay. Timeouts and unavailability are retried, nothing else is.
func GenerateTextWithRetry(ctx context.Context, gen TextGenerator, prompt string, maxAttempts int, initialDelay time.Duration) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	delay := initialDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := gen.GenerateText(ctx, prompt)
		if err == nil {
			return result, nil
		}

		lastErr = err
		switch KindOf(err) {
		case KindGenerationTimeout, KindGenerationUnavailable:
		default:
			return "", err
		}

		if attempt == maxAttempts {
			break
		}

		log.Printf("⚠️ Attempt %d failed: %v. Retrying in %s...", attempt, err, delay)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}
