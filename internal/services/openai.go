package services

import (
	"context"
	"log"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIService struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewOpenAIService talks to any OpenAI-compatible chat completion endpoint.
// An empty baseURL means api.openai.com.
func NewOpenAIService(apiKey, baseURL, model string, temperature float32, timeout time.Duration) TextGenerator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &openAIService{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
		timeout:     timeout,
	}
}

func (o *openAIService) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model:       openai.F(openai.ChatModel(o.model)),
		Temperature: openai.F(float64(o.temperature)),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Printf("❌ OpenAI API error (prompt %d chars): %v", len(prompt), err)
		return "", classifyGenerationError(err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		log.Println("⚠️ OpenAI API returned no choices")
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
