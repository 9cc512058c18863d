package provider

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
	apperrors "github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

// ChatClient is the subset of the OpenAI SDK the adapter needs. Groq speaks
// the same chat-completions protocol, so one adapter covers both by pointing
// the client at a different base URL.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatAdapter extracts profiles through an OpenAI-compatible chat API,
// falling through its model variants in order.
type ChatAdapter struct {
	name    string
	client  ChatClient
	models  []string
	timeout time.Duration
	log     *logger.Logger
}

func NewChatAdapter(name string, client ChatClient, models []string, timeout time.Duration, log *logger.Logger) *ChatAdapter {
	return &ChatAdapter{
		name:    name,
		client:  client,
		models:  models,
		timeout: timeout,
		log:     log,
	}
}

func (a *ChatAdapter) Name() string { return a.name }

// Extract tries each model variant in order and returns the first valid
// result. When every variant fails, the last error is returned so the
// caller sees the most recent failure mode.
func (a *ChatAdapter) Extract(ctx context.Context, text string) (*domain.ExtractionResult, error) {
	var lastErr error
	for _, model := range a.models {
		result, err := a.tryModel(ctx, model, text)
		if err != nil {
			a.log.WithProvider(a.name).Warn().
				Err(err).
				Str("model", model).
				Msg("Model variant failed")
			lastErr = err
			continue
		}
		a.log.WithProvider(a.name).Debug().
			Str("model", model).
			Int("confidence", result.Confidence).
			Msg("Model variant succeeded")
		return result, nil
	}
	if lastErr == nil {
		lastErr = apperrors.ProviderCall(a.name, errors.New("no model variants configured"))
	}
	return nil, lastErr
}

func (a *ChatAdapter) tryModel(ctx context.Context, model, text string) (*domain.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text)},
		},
	})
	if err != nil {
		return nil, apperrors.ProviderCall(a.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.MalformedResponse(a.name, errors.New("response contained no choices"))
	}
	return decodeResult(a.name, resp.Choices[0].Message.Content)
}
