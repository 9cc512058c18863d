package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

const validResponse = `{"educationLevel": "Master's", "fieldOfStudy": ["Computer Science"], "country": "USA", "skills": ["Python"], "experience": [], "confidence": 80}`

// fakeChatClient returns canned responses keyed by model and records the
// order models were tried in.
type fakeChatClient struct {
	responses map[string]string
	errs      map[string]error
	called    []string
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.called = append(f.called, req.Model)
	if err, ok := f.errs[req.Model]; ok {
		return openai.ChatCompletionResponse{}, err
	}
	content, ok := f.responses[req.Model]
	if !ok {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}, nil
}

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zerolog.Nop()}
}

func TestChatAdapterFirstVariantWins(t *testing.T) {
	client := &fakeChatClient{
		responses: map[string]string{
			"model-a": validResponse,
			"model-b": validResponse,
		},
	}
	adapter := NewChatAdapter("openai", client, []string{"model-a", "model-b"}, time.Second, testLogger())

	result, err := adapter.Extract(context.Background(), "some resume text")
	require.NoError(t, err)
	assert.Equal(t, "Master's", result.EducationLevel)
	assert.Equal(t, []string{"model-a"}, client.called, "must short-circuit on first success")
}

func TestChatAdapterFallsThroughVariants(t *testing.T) {
	client := &fakeChatClient{
		responses: map[string]string{
			"model-a": "not json at all",
			"model-b": validResponse,
		},
	}
	adapter := NewChatAdapter("openai", client, []string{"model-a", "model-b"}, time.Second, testLogger())

	result, err := adapter.Extract(context.Background(), "some resume text")
	require.NoError(t, err)
	assert.Equal(t, 80, result.Confidence)
	assert.Equal(t, []string{"model-a", "model-b"}, client.called)
}

func TestChatAdapterAllVariantsFail(t *testing.T) {
	netErr := errors.New("connection refused")
	client := &fakeChatClient{
		responses: map[string]string{"model-a": "garbage"},
		errs:      map[string]error{"model-b": netErr},
	}
	adapter := NewChatAdapter("groq", client, []string{"model-a", "model-b"}, time.Second, testLogger())

	_, err := adapter.Extract(context.Background(), "some resume text")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrProviderCall), "last error is the network failure")
	assert.True(t, apperrors.Is(err, netErr))
}

func TestChatAdapterEmptyChoices(t *testing.T) {
	client := &fakeChatClient{}
	adapter := NewChatAdapter("openai", client, []string{"model-a"}, time.Second, testLogger())

	_, err := adapter.Extract(context.Background(), "some resume text")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrMalformedResponse))
}

func TestChatAdapterNoVariants(t *testing.T) {
	adapter := NewChatAdapter("openai", &fakeChatClient{}, nil, time.Second, testLogger())

	_, err := adapter.Extract(context.Background(), "some resume text")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrProviderCall))
}

func TestChatAdapterName(t *testing.T) {
	assert.Equal(t, "groq", NewChatAdapter("groq", &fakeChatClient{}, nil, time.Second, testLogger()).Name())
}
