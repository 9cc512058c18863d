package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
	apperrors "github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

// GeminiAdapter extracts profiles through Google's Gemini API. JSON output
// is requested via the response MIME type, which makes fenced responses rare
// but not impossible, so decoding still strips fences.
type GeminiAdapter struct {
	client  *genai.Client
	models  []string
	timeout time.Duration
	log     *logger.Logger
}

func NewGeminiAdapter(client *genai.Client, models []string, timeout time.Duration, log *logger.Logger) *GeminiAdapter {
	return &GeminiAdapter{
		client:  client,
		models:  models,
		timeout: timeout,
		log:     log,
	}
}

func (a *GeminiAdapter) Name() string { return ProviderGemini }

func (a *GeminiAdapter) Extract(ctx context.Context, text string) (*domain.ExtractionResult, error) {
	var lastErr error
	for _, model := range a.models {
		result, err := a.tryModel(ctx, model, text)
		if err != nil {
			a.log.WithProvider(ProviderGemini).Warn().
				Err(err).
				Str("model", model).
				Msg("Model variant failed")
			lastErr = err
			continue
		}
		a.log.WithProvider(ProviderGemini).Debug().
			Str("model", model).
			Int("confidence", result.Confidence).
			Msg("Model variant succeeded")
		return result, nil
	}
	if lastErr == nil {
		lastErr = apperrors.ProviderCall(ProviderGemini, errors.New("no model variants configured"))
	}
	return nil, lastErr
}

func (a *GeminiAdapter) tryModel(ctx context.Context, modelName, text string) (*domain.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	model := a.client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(text)))
	if err != nil {
		return nil, apperrors.ProviderCall(ProviderGemini, err)
	}

	raw := responseText(resp)
	if raw == "" {
		return nil, apperrors.MalformedResponse(ProviderGemini, errors.New("response contained no text parts"))
	}
	return decodeResult(ProviderGemini, raw)
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
