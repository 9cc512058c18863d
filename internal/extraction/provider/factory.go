package provider

import (
	"context"
	"sync"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/talentflow/talentflow-backend/pkg/config"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

var (
	buildOnce     sync.Once
	builtAdapters []Extractor
)

// BuildAdapters constructs the ordered provider cascade from configuration.
// Providers without credentials are skipped. The result is built once per
// process; subsequent calls return the same slice.
func BuildAdapters(ctx context.Context, cfg config.ProvidersConfig, log *logger.Logger) []Extractor {
	buildOnce.Do(func() {
		builtAdapters = buildAdapters(ctx, cfg, log)
	})
	return builtAdapters
}

func buildAdapters(ctx context.Context, cfg config.ProvidersConfig, log *logger.Logger) []Extractor {
	var adapters []Extractor

	if cfg.OpenAIAPIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" {
			clientCfg.BaseURL = cfg.OpenAIBaseURL
		}
		adapters = append(adapters, NewChatAdapter(
			ProviderOpenAI,
			openai.NewClientWithConfig(clientCfg),
			openAIModels,
			cfg.RequestTimeout,
			log,
		))
	}

	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			// A broken provider never blocks the rest of the cascade
			log.WithProvider(ProviderGemini).Warn().Err(err).Msg("Skipping provider, client construction failed")
		} else {
			adapters = append(adapters, NewGeminiAdapter(client, geminiModels, cfg.RequestTimeout, log))
		}
	}

	if cfg.GroqAPIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.GroqAPIKey)
		clientCfg.BaseURL = cfg.GroqBaseURL
		adapters = append(adapters, NewChatAdapter(
			ProviderGroq,
			openai.NewClientWithConfig(clientCfg),
			groqModels,
			cfg.RequestTimeout,
			log,
		))
	}

	if cfg.Preferred != "" {
		adapters = moveToFront(adapters, cfg.Preferred)
	}

	for _, a := range adapters {
		log.WithProvider(a.Name()).Info().Msg("Provider adapter registered")
	}
	return adapters
}

// moveToFront reorders the cascade so the named provider is tried first,
// preserving the relative order of the others.
func moveToFront(adapters []Extractor, name string) []Extractor {
	for i, a := range adapters {
		if a.Name() == name {
			reordered := make([]Extractor, 0, len(adapters))
			reordered = append(reordered, a)
			reordered = append(reordered, adapters[:i]...)
			return append(reordered, adapters[i+1:]...)
		}
	}
	return adapters
}
