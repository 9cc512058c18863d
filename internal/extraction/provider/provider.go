// Package provider holds the language-model extraction adapters. Each
// adapter tries an ordered list of model variants and returns the first
// structurally valid result; the orchestrating service treats adapters and
// the regex engine uniformly through the Extractor interface.
package provider

import (
	"context"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
)

// Extractor is the single capability every extraction path implements.
// Adapter failures are recoverable by design: the caller moves on to the
// next extractor in its cascade.
type Extractor interface {
	// Name returns the extractor name for logging and audit
	Name() string

	// Extract produces a validated result from normalized résumé text
	Extract(ctx context.Context, text string) (*domain.ExtractionResult, error)
}

// Provider names accepted by the preference configuration
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Model variant fallback order per provider, most capable or cheapest first.
// An adapter short-circuits on the first variant that yields valid JSON.
var (
	openAIModels = []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"}
	geminiModels = []string{"gemini-1.5-flash", "gemini-1.5-pro"}
	groqModels   = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}
)
