package provider

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
	apperrors "github.com/talentflow/talentflow-backend/pkg/errors"
)

// resultSchema is the structural contract every model response must satisfy
// after shape normalization. Anything that fails here is a malformed
// response, not a recoverable variation.
var resultSchema = jsonschema.MustCompileString("extraction_result.json", `{
	"type": "object",
	"additionalProperties": false,
	"required": ["educationLevel", "fieldOfStudy", "country", "skills", "experience", "confidence"],
	"properties": {
		"educationLevel": {"type": "string", "minLength": 1},
		"fieldOfStudy": {"type": "array", "minItems": 1, "maxItems": 2, "items": {"type": "string"}},
		"country": {"type": "string", "minLength": 1},
		"skills": {"type": "array", "items": {"type": "string"}},
		"experience": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"properties": {
					"company": {"type": "string"},
					"position": {"type": "string"},
					"duration": {"type": "string"},
					"description": {"type": "string"}
				}
			}
		},
		"education": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"properties": {
					"institution": {"type": "string"},
					"degree": {"type": "string"},
					"field": {"type": "string"},
					"graduationYear": {"type": "string"},
					"gpa": {"type": "string"}
				}
			}
		},
		"confidence": {"type": "integer", "minimum": 0, "maximum": 100}
	}
}`)

// stripCodeFence removes a markdown code fence wrapping the payload.
// Models wrap JSON in fences despite instructions often enough that this
// has to be handled before parsing.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeResult parses a raw model response into a validated ExtractionResult.
// Parsing is strict (no repair of broken JSON) but the shape is lenient:
// scalars where arrays are expected, numbers where strings are expected, and
// missing optional keys are coerced before schema validation.
func decodeResult(providerName, raw string) (*domain.ExtractionResult, error) {
	cleaned := stripCodeFence(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, apperrors.MalformedResponse(providerName, fmt.Errorf("parse response: %w", err))
	}

	normalizeShape(payload)

	if err := resultSchema.Validate(payload); err != nil {
		return nil, apperrors.MalformedResponse(providerName, fmt.Errorf("validate response: %w", err))
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.MalformedResponse(providerName, err)
	}

	var result domain.ExtractionResult
	if err := json.Unmarshal(buf, &result); err != nil {
		return nil, apperrors.MalformedResponse(providerName, err)
	}
	result.Confidence = domain.ClampConfidence(result.Confidence)
	return &result, nil
}

// normalizeShape coerces common model deviations into the canonical wire
// shape in place. Unknown top-level keys are dropped so chatty models do
// not fail schema validation.
func normalizeShape(payload map[string]any) {
	known := map[string]bool{
		"educationLevel": true, "fieldOfStudy": true, "country": true,
		"skills": true, "experience": true, "education": true, "confidence": true,
	}
	for k := range payload {
		if !known[k] {
			delete(payload, k)
		}
	}

	payload["educationLevel"] = coerceString(payload["educationLevel"], domain.DefaultEducationLevel)
	payload["country"] = coerceString(payload["country"], domain.DefaultCountry)

	fields := coerceStringArray(payload["fieldOfStudy"])
	if len(fields) == 0 {
		fields = []any{domain.DefaultField}
	}
	if len(fields) > 2 {
		fields = fields[:2]
	}
	payload["fieldOfStudy"] = fields
	payload["skills"] = coerceStringArray(payload["skills"])

	payload["experience"] = coerceObjectArray(payload["experience"],
		"company", "position", "duration", "description")
	payload["education"] = coerceObjectArray(payload["education"],
		"institution", "degree", "field", "graduationYear", "gpa")

	payload["confidence"] = coerceConfidence(payload["confidence"])
}

func coerceString(v any, fallback string) string {
	switch s := v.(type) {
	case string:
		if strings.TrimSpace(s) != "" {
			return s
		}
	case float64:
		return formatNumber(s)
	}
	return fallback
}

// coerceStringArray accepts an array of strings, a bare string, or garbage,
// and returns a clean []any of strings.
func coerceStringArray(v any) []any {
	switch t := v.(type) {
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			switch s := item.(type) {
			case string:
				if strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			case float64:
				out = append(out, formatNumber(s))
			}
		}
		return out
	case string:
		if strings.TrimSpace(t) != "" {
			return []any{t}
		}
	}
	return []any{}
}

// coerceObjectArray accepts an array of objects or a single bare object and
// returns objects whose listed keys are all strings.
func coerceObjectArray(v any, keys ...string) []any {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		items = []any{t}
	default:
		return []any{}
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		clean := make(map[string]any, len(keys))
		for _, key := range keys {
			clean[key] = coerceString(obj[key], "")
		}
		out = append(out, clean)
	}
	return out
}

func coerceConfidence(v any) float64 {
	switch t := v.(type) {
	case float64:
		return float64(domain.ClampConfidence(int(math.Round(t))))
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return float64(domain.ClampConfidence(int(math.Round(n))))
		}
	}
	return float64(domain.DefaultConfidence)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
