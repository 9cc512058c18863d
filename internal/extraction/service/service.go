package service

import (
	"context"
	"strings"
	"time"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
	"github.com/talentflow/talentflow-backend/internal/extraction/events"
	"github.com/talentflow/talentflow-backend/internal/extraction/normalizer"
	"github.com/talentflow/talentflow-backend/internal/extraction/provider"
	"github.com/talentflow/talentflow-backend/internal/extraction/repository"
	"github.com/talentflow/talentflow-backend/internal/extraction/storage"
	"github.com/talentflow/talentflow-backend/internal/extraction/textextract"
	apperrors "github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

// pathPlaceholder marks results that came from the safe-default placeholder
// rather than any extraction path.
const pathPlaceholder = "placeholder"

// Service orchestrates résumé extraction: decode text → normalize →
// provider cascade → regex fallback. Audit and events are optional; a nil
// repository or publisher simply disables that side channel.
type Service struct {
	texts    textextract.Extractor
	adapters []provider.Extractor
	fallback provider.Extractor
	jobs     *storage.JobStore
	audit    *repository.AuditRepository
	events   *events.Publisher
	log      *logger.Logger
}

// NewService creates a new extraction service
func NewService(
	texts textextract.Extractor,
	adapters []provider.Extractor,
	fallback provider.Extractor,
	jobs *storage.JobStore,
	audit *repository.AuditRepository,
	eventPub *events.Publisher,
	log *logger.Logger,
) *Service {
	return &Service{
		texts:    texts,
		adapters: adapters,
		fallback: fallback,
		jobs:     jobs,
		audit:    audit,
		events:   eventPub,
		log:      log.WithComponent("extraction-service"),
	}
}

// Parse runs the full extraction pipeline over a résumé document. Only two
// failures surface to the caller: an unsupported format and an effectively
// empty document. Everything else degrades to a fixed placeholder profile so
// an upload is never rejected because extraction had a bad day.
func (s *Service) Parse(ctx context.Context, data []byte, format domain.DocumentFormat) (*domain.ParseOutput, error) {
	output, _, err := s.parse(ctx, data, format)
	return output, err
}

func (s *Service) parse(ctx context.Context, data []byte, format domain.DocumentFormat) (output *domain.ParseOutput, path string, err error) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("extraction panicked, returning placeholder profile")
			output = domain.SafeDefault()
			path = pathPlaceholder
			err = nil
			s.recordOutcome(format, path, output, time.Since(started))
		}
	}()

	if !format.Valid() {
		return nil, "", apperrors.UnsupportedFormat(string(format))
	}

	text, extractErr := s.texts.ExtractText(ctx, data, format)
	if extractErr != nil {
		s.log.Warn().Err(extractErr).
			Str("format", string(format)).
			Msg("text extraction failed, returning placeholder profile")
		output = domain.SafeDefault()
		s.recordOutcome(format, pathPlaceholder, output, time.Since(started))
		return output, pathPlaceholder, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, "", apperrors.EmptyDocument()
	}

	normalized := normalizer.Normalize(text)

	result, path := s.runCascade(ctx, normalized)
	if path == pathPlaceholder {
		// The placeholder carries its fixed confidence, the fallback
		// marker and an empty preview
		output = domain.SafeDefault()
	} else {
		result.Confidence = domain.ClampConfidence(result.Confidence)
		output = &domain.ParseOutput{
			ExtractionResult: *result,
			TextPreview:      normalizer.Preview(normalized, domain.TextPreviewLimit),
		}
	}

	s.recordOutcome(format, path, output, time.Since(started))

	s.log.Info().
		Str("format", string(format)).
		Str("path", path).
		Int("confidence", output.Confidence).
		Int64("duration_ms", time.Since(started).Milliseconds()).
		Msg("extraction completed")

	return output, path, nil
}

// runCascade tries each provider adapter in order and falls through to the
// deterministic engine. Exactly one path produces the result; outputs are
// never merged. Returns the result and the name of the path that won.
func (s *Service) runCascade(ctx context.Context, text string) (*domain.ExtractionResult, string) {
	for _, adapter := range s.adapters {
		s.log.Info().
			Str("provider", adapter.Name()).
			Msg("trying provider extraction")

		result, err := adapter.Extract(ctx, text)
		if err == nil {
			s.log.Info().
				Str("provider", adapter.Name()).
				Msg("provider succeeded")
			return result, adapter.Name()
		}
		s.log.Warn().Err(err).
			Str("provider", adapter.Name()).
			Msg("provider failed, trying next")
	}

	// The engine cannot fail: every input resolves to some result
	result, err := s.fallback.Extract(ctx, text)
	if err != nil || result == nil {
		s.log.Error().Err(err).Msg("fallback engine returned no result")
		safe := domain.SafeDefault()
		return &safe.ExtractionResult, pathPlaceholder
	}
	return result, s.fallback.Name()
}

// StartExtraction creates an extraction job and processes the résumé
// asynchronously. Returns the job immediately so the caller can poll.
func (s *Service) StartExtraction(ctx context.Context, data []byte, format domain.DocumentFormat) (*domain.ExtractionJob, error) {
	if !format.Valid() {
		return nil, apperrors.UnsupportedFormat(string(format))
	}

	jobID := storage.NewJobID()
	job := &domain.ExtractionJob{
		JobID:     jobID,
		Status:    domain.StatusProcessing,
		Format:    format,
		CreatedAt: time.Now(),
	}
	s.jobs.StoreJob(job)

	go s.processAsync(jobID, data, format)

	return s.jobs.GetJob(jobID), nil
}

// processAsync runs extraction in a background goroutine with a detached
// context so request cancellation does not kill processing.
func (s *Service) processAsync(jobID string, data []byte, format domain.DocumentFormat) {
	bgCtx := context.Background()
	log := s.log.WithJobID(jobID)

	output, path, err := s.parse(bgCtx, data, format)
	if err != nil {
		s.jobs.UpdateJob(jobID, func(j *domain.ExtractionJob) {
			j.Status = domain.StatusFailed
			j.Error = err.Error()
		})
		if s.events != nil {
			s.events.ExtractionFailed(bgCtx, jobID, format, err.Error())
		}
		log.Error().Err(err).Msg("extraction job failed")
		return
	}

	s.jobs.UpdateJob(jobID, func(j *domain.ExtractionJob) {
		j.Status = domain.StatusCompleted
		j.Result = output
	})

	if s.events != nil {
		s.events.ProfileExtracted(bgCtx, jobID, format, path, output)
	}

	log.Info().
		Str("path", path).
		Int("confidence", output.Confidence).
		Msg("extraction job completed")
}

// GetJob retrieves an extraction job by ID
func (s *Service) GetJob(jobID string) *domain.ExtractionJob {
	return s.jobs.GetJob(jobID)
}

// recordOutcome persists an audit row when a database is configured.
// Best-effort and asynchronous; failures are logged, never surfaced.
func (s *Service) recordOutcome(format domain.DocumentFormat, path string, output *domain.ParseOutput, elapsed time.Duration) {
	if s.audit == nil {
		return
	}

	audit := &repository.ExtractionAudit{
		Format:     string(format),
		Path:       path,
		Confidence: output.Confidence,
		Fallback:   output.Fallback,
		DurationMs: elapsed.Milliseconds(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.audit.Create(ctx, audit); err != nil {
			s.log.Warn().Err(err).Msg("failed to write extraction audit")
		}
	}()
}
