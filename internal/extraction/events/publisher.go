// Package events emits profile lifecycle events for downstream consumers
// (candidate search indexing, matching). Publishing is best-effort: a broker
// hiccup never fails an extraction.
package events

import (
	"context"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
	"github.com/talentflow/talentflow-backend/pkg/logger"
	"github.com/talentflow/talentflow-backend/pkg/messaging"
)

// Publisher emits profile extraction events
type Publisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewPublisher creates an event publisher on the profile events exchange
func NewPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*Publisher, error) {
	pub, err := messaging.NewPublisher(rmq, messaging.ExchangeProfileEvents, "profile-service", log)
	if err != nil {
		return nil, err
	}
	return &Publisher{publisher: pub, logger: log}, nil
}

// ProfileExtracted announces a completed extraction. The job ID doubles as
// the correlation ID so consumers can tie the event back to the poll handle.
func (p *Publisher) ProfileExtracted(ctx context.Context, jobID string, format domain.DocumentFormat, path string, output *domain.ParseOutput) {
	event := messaging.ProfileExtractedEvent{
		JobID:          jobID,
		DocumentFormat: string(format),
		Path:           path,
		Confidence:     output.Confidence,
		Profile:        output,
	}
	ctx = messaging.WithCorrelationID(ctx, jobID)
	if err := p.publisher.Publish(ctx, messaging.EventProfileExtracted, event); err != nil {
		p.logger.WithError(err).Warn().Str("job_id", jobID).Msg("Failed to publish profile extracted event")
	}
}

// ExtractionFailed announces a job that ended in a surfaced error
func (p *Publisher) ExtractionFailed(ctx context.Context, jobID string, format domain.DocumentFormat, reason string) {
	event := messaging.ProfileExtractionFailedEvent{
		JobID:          jobID,
		DocumentFormat: string(format),
		Reason:         reason,
	}
	ctx = messaging.WithCorrelationID(ctx, jobID)
	if err := p.publisher.Publish(ctx, messaging.EventProfileExtractionFailed, event); err != nil {
		p.logger.WithError(err).Warn().Str("job_id", jobID).Msg("Failed to publish extraction failed event")
	}
}
