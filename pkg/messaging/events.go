package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventProfileExtracted        = "profile.extracted"
	EventProfileExtractionFailed = "profile.extraction.failed"
)

// Exchange names
const (
	ExchangeProfileEvents = "profile.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// ProfileExtractedEvent is emitted after a successful extraction so the
// downstream matching/search system can index the candidate profile.
type ProfileExtractedEvent struct {
	JobID          string `json:"job_id"`
	DocumentFormat string `json:"document_format"`
	Path           string `json:"path"` // provider name or "regex"
	Confidence     int    `json:"confidence"`
	Profile        any    `json:"profile"`
}

// ProfileExtractionFailedEvent is emitted when a job fails with one of the
// surfaced errors (unsupported format, empty document).
type ProfileExtractionFailedEvent struct {
	JobID          string `json:"job_id"`
	DocumentFormat string `json:"document_format"`
	Reason         string `json:"reason"`
}
