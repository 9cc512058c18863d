package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow-backend/pkg/database"
)

// ExtractionAudit records one completed parse for reporting. It carries no
// résumé content, only metadata about how the extraction went.
type ExtractionAudit struct {
	ID         string    `db:"id"`
	Format     string    `db:"format"`
	Path       string    `db:"path"`
	Confidence int       `db:"confidence"`
	Fallback   bool      `db:"fallback"`
	DurationMs int64     `db:"duration_ms"`
	CreatedAt  time.Time `db:"created_at"`
}

// AuditRepository handles extraction audit persistence
type AuditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts a new audit entry
func (r *AuditRepository) Create(ctx context.Context, audit *ExtractionAudit) error {
	if audit.ID == "" {
		audit.ID = uuid.New().String()
	}

	query := `
		INSERT INTO extraction_audits (id, format, path, confidence, fallback, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		audit.ID,
		audit.Format,
		audit.Path,
		audit.Confidence,
		audit.Fallback,
		audit.DurationMs,
	).Scan(&audit.CreatedAt)
}

// ListRecent returns the most recent audit entries, newest first
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*ExtractionAudit, error) {
	query := `
		SELECT id, format, path, confidence, fallback, duration_ms, created_at
		FROM extraction_audits
		ORDER BY created_at DESC
		LIMIT $1
	`

	var audits []*ExtractionAudit
	if err := r.db.SelectContext(ctx, &audits, query, limit); err != nil {
		return nil, err
	}
	return audits, nil
}

// FallbackRate returns the share of extractions since the cutoff that ended
// on a fallback path, as a value in [0,1].
func (r *AuditRepository) FallbackRate(ctx context.Context, since time.Time) (float64, error) {
	query := `
		SELECT COALESCE(AVG(CASE WHEN fallback THEN 1.0 ELSE 0.0 END), 0)
		FROM extraction_audits
		WHERE created_at >= $1
	`

	var rate float64
	if err := r.db.GetContext(ctx, &rate, query, since); err != nil {
		return 0, err
	}
	return rate, nil
}
