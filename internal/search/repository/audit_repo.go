package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ai-search-engine/search-backend/internal/search/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const DefaultAuditTable = "search_audit"

// AuditRepository stores search audit records in Postgres
type AuditRepository struct {
	pool  *pgxpool.Pool
	name  string
	table string // quoted identifier
}

// NewAuditRepository creates a repository writing to table (DefaultAuditTable when empty).
func NewAuditRepository(pool *pgxpool.Pool, table string) *AuditRepository {
	if table == "" {
		table = DefaultAuditTable
	}
	return &AuditRepository{
		pool:  pool,
		name:  table,
		table: pq.QuoteIdentifier(table),
	}
}

// EnsureSchema creates the audit table and its index if missing.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	q := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    id          UUID PRIMARY KEY,
    request_id  TEXT NOT NULL DEFAULT '',
    query       TEXT NOT NULL,
    outcome     TEXT NOT NULL,
    status_code INTEGER NOT NULL,
    latency_ms  BIGINT NOT NULL,
    error       TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`, r.table)
	if _, err := r.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}

	idx := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (created_at);`,
		pq.QuoteIdentifier(r.name+"_created_at_idx"), r.table)
	if _, err := r.pool.Exec(ctx, idx); err != nil {
		return fmt.Errorf("failed to create audit index: %w", err)
	}
	return nil
}

// Record inserts one audit record, filling in ID and CreatedAt when unset.
func (r *AuditRepository) Record(ctx context.Context, a *domain.SearchAudit) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	q := fmt.Sprintf(`
INSERT INTO %s (id, request_id, query, outcome, status_code, latency_ms, error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`, r.table)
	_, err := r.pool.Exec(ctx, q,
		a.ID, a.RequestID, a.Query, string(a.Outcome), a.StatusCode, a.LatencyMs, a.Error, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

// DeleteOlderThan removes records created before cutoff and returns how many were deleted.
func (r *AuditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := fmt.Sprintf(`DELETE FROM %s WHERE created_at < $1;`, r.table)
	tag, err := r.pool.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit records: %w", err)
	}
	return tag.RowsAffected(), nil
}
