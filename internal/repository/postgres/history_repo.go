package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"clausegenie/internal/domain"
)

type historyRepo struct {
	db *sqlx.DB
}

// NewHistoryRepo creates a PostgreSQL-backed HistoryRepository.
func NewHistoryRepo(db *sqlx.DB) *historyRepo {
	return &historyRepo{db: db}
}

// Upsert writes one analysis record keyed by its timestamp-derived id
// within the caller's identity namespace.
func (r *historyRepo) Upsert(ctx context.Context, rec *domain.HistoryRecord) error {
	query := `
		INSERT INTO analysis_history (
			id, user_identity, document_name, summary,
			clause_count, first_clause_title, created_at
		) VALUES (
			:id, :user_identity, :document_name, :summary,
			:clause_count, :first_clause_title, NOW()
		)
		ON CONFLICT (id, user_identity) DO UPDATE SET
			document_name = EXCLUDED.document_name,
			summary = EXCLUDED.summary,
			clause_count = EXCLUDED.clause_count,
			first_clause_title = EXCLUDED.first_clause_title`

	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("upserting history record: %w", err)
	}
	return nil
}

// ListRecent returns the caller's most recent records, newest first.
func (r *historyRepo) ListRecent(ctx context.Context, identity string, limit int) ([]domain.HistoryRecord, error) {
	query := `
		SELECT id, user_identity, document_name, summary,
		       clause_count, first_clause_title, created_at
		FROM analysis_history
		WHERE user_identity = $1
		ORDER BY created_at DESC
		LIMIT $2`

	records := []domain.HistoryRecord{}
	if err := r.db.SelectContext(ctx, &records, query, identity, limit); err != nil {
		return nil, fmt.Errorf("listing history records: %w", err)
	}
	return records, nil
}
