package port

import (
	"context"

	"clausegenie/internal/domain"
)

// HistoryRepository persists compact analysis records. Writes are
// best-effort and strictly downstream of user-visible success; the read
// side exists only for diagnostic observation.
type HistoryRepository interface {
	Upsert(ctx context.Context, rec *domain.HistoryRecord) error
	ListRecent(ctx context.Context, identity string, limit int) ([]domain.HistoryRecord, error)
}
