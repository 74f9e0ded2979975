package repositories

import (
	"context"
	"time"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// HistoryRepository persists the release ledger.
type HistoryRepository interface {
	// List returns every record sorted by revision, newest first.
	List(ctx context.Context) ([]entities.ReleaseHistoryRecord, error)

	// Insert adds records. Callers make sure revisions are not stored yet.
	Insert(ctx context.Context, records []entities.ReleaseHistoryRecord) error

	// SetReleasedAt sets (or clears, when at is nil) the release time of the revisions.
	SetReleasedAt(ctx context.Context, revisions []int, at *time.Time) error

	// Close releases the underlying store.
	Close() error
}

// HistoryRepositoryFactory opens the ledger stored in a directory.
type HistoryRepositoryFactory func(dir string) (HistoryRepository, error)
