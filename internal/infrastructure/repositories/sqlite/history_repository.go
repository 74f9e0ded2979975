package sqlite

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// HistoryFileName is the ledger database created in the release manager directory.
const HistoryFileName = "packman_release.db"

// HistoryRepository stores the release ledger of a project.
type HistoryRepository struct {
	*store
}

// NewHistoryRepository opens (or creates) the ledger in dir.
func NewHistoryRepository(dir string) (repositories.HistoryRepository, error) {
	s, err := openStore(filepath.Join(dir, HistoryFileName))
	if err != nil {
		return nil, err
	}
	return &HistoryRepository{store: s}, nil
}

// List returns every record, newest revision first.
func (r *HistoryRepository) List(ctx context.Context) ([]entities.ReleaseHistoryRecord, error) {
	docs, err := r.list(ctx, entities.SchemeHistory)
	if err != nil {
		return nil, err
	}

	records := make([]entities.ReleaseHistoryRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.(entities.HistoryDocument).ReleaseHistoryRecord) //nolint:forcetypeassert // decoded by scheme
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Revision > records[j].Revision
	})
	return records, nil
}

func (r *HistoryRepository) Insert(ctx context.Context, records []entities.ReleaseHistoryRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, record := range records {
		if putErr := r.put(ctx, tx, entities.HistoryDocument{ReleaseHistoryRecord: record}); putErr != nil {
			return putErr
		}
	}
	return tx.Commit()
}

// SetReleasedAt updates the stored records of the revisions. Revisions
// without a record are ignored.
func (r *HistoryRepository) SetReleasedAt(ctx context.Context, revisions []int, at *time.Time) error {
	records, err := r.List(ctx)
	if err != nil {
		return err
	}
	byRevision := make(map[string]entities.ReleaseHistoryRecord, len(records))
	for _, record := range records {
		byRevision[strconv.Itoa(record.Revision)] = record
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, revision := range revisions {
		record, ok := byRevision[strconv.Itoa(revision)]
		if !ok {
			continue
		}
		record.ReleasedAt = at
		if putErr := r.put(ctx, tx, entities.HistoryDocument{ReleaseHistoryRecord: record}); putErr != nil {
			return putErr
		}
	}
	return tx.Commit()
}
