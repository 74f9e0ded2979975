//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sort"
	"time"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// InMemoryHistoryRepository implements repositories.HistoryRepository in memory.
type InMemoryHistoryRepository struct {
	Records map[int]entities.ReleaseHistoryRecord

	ListErr   error
	InsertErr error

	// spy
	Inserted []entities.ReleaseHistoryRecord
	Closed   bool
}

var _ repositories.HistoryRepository = (*InMemoryHistoryRepository)(nil)

// NewInMemoryHistoryRepository creates a ledger holding the given records.
func NewInMemoryHistoryRepository(records ...entities.ReleaseHistoryRecord) *InMemoryHistoryRepository {
	repo := &InMemoryHistoryRepository{Records: make(map[int]entities.ReleaseHistoryRecord)}
	for _, record := range records {
		repo.Records[record.Revision] = record
	}
	return repo
}

// Factory returns a HistoryRepositoryFactory always opening this repository.
func (r *InMemoryHistoryRepository) Factory() repositories.HistoryRepositoryFactory {
	return func(_ string) (repositories.HistoryRepository, error) {
		return r, nil
	}
}

func (r *InMemoryHistoryRepository) List(_ context.Context) ([]entities.ReleaseHistoryRecord, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	records := make([]entities.ReleaseHistoryRecord, 0, len(r.Records))
	for _, record := range r.Records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Revision > records[j].Revision })
	return records, nil
}

func (r *InMemoryHistoryRepository) Insert(_ context.Context, records []entities.ReleaseHistoryRecord) error {
	if r.InsertErr != nil {
		return r.InsertErr
	}
	for _, record := range records {
		r.Records[record.Revision] = record
	}
	r.Inserted = append(r.Inserted, records...)
	return nil
}

func (r *InMemoryHistoryRepository) SetReleasedAt(_ context.Context, revisions []int, at *time.Time) error {
	for _, revision := range revisions {
		record, ok := r.Records[revision]
		if !ok {
			continue
		}
		record.ReleasedAt = at
		r.Records[revision] = record
	}
	return nil
}

func (r *InMemoryHistoryRepository) Close() error {
	r.Closed = true
	return nil
}
