package release

import (
	"context"
	"slices"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// Ledger records which revisions have been released.
type Ledger struct {
	repository repositories.HistoryRepository
	now        func() time.Time
}

// NewLedger creates a Ledger backed by the given repository.
func NewLedger(repository repositories.HistoryRepository) *Ledger {
	return &Ledger{repository: repository, now: time.Now}
}

// NewLedgerWithClock creates a Ledger using a custom clock.
func NewLedgerWithClock(repository repositories.HistoryRepository, now func() time.Time) *Ledger {
	return &Ledger{repository: repository, now: now}
}

// Sync adds an unreleased record for every commit not in the ledger yet.
// Existing records are left untouched.
func (l *Ledger) Sync(ctx context.Context, commits []entities.Commit) error {
	history, err := l.repository.List(ctx)
	if err != nil {
		return err
	}

	known := make(map[int]struct{}, len(history))
	for _, record := range history {
		known[record.Revision] = struct{}{}
	}

	var records []entities.ReleaseHistoryRecord
	for _, commit := range commits {
		if _, ok := known[commit.Revision]; ok {
			continue
		}
		known[commit.Revision] = struct{}{}
		logger.Debugf("New history record: r%d", commit.Revision)
		records = append(records, entities.ReleaseHistoryRecord{
			Revision: commit.Revision,
			Summary:  commit.Summary(),
		})
	}

	if len(records) == 0 {
		return nil
	}
	return l.repository.Insert(ctx, records)
}

// History returns every record, newest revision first.
func (l *Ledger) History(ctx context.Context) ([]entities.ReleaseHistoryRecord, error) {
	return l.repository.List(ctx)
}

// MarkReleased stamps the revisions with the current time.
func (l *Ledger) MarkReleased(ctx context.Context, revisions []int) error {
	if len(revisions) == 0 {
		logger.Debug("No revision to mark as released")
		return nil
	}
	now := l.now()
	logger.Infof("Marking %v as released", revisions)
	return l.repository.SetReleasedAt(ctx, revisions, &now)
}

// MarkUnreleased clears the release time of the revisions.
func (l *Ledger) MarkUnreleased(ctx context.Context, revisions []int) error {
	if len(revisions) == 0 {
		logger.Debug("No revision to mark as unreleased")
		return nil
	}
	logger.Infof("Marking %v as unreleased", revisions)
	return l.repository.SetReleasedAt(ctx, revisions, nil)
}

// UnreleasedCommits keeps the commits whose ledger record is not released.
func (l *Ledger) UnreleasedCommits(ctx context.Context, latest []entities.Commit) ([]entities.Commit, error) {
	history, err := l.repository.List(ctx)
	if err != nil {
		return nil, err
	}

	unreleased := make(map[int]struct{})
	for _, record := range history {
		if !record.Released() {
			unreleased[record.Revision] = struct{}{}
		}
	}

	var commits []entities.Commit
	for _, commit := range latest {
		if _, ok := unreleased[commit.Revision]; ok {
			commits = append(commits, commit)
		}
	}
	return commits, nil
}

// Reconcile makes the ledger match a user's selection of released revisions:
// unreleased records that are selected become released now, released records
// that are not selected become unreleased.
func (l *Ledger) Reconcile(ctx context.Context, released []int) error {
	history, err := l.repository.List(ctx)
	if err != nil {
		return err
	}

	var toRelease, toUnrelease []int
	for _, record := range history {
		selected := slices.Contains(released, record.Revision)
		switch {
		case !record.Released() && selected:
			toRelease = append(toRelease, record.Revision)
		case record.Released() && !selected:
			toUnrelease = append(toUnrelease, record.Revision)
		}
	}

	if releaseErr := l.MarkReleased(ctx, toRelease); releaseErr != nil {
		return releaseErr
	}
	return l.MarkUnreleased(ctx, toUnrelease)
}
