package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
	"github.com/rios0rios0/packman/internal/release"
)

// History is the interface for the release ledger commands.
type History interface {
	List(ctx context.Context) ([]entities.ReleaseHistoryRecord, error)
	Sync(ctx context.Context) ([]entities.ReleaseHistoryRecord, error)
	Release(ctx context.Context, revisions []int) error
	Unrelease(ctx context.Context, revisions []int) error
	Reconcile(ctx context.Context, released []int) error
}

// HistoryCommand reads and updates the release ledger of the project.
type HistoryCommand struct {
	sessions      *SessionLoader
	openHistories repositories.HistoryRepositoryFactory
}

// NewHistoryCommand creates a new HistoryCommand.
func NewHistoryCommand(
	sessions *SessionLoader,
	openHistories repositories.HistoryRepositoryFactory,
) *HistoryCommand {
	return &HistoryCommand{sessions: sessions, openHistories: openHistories}
}

func (it *HistoryCommand) List(ctx context.Context) ([]entities.ReleaseHistoryRecord, error) {
	project, err := it.sessions.Project(ctx)
	if err != nil {
		return nil, err
	}

	var records []entities.ReleaseHistoryRecord
	err = withLedger(*project, it.openHistories, func(ledger *release.Ledger) error {
		var listErr error
		records, listErr = ledger.History(ctx)
		return listErr
	})
	return records, err
}

// Sync adds the latest commits to the ledger and returns the whole ledger.
func (it *HistoryCommand) Sync(ctx context.Context) ([]entities.ReleaseHistoryRecord, error) {
	session, err := it.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}

	var records []entities.ReleaseHistoryRecord
	err = withLedger(session.Project, it.openHistories, func(ledger *release.Ledger) error {
		if _, syncErr := syncLatest(ctx, session, ledger); syncErr != nil {
			return syncErr
		}
		var listErr error
		records, listErr = ledger.History(ctx)
		return listErr
	})
	return records, err
}

func (it *HistoryCommand) Release(ctx context.Context, revisions []int) error {
	return it.update(ctx, func(ledger *release.Ledger) error {
		return ledger.MarkReleased(ctx, revisions)
	})
}

func (it *HistoryCommand) Unrelease(ctx context.Context, revisions []int) error {
	return it.update(ctx, func(ledger *release.Ledger) error {
		return ledger.MarkUnreleased(ctx, revisions)
	})
}

// Reconcile makes exactly the given revisions released.
func (it *HistoryCommand) Reconcile(ctx context.Context, released []int) error {
	return it.update(ctx, func(ledger *release.Ledger) error {
		return ledger.Reconcile(ctx, released)
	})
}

func (it *HistoryCommand) update(ctx context.Context, fn func(*release.Ledger) error) error {
	project, err := it.sessions.Project(ctx)
	if err != nil {
		return err
	}
	return withLedger(*project, it.openHistories, fn)
}

// withLedger opens the project ledger for the duration of fn.
func withLedger(
	project entities.Project,
	openHistories repositories.HistoryRepositoryFactory,
	fn func(*release.Ledger) error,
) error {
	history, err := openHistories(project.ReleaseManagerPath)
	if err != nil {
		return fmt.Errorf("failed to open release ledger: %w", err)
	}
	defer func() {
		if closeErr := history.Close(); closeErr != nil {
			logger.Warnf("Failed to close release ledger: %v", closeErr)
		}
	}()
	return fn(release.NewLedger(history))
}

// syncLatest fetches the latest commits of the project and records them.
func syncLatest(ctx context.Context, session *Session, ledger *release.Ledger) ([]entities.Commit, error) {
	maxLog := session.Project.VCS.MaxLog
	if maxLog <= 0 {
		maxLog = entities.DefaultMaxLog
	}

	logger.Infof("Fetching the latest %d commits", maxLog)
	commits, err := session.VCS.Log(ctx, repositories.LogOptions{
		Range: &repositories.RevisionRange{From: "HEAD", To: "1"},
		Limit: maxLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest commits: %w", err)
	}
	for _, commit := range commits {
		logger.Debugf("r%d %s", commit.Revision, commit.Summary())
	}

	if syncErr := ledger.Sync(ctx, commits); syncErr != nil {
		return nil, syncErr
	}
	return commits, nil
}
