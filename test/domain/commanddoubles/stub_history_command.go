//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

// StubHistoryCommand is a stub implementation of commands.History.
type StubHistoryCommand struct {
	Records []entities.ReleaseHistoryRecord
	Err     error

	ListCallCount int
	SyncCallCount int
	Released      []int
	Unreleased    []int
	Reconciled    []int
}

var _ commands.History = (*StubHistoryCommand)(nil)

func (s *StubHistoryCommand) List(_ context.Context) ([]entities.ReleaseHistoryRecord, error) {
	s.ListCallCount++
	return s.Records, s.Err
}

func (s *StubHistoryCommand) Sync(_ context.Context) ([]entities.ReleaseHistoryRecord, error) {
	s.SyncCallCount++
	return s.Records, s.Err
}

func (s *StubHistoryCommand) Release(_ context.Context, revisions []int) error {
	s.Released = revisions
	return s.Err
}

func (s *StubHistoryCommand) Unrelease(_ context.Context, revisions []int) error {
	s.Unreleased = revisions
	return s.Err
}

func (s *StubHistoryCommand) Reconcile(_ context.Context, released []int) error {
	s.Reconciled = released
	return s.Err
}
