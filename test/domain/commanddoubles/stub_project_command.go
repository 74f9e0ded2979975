//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

// StubProjectCommand is a stub implementation of commands.Project.
// Init echoes the project it receives.
type StubProjectCommand struct {
	Project *entities.Project
	Err     error

	LastInit        entities.Project
	DeleteCallCount int
	FormatCallCount int
}

var _ commands.Project = (*StubProjectCommand)(nil)

func (s *StubProjectCommand) Init(_ context.Context, project entities.Project) (*entities.Project, error) {
	s.LastInit = project
	if s.Err != nil {
		return nil, s.Err
	}
	return &project, nil
}

func (s *StubProjectCommand) Show(_ context.Context) (*entities.Project, error) {
	return s.Project, s.Err
}

func (s *StubProjectCommand) Delete(_ context.Context) error {
	s.DeleteCallCount++
	return s.Err
}

func (s *StubProjectCommand) Format(_ context.Context) error {
	s.FormatCallCount++
	return s.Err
}
