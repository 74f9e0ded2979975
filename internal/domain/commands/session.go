package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/packman/internal/infrastructure/repositories"
)

// Session is the project context a command works in.
type Session struct {
	Project entities.Project
	VCS     repositories.VersionControlRepository
}

// SessionLoader opens the configured project and its version-control client.
type SessionLoader struct {
	settings  *entities.Settings
	documents repositories.DocumentRepository
	registry  *infraRepos.VersionControlRegistry
}

// NewSessionLoader creates a new SessionLoader.
func NewSessionLoader(
	settings *entities.Settings,
	documents repositories.DocumentRepository,
	registry *infraRepos.VersionControlRegistry,
) *SessionLoader {
	return &SessionLoader{settings: settings, documents: documents, registry: registry}
}

// Project returns the configured project, or ErrNoProject.
func (it *SessionLoader) Project(ctx context.Context) (*entities.Project, error) {
	project, err := it.documents.FindProject(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	if project == nil {
		return nil, entities.ErrNoProject
	}
	return project, nil
}

// Load returns the project with a usable version-control client.
func (it *SessionLoader) Load(ctx context.Context) (*Session, error) {
	project, err := it.Project(ctx)
	if err != nil {
		return nil, err
	}

	vcs, err := it.registry.Get(it.settings.VCS.Binary, *project)
	if err != nil {
		return nil, err
	}
	if !vcs.Available(ctx) {
		return nil, fmt.Errorf("%w: %s in %s", entities.ErrVersionControlUnavailable, vcs.Name(), project.LocalPath)
	}

	logger.Debugf("Loaded project %q (%s)", project.Name, vcs.Name())
	return &Session{Project: *project, VCS: vcs}, nil
}
