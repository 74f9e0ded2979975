package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// Project is the interface for the project configuration commands.
type Project interface {
	Init(ctx context.Context, project entities.Project) (*entities.Project, error)
	Show(ctx context.Context) (*entities.Project, error)
	Delete(ctx context.Context) error
	Format(ctx context.Context) error
}

// ProjectCommand manages the persisted project configuration.
type ProjectCommand struct {
	settings  *entities.Settings
	documents repositories.DocumentRepository
	sessions  *SessionLoader
}

// NewProjectCommand creates a new ProjectCommand.
func NewProjectCommand(
	settings *entities.Settings,
	documents repositories.DocumentRepository,
	sessions *SessionLoader,
) *ProjectCommand {
	return &ProjectCommand{settings: settings, documents: documents, sessions: sessions}
}

// Init stores the project, replacing the current one. The ledger lives in
// the data directory and 30 commits are synced unless stated otherwise.
// Paths are stored absolute and must name existing directories; only the
// default ledger directory is created on demand.
func (it *ProjectCommand) Init(ctx context.Context, project entities.Project) (*entities.Project, error) {
	if project.VCS.MaxLog <= 0 {
		project.VCS.MaxLog = entities.DefaultMaxLog
	}
	if err := (entities.ProjectDocument{Project: project}).Validate(); err != nil {
		return nil, err
	}

	if project.ReleaseManagerPath == "" {
		if err := os.MkdirAll(it.settings.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", it.settings.DataDir, err)
		}
		project.ReleaseManagerPath = it.settings.DataDir
	}
	for _, path := range []*string{&project.LocalPath, &project.ServerPath, &project.ReleaseManagerPath} {
		if *path == "" {
			continue
		}
		abs, err := existingDir(*path)
		if err != nil {
			return nil, err
		}
		*path = abs
	}

	if err := it.documents.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	logger.Infof("Project %q configured", project.Name)
	return &project, nil
}

func existingDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", entities.ErrDirectoryNotFound, abs)
	}
	return abs, nil
}

func (it *ProjectCommand) Show(ctx context.Context) (*entities.Project, error) {
	return it.sessions.Project(ctx)
}

func (it *ProjectCommand) Delete(ctx context.Context) error {
	logger.Info("Deleting project configuration")
	return it.documents.DeleteProject(ctx)
}

// Format removes every stored document: project, dependencies and ignores.
func (it *ProjectCommand) Format(ctx context.Context) error {
	logger.Info("Resetting all stored configuration")
	if err := it.documents.Clear(ctx); err != nil {
		return err
	}
	logger.Info("Configuration reset")
	return nil
}
