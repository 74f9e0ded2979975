package repositories

import (
	"context"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// DocumentRepository persists the project configuration, the scanned
// dependency graph and the ignore list.
type DocumentRepository interface {
	// FindProject returns the configured project, or nil when none exists.
	FindProject(ctx context.Context) (*entities.Project, error)
	SaveProject(ctx context.Context, project entities.Project) error
	DeleteProject(ctx context.Context) error

	ListDependencies(ctx context.Context) ([]entities.AssemblyDescriptor, error)
	ReplaceDependencies(ctx context.Context, descriptors []entities.AssemblyDescriptor) error

	ListIgnores(ctx context.Context) ([]string, error)
	ReplaceIgnores(ctx context.Context, patterns []string) error

	// Clear removes every document.
	Clear(ctx context.Context) error
}
