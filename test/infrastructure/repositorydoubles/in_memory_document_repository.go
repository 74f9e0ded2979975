//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// InMemoryDocumentRepository implements repositories.DocumentRepository in memory.
type InMemoryDocumentRepository struct {
	Project      *entities.Project
	Dependencies []entities.AssemblyDescriptor
	Ignores      []string

	FindErr    error
	SaveErr    error
	ReplaceErr error

	// spy
	ClearCalls int
}

var _ repositories.DocumentRepository = (*InMemoryDocumentRepository)(nil)

func (r *InMemoryDocumentRepository) FindProject(_ context.Context) (*entities.Project, error) {
	if r.FindErr != nil {
		return nil, r.FindErr
	}
	if r.Project == nil {
		return nil, nil //nolint:nilnil // mirrors the real repository
	}
	project := *r.Project
	return &project, nil
}

func (r *InMemoryDocumentRepository) SaveProject(_ context.Context, project entities.Project) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Project = &project
	return nil
}

func (r *InMemoryDocumentRepository) DeleteProject(_ context.Context) error {
	r.Project = nil
	return nil
}

func (r *InMemoryDocumentRepository) ListDependencies(_ context.Context) ([]entities.AssemblyDescriptor, error) {
	return r.Dependencies, nil
}

func (r *InMemoryDocumentRepository) ReplaceDependencies(
	_ context.Context,
	descriptors []entities.AssemblyDescriptor,
) error {
	if r.ReplaceErr != nil {
		return r.ReplaceErr
	}
	r.Dependencies = descriptors
	return nil
}

func (r *InMemoryDocumentRepository) ListIgnores(_ context.Context) ([]string, error) {
	return r.Ignores, nil
}

func (r *InMemoryDocumentRepository) ReplaceIgnores(_ context.Context, patterns []string) error {
	if r.ReplaceErr != nil {
		return r.ReplaceErr
	}
	r.Ignores = patterns
	return nil
}

func (r *InMemoryDocumentRepository) Clear(_ context.Context) error {
	r.ClearCalls++
	r.Project = nil
	r.Dependencies = nil
	r.Ignores = nil
	return nil
}
