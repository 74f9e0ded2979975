package sqlite

import (
	"context"
	"path/filepath"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// DocumentFileName is the database file created in the data directory.
const DocumentFileName = "packman.db"

// DocumentRepository stores the project, its dependency graph and its ignore list.
type DocumentRepository struct {
	*store
}

// NewDocumentRepository opens (or creates) the document store in dataDir.
func NewDocumentRepository(dataDir string) (*DocumentRepository, error) {
	s, err := openStore(filepath.Join(dataDir, DocumentFileName))
	if err != nil {
		return nil, err
	}
	return &DocumentRepository{store: s}, nil
}

func (r *DocumentRepository) FindProject(ctx context.Context) (*entities.Project, error) {
	docs, err := r.list(ctx, entities.SchemeProject)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil //nolint:nilnil // no project is not an error
	}
	project := docs[0].(entities.ProjectDocument).Project //nolint:forcetypeassert // decoded by scheme
	return &project, nil
}

// SaveProject replaces the configured project.
func (r *DocumentRepository) SaveProject(ctx context.Context, project entities.Project) error {
	return r.replace(ctx, entities.SchemeProject, []entities.Document{entities.ProjectDocument{Project: project}})
}

func (r *DocumentRepository) DeleteProject(ctx context.Context) error {
	return r.deleteScheme(ctx, r.db, entities.SchemeProject)
}

func (r *DocumentRepository) ListDependencies(ctx context.Context) ([]entities.AssemblyDescriptor, error) {
	docs, err := r.list(ctx, entities.SchemeDependency)
	if err != nil {
		return nil, err
	}
	descriptors := make([]entities.AssemblyDescriptor, 0, len(docs))
	for _, doc := range docs {
		descriptors = append(descriptors, doc.(entities.DependencyDocument).Descriptor()) //nolint:forcetypeassert // decoded by scheme
	}
	return descriptors, nil
}

// ReplaceDependencies stores the descriptors, keeping their order. A name
// seen twice keeps its first descriptor.
func (r *DocumentRepository) ReplaceDependencies(
	ctx context.Context,
	descriptors []entities.AssemblyDescriptor,
) error {
	seen := make(map[string]struct{}, len(descriptors))
	docs := make([]entities.Document, 0, len(descriptors))
	for _, descriptor := range descriptors {
		if _, ok := seen[descriptor.Name]; ok {
			continue
		}
		seen[descriptor.Name] = struct{}{}
		docs = append(docs, entities.NewDependencyDocument(descriptor))
	}
	return r.replace(ctx, entities.SchemeDependency, docs)
}

func (r *DocumentRepository) ListIgnores(ctx context.Context) ([]string, error) {
	docs, err := r.list(ctx, entities.SchemeIgnore)
	if err != nil {
		return nil, err
	}
	patterns := make([]string, 0, len(docs))
	for _, doc := range docs {
		patterns = append(patterns, doc.(entities.IgnoreDocument).Pattern) //nolint:forcetypeassert // decoded by scheme
	}
	return patterns, nil
}

func (r *DocumentRepository) ReplaceIgnores(ctx context.Context, patterns []string) error {
	seen := make(map[string]struct{}, len(patterns))
	docs := make([]entities.Document, 0, len(patterns))
	for _, pattern := range patterns {
		if _, ok := seen[pattern]; ok {
			continue
		}
		seen[pattern] = struct{}{}
		docs = append(docs, entities.IgnoreDocument{Pattern: pattern})
	}
	return r.replace(ctx, entities.SchemeIgnore, docs)
}

// Clear removes every document, whatever its scheme.
func (r *DocumentRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents`)
	return err
}
