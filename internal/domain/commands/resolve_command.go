package commands

import (
	"context"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/domain/repositories"
)

// Resolve is the interface for the ad hoc dependency resolution command.
type Resolve interface {
	Execute(ctx context.Context, names []string) (entities.ReleaseTargetSet, error)
}

// ResolveCommand lists the artifacts to ship when the named assemblies change.
type ResolveCommand struct {
	documents repositories.DocumentRepository
}

// NewResolveCommand creates a new ResolveCommand.
func NewResolveCommand(documents repositories.DocumentRepository) *ResolveCommand {
	return &ResolveCommand{documents: documents}
}

func (it *ResolveCommand) Execute(ctx context.Context, names []string) (entities.ReleaseTargetSet, error) {
	descriptors, err := it.documents.ListDependencies(ctx)
	if err != nil {
		return nil, err
	}
	return entities.NewDependencyGraph(descriptors).ResolveDependencies(names), nil
}
