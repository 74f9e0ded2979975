package release

import (
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/packman/internal/domain/entities"
	"github.com/rios0rios0/packman/internal/scanner"
)

// OwnerFinder returns the project descriptor owning a source file.
type OwnerFinder func(sourcePath string) (string, error)

// Resolver maps changed sources to the assemblies that must ship.
type Resolver struct {
	graph     *entities.DependencyGraph
	findOwner OwnerFinder
}

// NewResolver creates a Resolver looking descriptors up on the local filesystem.
func NewResolver(graph *entities.DependencyGraph) *Resolver {
	return NewResolverWithFinder(graph, scanner.FindOwningDescriptor)
}

// NewResolverWithFinder creates a Resolver with a custom descriptor lookup.
func NewResolverWithFinder(graph *entities.DependencyGraph, findOwner OwnerFinder) *Resolver {
	return &Resolver{graph: graph, findOwner: findOwner}
}

// Owners returns the deduplicated assembly names owning the given sources,
// in first-seen order. A source without descriptor is an error.
func (r *Resolver) Owners(sources []string) ([]string, error) {
	seen := make(map[string]struct{}, len(sources))
	var owners []string
	for _, source := range sources {
		descriptor, err := r.findOwner(source)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve the assembly of %s: %w", source, err)
		}
		name := scanner.AssemblyNameOf(descriptor)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		if _, known := r.graph.Lookup(name); !known {
			logger.Warnf("%s is not in the dependency graph, run 'packman scan' again", name)
		}
		owners = append(owners, name)
	}
	return owners, nil
}

// Resolve returns the release target set for the given buildable sources.
func (r *Resolver) Resolve(sources []string) (entities.ReleaseTargetSet, error) {
	owners, err := r.Owners(sources)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Changed assemblies: %v", owners)
	return r.graph.ResolveDependencies(owners), nil
}
