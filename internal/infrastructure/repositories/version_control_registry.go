package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/packman/internal/domain/entities"
	domainRepos "github.com/rios0rios0/packman/internal/domain/repositories"
)

// DefaultVersionControl is used when a project does not name its client.
const DefaultVersionControl = "svn"

// VersionControlFactory creates a client bound to a project's working copy.
type VersionControlFactory func(binary string, project entities.Project) domainRepos.VersionControlRepository

// VersionControlRegistry manages all registered version-control clients.
type VersionControlRegistry struct {
	factories map[string]VersionControlFactory
}

// NewVersionControlRegistry creates an empty registry.
func NewVersionControlRegistry() *VersionControlRegistry {
	return &VersionControlRegistry{
		factories: make(map[string]VersionControlFactory),
	}
}

// Register adds a client factory under the given name (e.g. "svn").
func (r *VersionControlRegistry) Register(name string, factory VersionControlFactory) {
	r.factories[name] = factory
}

// Get returns the client configured for the project.
func (r *VersionControlRegistry) Get(
	binary string,
	project entities.Project,
) (domainRepos.VersionControlRepository, error) {
	name := project.VCS.Type
	if name == "" {
		name = DefaultVersionControl
	}
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown version control type: %q (known: %v)", name, r.Names())
	}
	return factory(binary, project), nil
}

// Names returns the registered client names, sorted.
func (r *VersionControlRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
