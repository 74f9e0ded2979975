package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/packman/internal/domain/entities"
	domainRepos "github.com/rios0rios0/packman/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/packman/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/packman/internal/infrastructure/repositories/sqlite"
	svnRepo "github.com/rios0rios0/packman/internal/infrastructure/repositories/svn"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register version-control registry with all client factories
	if err := container.Provide(func() *VersionControlRegistry {
		reg := NewVersionControlRegistry()
		reg.Register(svnRepo.Name, svnRepo.NewRepository)
		reg.Register(gitRepo.Name, gitRepo.NewRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register the document store, located by the settings
	if err := container.Provide(func(settings *entities.Settings) (domainRepos.DocumentRepository, error) {
		return sqlite.NewDocumentRepository(settings.DataDir)
	}); err != nil {
		return err
	}

	// Register the ledger factory, the ledger location is part of the project
	if err := container.Provide(func() domainRepos.HistoryRepositoryFactory {
		return sqlite.NewHistoryRepository
	}); err != nil {
		return err
	}

	return nil
}
