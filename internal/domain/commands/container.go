package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []any{
		NewSessionLoader,
		NewProjectCommand,
		NewScanCommand,
		NewResolveCommand,
		NewIgnoreCommand,
		NewHistoryCommand,
		NewPackCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ProjectCommand) Project {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ScanCommand) Scan {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ResolveCommand) Resolve {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *IgnoreCommand) Ignore {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *HistoryCommand) History {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PackCommand) Pack {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
