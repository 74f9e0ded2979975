package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/packman/internal"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

func injectAppContext() (*internal.AppInternal, *entities.Settings) {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var (
		appInternal *internal.AppInternal
		settings    *entities.Settings
	)
	if err := container.Invoke(func(ai *internal.AppInternal, s *entities.Settings) {
		appInternal = ai
		settings = s
	}); err != nil {
		panic(err)
	}

	return appInternal, settings
}
