package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Settings come from PACKMAN_CONFIG or the first config file found
	return container.Provide(LoadSettings)
}
