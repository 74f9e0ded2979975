package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []any{
		NewInitController,
		NewShowController,
		NewDeleteProjectController,
		NewResetController,
		NewScanController,
		NewResolveController,
		NewIgnoreController,
		NewHistoryController,
		NewReleaseController,
		NewUnreleaseController,
		NewReconcileController,
		NewPackController,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	initController *InitController,
	showController *ShowController,
	deleteProjectController *DeleteProjectController,
	resetController *ResetController,
	scanController *ScanController,
	resolveController *ResolveController,
	ignoreController *IgnoreController,
	historyController *HistoryController,
	releaseController *ReleaseController,
	unreleaseController *UnreleaseController,
	reconcileController *ReconcileController,
	packController *PackController,
) *[]entities.Controller {
	return &[]entities.Controller{
		initController,
		showController,
		deleteProjectController,
		resetController,
		scanController,
		resolveController,
		ignoreController,
		historyController,
		releaseController,
		unreleaseController,
		reconcileController,
		packController,
	}
}
