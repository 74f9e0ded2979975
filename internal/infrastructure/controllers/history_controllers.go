package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

// HistoryController handles the "history" subcommand.
type HistoryController struct {
	command commands.History
}

// NewHistoryController creates a new HistoryController.
func NewHistoryController(command commands.History) *HistoryController {
	return &HistoryController{command: command}
}

func (it *HistoryController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "history",
		Short: "Show the release ledger",
		Args:  cobra.NoArgs,
	}
}

func (it *HistoryController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()
	sync, _ := cmd.Flags().GetBool("sync")

	var (
		records []entities.ReleaseHistoryRecord
		err     error
	)
	if sync {
		records, err = it.command.Sync(ctx)
	} else {
		records, err = it.command.List(ctx)
	}
	if err != nil {
		logger.Errorf("History failed: %v", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderHistory(records))
}

func (it *HistoryController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("sync", false, "Record the latest commits before listing")
}

// ReleaseController handles the "release" subcommand.
type ReleaseController struct {
	command commands.History
}

// NewReleaseController creates a new ReleaseController.
func NewReleaseController(command commands.History) *ReleaseController {
	return &ReleaseController{command: command}
}

func (it *ReleaseController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "release <revision>...",
		Short: "Mark revisions as released",
		Args:  cobra.MinimumNArgs(1),
	}
}

func (it *ReleaseController) Execute(_ *cobra.Command, args []string) {
	revisions, err := parseRevisions(args)
	if err != nil {
		logger.Error(err)
		return
	}
	if releaseErr := it.command.Release(context.Background(), revisions); releaseErr != nil {
		logger.Errorf("Release failed: %v", releaseErr)
	}
}

// UnreleaseController handles the "unrelease" subcommand.
type UnreleaseController struct {
	command commands.History
}

// NewUnreleaseController creates a new UnreleaseController.
func NewUnreleaseController(command commands.History) *UnreleaseController {
	return &UnreleaseController{command: command}
}

func (it *UnreleaseController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "unrelease <revision>...",
		Short: "Mark revisions as not released",
		Args:  cobra.MinimumNArgs(1),
	}
}

func (it *UnreleaseController) Execute(_ *cobra.Command, args []string) {
	revisions, err := parseRevisions(args)
	if err != nil {
		logger.Error(err)
		return
	}
	if unreleaseErr := it.command.Unrelease(context.Background(), revisions); unreleaseErr != nil {
		logger.Errorf("Unrelease failed: %v", unreleaseErr)
	}
}

// ReconcileController handles the "reconcile" subcommand.
type ReconcileController struct {
	command commands.History
}

// NewReconcileController creates a new ReconcileController.
func NewReconcileController(command commands.History) *ReconcileController {
	return &ReconcileController{command: command}
}

func (it *ReconcileController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "reconcile [revision...]",
		Short: "Set exactly which revisions are released",
		Long: `Mark the given revisions as released and every other recorded
revision as not released. Without arguments, nothing stays released.`,
		Args: cobra.ArbitraryArgs,
	}
}

func (it *ReconcileController) Execute(_ *cobra.Command, args []string) {
	revisions, err := parseRevisions(args)
	if err != nil {
		logger.Error(err)
		return
	}
	if reconcileErr := it.command.Reconcile(context.Background(), revisions); reconcileErr != nil {
		logger.Errorf("Reconcile failed: %v", reconcileErr)
	}
}
