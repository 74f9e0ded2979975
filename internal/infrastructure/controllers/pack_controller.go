package controllers

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

// PackController handles the "pack" subcommand.
type PackController struct {
	command commands.Pack
}

// NewPackController creates a new PackController.
func NewPackController(command commands.Pack) *PackController {
	return &PackController{command: command}
}

func (it *PackController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "pack [revision...]",
		Short: "Build a release package",
		Long: `Build a release package from the given revisions (or every
unreleased one with --all-unreleased): pre-built artifacts and files
ready to copy go to release/, files needing a manual merge go to
diff/base/ and diff/new/. The revisions are then marked as released.

Packaging stops when unreleased revisions touch the same assemblies,
unless --force is given.`,
		Args: cobra.ArbitraryArgs,
	}
}

func (it *PackController) Execute(cmd *cobra.Command, args []string) {
	allUnreleased, _ := cmd.Flags().GetBool("all-unreleased")
	force, _ := cmd.Flags().GetBool("force")
	output, _ := cmd.Flags().GetString("output")

	revisions, err := parseRevisions(args)
	if err != nil {
		logger.Error(err)
		return
	}

	result, err := it.command.Execute(context.Background(), commands.PackOptions{
		Revisions:     revisions,
		AllUnreleased: allUnreleased,
		Force:         force,
		OutputDir:     output,
	})
	if err != nil {
		if errors.Is(err, entities.ErrConflictsFound) && result != nil {
			fmt.Fprintln(cmd.OutOrStdout(), renderConflicts(result.Conflicts))
			logger.Error("Release the conflicting revisions first, or pass --force")
			return
		}
		logger.Errorf("Pack failed: %v", err)
		return
	}

	if len(result.Conflicts) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), renderConflicts(result.Conflicts))
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderPackResult(result))
}

func (it *PackController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("all-unreleased", false, "Package every unreleased revision among the latest commits")
	cmd.Flags().Bool("force", false, "Package even when unreleased revisions conflict")
	cmd.Flags().StringP("output", "o", "", "Package directory (default: configured package_dir)")
}
