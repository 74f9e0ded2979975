package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

// InitController handles the "init" subcommand.
type InitController struct {
	command commands.Project
}

// NewInitController creates a new InitController.
func NewInitController(command commands.Project) *InitController {
	return &InitController{command: command}
}

func (it *InitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "init",
		Short: "Configure the project to release",
		Long: `Store the project configuration: its name, working copy,
the server tree holding pre-built artifacts and the version-control
credentials. Any previous configuration is replaced.`,
		Args: cobra.NoArgs,
	}
}

func (it *InitController) Execute(cmd *cobra.Command, _ []string) {
	name, _ := cmd.Flags().GetString("name")
	localPath, _ := cmd.Flags().GetString("local-path")
	serverPath, _ := cmd.Flags().GetString("server-path")
	ledgerDir, _ := cmd.Flags().GetString("release-manager-path")
	vcsType, _ := cmd.Flags().GetString("vcs")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	maxLog, _ := cmd.Flags().GetInt("max-log")

	project, err := it.command.Init(context.Background(), entities.Project{
		Name:               name,
		LocalPath:          localPath,
		ServerPath:         serverPath,
		ReleaseManagerPath: ledgerDir,
		VCS: entities.VCSConfig{
			Type:     vcsType,
			Username: username,
			Password: password,
			MaxLog:   maxLog,
		},
	})
	if err != nil {
		logger.Errorf("Init failed: %v", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderProject(*project))
}

func (it *InitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Project name, e.g. phase1")
	cmd.Flags().String("local-path", "", "Working copy root")
	cmd.Flags().String("server-path", "", "Build output tree to copy artifacts from")
	cmd.Flags().String("release-manager-path", "", "Directory holding the release ledger (default: data dir)")
	cmd.Flags().String("vcs", "svn", "Version control client (svn, git)")
	cmd.Flags().String("username", "", "Version control username")
	cmd.Flags().String("password", "", "Version control password")
	cmd.Flags().Int("max-log", entities.DefaultMaxLog, "Number of latest commits tracked in the ledger")
}

// ShowController handles the "show" subcommand.
type ShowController struct {
	command commands.Project
}

// NewShowController creates a new ShowController.
func NewShowController(command commands.Project) *ShowController {
	return &ShowController{command: command}
}

func (it *ShowController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "show",
		Short: "Show the project configuration",
		Args:  cobra.NoArgs,
	}
}

func (it *ShowController) Execute(cmd *cobra.Command, _ []string) {
	project, err := it.command.Show(context.Background())
	if err != nil {
		logger.Errorf("Show failed: %v", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderProject(*project))
}

// DeleteProjectController handles the "delete-project" subcommand.
type DeleteProjectController struct {
	command commands.Project
}

// NewDeleteProjectController creates a new DeleteProjectController.
func NewDeleteProjectController(command commands.Project) *DeleteProjectController {
	return &DeleteProjectController{command: command}
}

func (it *DeleteProjectController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "delete-project",
		Short: "Delete the project configuration",
		Args:  cobra.NoArgs,
	}
}

func (it *DeleteProjectController) Execute(_ *cobra.Command, _ []string) {
	if err := it.command.Delete(context.Background()); err != nil {
		logger.Errorf("Delete failed: %v", err)
	}
}

// ResetController handles the "reset" subcommand.
type ResetController struct {
	command commands.Project
}

// NewResetController creates a new ResetController.
func NewResetController(command commands.Project) *ResetController {
	return &ResetController{command: command}
}

func (it *ResetController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "reset",
		Short: "Remove every stored setting",
		Long:  `Remove the project, the scanned dependencies and the ignore list. The release ledger is kept.`,
		Args:  cobra.NoArgs,
	}
}

func (it *ResetController) Execute(_ *cobra.Command, _ []string) {
	if err := it.command.Format(context.Background()); err != nil {
		logger.Errorf("Reset failed: %v", err)
	}
}
