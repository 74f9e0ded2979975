package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

// ScanController handles the "scan" subcommand.
type ScanController struct {
	command commands.Scan
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Scan) *ScanController {
	return &ScanController{command: command}
}

func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "scan",
		Short: "Rebuild the dependency graph from the project descriptors",
		Args:  cobra.NoArgs,
	}
}

func (it *ScanController) Execute(cmd *cobra.Command, _ []string) {
	descriptors, err := it.command.Execute(context.Background())
	if err != nil {
		logger.Errorf("Scan failed: %v", err)
		return
	}
	names := make([]string, 0, len(descriptors))
	for _, descriptor := range descriptors {
		names = append(names, descriptor.FileName())
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderList("Assemblies", names))
}

// ResolveController handles the "resolve" subcommand.
type ResolveController struct {
	command commands.Resolve
}

// NewResolveController creates a new ResolveController.
func NewResolveController(command commands.Resolve) *ResolveController {
	return &ResolveController{command: command}
}

func (it *ResolveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "resolve <assembly>...",
		Short: "List the artifacts to ship when assemblies change",
		Args:  cobra.MinimumNArgs(1),
	}
}

func (it *ResolveController) Execute(cmd *cobra.Command, args []string) {
	targets, err := it.command.Execute(context.Background(), args)
	if err != nil {
		logger.Errorf("Resolve failed: %v", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderList("Release targets", targets))
}

// IgnoreController handles the "ignore" subcommand.
type IgnoreController struct {
	command commands.Ignore
}

// NewIgnoreController creates a new IgnoreController.
func NewIgnoreController(command commands.Ignore) *IgnoreController {
	return &IgnoreController{command: command}
}

func (it *IgnoreController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "ignore [file]",
		Short: "Import the list of artifacts never packaged",
		Long: `Replace the ignore list with the content of a file holding one
regular expression per line (default: the configured ignore file).`,
		Args: cobra.MaximumNArgs(1),
	}
}

func (it *IgnoreController) Execute(cmd *cobra.Command, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	patterns, err := it.command.Execute(context.Background(), path)
	if err != nil {
		logger.Errorf("Ignore import failed: %v", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderList("Ignored", patterns))
}
