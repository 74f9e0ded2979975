package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/packman/internal"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

const (
	logDirMode     = 0o755
	logFileMode    = 0o644
	logFilePattern = "2006-01-02_15-04-05"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "packman",
		Short: "Incremental release packaging for version-controlled projects",
		Long: `Build release packages from a set of revisions: decide which
pre-built assemblies must be redeployed, which files can be copied as-is
and which ones need a manual merge, then keep track of what was released.

Typical flow:
  packman init --name phase1 --local-path /work/dc/phase1 --server-path /srv/phase1
  packman scan                 Rebuild the dependency graph
  packman ignore .packIgnore   Import the artifacts never packaged
  packman history --sync       Record and list the latest revisions
  packman pack 1201 1203       Package revisions 1201 and 1203`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if flagged, ok := ctrl.(entities.FlaggedController); ok {
			flagged.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

// configureLogging applies the configured level and mirrors the output to a
// timestamped file when a log directory is set.
func configureLogging(settings *entities.Settings) {
	if level, err := logger.ParseLevel(settings.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}
	if settings.Log.Dir == "" {
		return
	}

	if err := os.MkdirAll(settings.Log.Dir, logDirMode); err != nil {
		logger.Warnf("Failed to create log directory: %v", err)
		return
	}
	name := filepath.Join(settings.Log.Dir, time.Now().Format(logFilePattern)+".log")
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		logger.Warnf("Failed to open log file: %v", err)
		return
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, file))
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext, settings := injectAppContext()
	configureLogging(settings)

	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'packman': %s", err)
	}
}
