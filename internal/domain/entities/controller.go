package entities

import "github.com/spf13/cobra"

// ControllerBind is the Cobra metadata of a controller.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is a CLI entry point bound to a Cobra subcommand.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, arguments []string)
}

// FlaggedController is a controller declaring its own flags.
type FlaggedController interface {
	Controller
	AddFlags(cmd *cobra.Command)
}
