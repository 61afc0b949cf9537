// Package cli defines the greenbridge command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var configFile string

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "greenbridge",
		Short: "ESG readiness assessments for small manufacturers",
		Long: `greenbridge runs the GreenBridge assessment flow: a short
onboarding questionnaire routes a business onto the green loan,
sustainability-linked loan or general track, then an intake form
produces a scorecard, a carbon estimate and suggested next steps.

The serve command runs the web app; assess runs the same flow in the
terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a config file (default: ./config.yaml if present)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newAssessCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI and returns the command error, if any.
func Execute() error {
	return NewRootCmd().Execute()
}
