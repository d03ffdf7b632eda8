package commands

import (
	"github.com/spf13/cobra"

	"github.com/wallettrack/deployctl/cmd/deployctl/handlers"
)

// Doctor returns the command that diagnoses the deployment environment
// without mutating anything.
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the deployment environment without changing it",
		Long: `Run every checklist check in read-only mode.

Reports which resources already exist and which a deploy would create.
Nothing is mutated.

Examples:
  deployctl doctor
  deployctl doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: deployctl.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
