package commands

import (
	"github.com/spf13/cobra"

	"github.com/wallettrack/deployctl/cmd/deployctl/handlers"
)

// Cleanup returns the command that removes the deployed service.
//
// Only the compute service is deleted. Data-bearing resources (the secret
// and the warehouse table) are left in place and must be removed by hand.
func Cleanup() *cobra.Command {
	var (
		configPath  string
		autoApprove bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete the deployed service",
		Long: `Delete the managed service.

The connection secret and the warehouse table hold data and are deliberately
not touched. Deleting an already absent service is not an error.

Examples:
  deployctl cleanup
  deployctl cleanup --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cleanup(cmd.Context(), configPath, autoApprove)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: deployctl.yaml)")
	cmd.Flags().BoolVarP(&autoApprove, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
