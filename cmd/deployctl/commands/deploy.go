package commands

import (
	"github.com/spf13/cobra"

	"github.com/wallettrack/deployctl/cmd/deployctl/handlers"
)

// Deploy returns the command that runs the full deployment checklist.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: deployctl.yaml)
//	--strategy:   Override the configured deployment strategy
//	--yes, -y:    Skip interactive confirmations
func Deploy() *cobra.Command {
	var (
		configPath  string
		strategy    string
		autoApprove bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run the deployment checklist and converge all resources",
		Long: `Run the ordered deployment checklist.

Each step checks whether its resource (API, secret, service identity, role
bindings, warehouse table, service) already satisfies the desired state,
creates it only when missing, and verifies the result. Re-running against an
already deployed environment performs zero mutations.

A failing health probe after a successful deploy does not fail the run; the
deployment stands and the run reports unverified health.

Examples:
  # Deploy using deployctl.yaml in the current directory
  deployctl deploy

  # Deploy with a specific config and no prompts
  deployctl deploy -c production.yaml --yes

  # Force the managed build strategy for this run
  deployctl deploy --strategy managed-build`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, strategy, autoApprove)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: deployctl.yaml)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Override strategy: managed-build, local-build, or platform-native-deploy")
	cmd.Flags().BoolVarP(&autoApprove, "yes", "y", false, "Skip interactive confirmations")

	return cmd
}
