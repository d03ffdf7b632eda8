package commands

import (
	"github.com/spf13/cobra"

	"github.com/wallettrack/deployctl/cmd/deployctl/handlers"
	"github.com/wallettrack/deployctl/internal/config"
)

// Init returns the command that creates a configuration file interactively.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a deployment configuration interactively",
		Long: `Create a deployctl configuration file with a short wizard.

The generated YAML is fully expanded: defaults for APIs, health path,
warehouse schema and identity roles are written out explicitly so the file
documents the whole deployment.

Examples:
  deployctl init
  deployctl init -o production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFile, "Where to write the configuration")

	return cmd
}
