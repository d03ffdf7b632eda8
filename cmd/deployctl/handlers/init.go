package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/wallettrack/deployctl/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	runWizard   = config.RunWizard
	writeConfig = config.WriteFile
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated configuration is invalid: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("deployctl - deployment checklist for the wallet tracker")
	fmt.Println("========================================================")
	fmt.Println()
	fmt.Println("This wizard creates a deployment configuration with sensible defaults.")
	fmt.Println("The generated YAML is fully expanded and explicit.")
	fmt.Println()
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  Project:   %s\n", cfg.Project)
	fmt.Printf("  Region:    %s\n", cfg.Region)
	fmt.Printf("  Service:   %s (port %d)\n", cfg.Service.Name, cfg.Service.Port)
	fmt.Printf("  Strategy:  %s\n", cfg.Strategy)
	fmt.Printf("  Secret:    %s (%s backend)\n", cfg.Secret.Name, cfg.Secret.Backend)
	fmt.Printf("  Identity:  %s (%d roles)\n", cfg.Identity.Name, len(cfg.Identity.Roles))
	fmt.Printf("  Warehouse: %s.%s\n", cfg.Warehouse.Dataset, cfg.Warehouse.Table)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Check the environment:")
	fmt.Println("     deployctl doctor")
	fmt.Println()
	fmt.Println("  3. Deploy:")
	fmt.Println("     deployctl deploy")
	fmt.Println()
}
