package handlers

import (
	"context"
	"fmt"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/provisioning"
	"github.com/wallettrack/deployctl/internal/provisioning/steps"
	"github.com/wallettrack/deployctl/internal/ui"
)

// Deploy runs the full deployment checklist.
//
// A run that ends with unverified health is still a successful deploy: the
// summary carries the warning but no error is returned.
func Deploy(ctx context.Context, configPath, strategyOverride string, autoApprove bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if strategyOverride != "" {
		strategy, err := config.ParseStrategy(strategyOverride)
		if err != nil {
			return err
		}
		cfg.Strategy = strategy
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	if !autoApprove && ui.Interactive() {
		title := fmt.Sprintf("Deploy %s to %s (%s, strategy %s)?",
			cfg.Service.Name, cfg.Project, cfg.Region, cfg.Strategy)
		ok, err := ui.Confirm(ctx, title, false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	deps, err := newDeps(ctx, cfg)
	if err != nil {
		return err
	}

	plan, err := steps.Plan(cfg, deps)
	if err != nil {
		return err
	}

	pctx := provisioning.NewContext(ctx, cfg)
	result := provisioning.NewRunner(plan...).Run(pctx)

	fmt.Println(ui.RenderRunSummary(result, ui.Interactive()))

	if !result.Succeeded() {
		return fmt.Errorf("deployment failed at %s: %s", result.FailedStep, result.Reason)
	}
	return nil
}
