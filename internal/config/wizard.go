package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Project     string
	Region      string
	Strategy    Strategy
	ServiceName string
	Image       string
	Backend     SecretBackend
	AWSRegion   string
}

// RunWizard collects the minimal configuration interactively. Everything not
// asked here is filled by ApplyDefaults.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Region:   "us-central1",
		Strategy: StrategyLocalBuild,
		Backend:  SecretBackendCloud,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("The cloud project all resources are created in").
				Placeholder("my-project").
				Value(&result.Project).
				Validate(validateRequired("project ID")),

			huh.NewInput().
				Title("Region").
				Description("Deployment region for the service").
				Value(&result.Region).
				Validate(validateRequired("region")),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Service name").
				Description("Managed service name (DNS-safe, lowercase)").
				Placeholder("wallet-tracker").
				Value(&result.ServiceName).
				Validate(validateServiceName),

			huh.NewInput().
				Title("Image repository").
				Description("Image path without tag, e.g. gcr.io/my-project/wallet-tracker").
				Value(&result.Image).
				Validate(validateRequired("image repository")),
		),

		huh.NewGroup(
			huh.NewSelect[Strategy]().
				Title("Deployment strategy").
				Description("How the image gets built and rolled out").
				Options(
					huh.NewOption("Local build (docker build + push, then deploy)", StrategyLocalBuild),
					huh.NewOption("Managed build (provider build pipeline)", StrategyManagedBuild),
					huh.NewOption("Platform native (apply a rendered service manifest)", StrategyPlatformNative),
				).
				Value(&result.Strategy),
		),

		huh.NewGroup(
			huh.NewSelect[SecretBackend]().
				Title("Secret backend").
				Description("Where the database connection string is stored").
				Options(
					huh.NewOption("Provider secret manager", SecretBackendCloud),
					huh.NewOption("AWS Secrets Manager", SecretBackendAWS),
				).
				Value(&result.Backend),

			huh.NewInput().
				Title("AWS region").
				Description("Only used when the backend is AWS Secrets Manager").
				Placeholder("us-east-1").
				Value(&result.AWSRegion),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a full Config with defaults applied.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Project:  r.Project,
		Region:   r.Region,
		Strategy: r.Strategy,
		Service: ServiceConfig{
			Name:                 r.ServiceName,
			Image:                r.Image,
			AllowUnauthenticated: true,
		},
		Secret: SecretConfig{
			Name:      r.ServiceName + "-mongodb-url",
			Backend:   r.Backend,
			AWSRegion: r.AWSRegion,
		},
		Identity: IdentityConfig{
			Name: r.ServiceName + "-sa",
		},
	}
	if cfg.Secret.Backend == SecretBackendAWS && cfg.Secret.AWSRegion == "" {
		cfg.Secret.AWSRegion = "us-east-1"
	}
	if cfg.Strategy == StrategyManagedBuild && cfg.Build.ConfigFile == "" {
		cfg.Build.ConfigFile = "cloudbuild.yaml"
	}
	cfg.ApplyDefaults()
	return cfg
}

// validateRequired rejects empty input.
func validateRequired(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

// validateServiceName validates the managed service name.
func validateServiceName(s string) error {
	if s == "" {
		return fmt.Errorf("service name is required")
	}
	if !serviceNameRegex.MatchString(s) {
		return fmt.Errorf("service name must be lowercase alphanumeric with hyphens")
	}
	return nil
}
