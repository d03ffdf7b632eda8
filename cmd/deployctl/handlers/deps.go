// Package handlers implements the command business logic for the deployctl
// CLI. Commands parse flags; handlers load config, wire collaborators and run
// the provisioning engine.
package handlers

import (
	"context"
	"fmt"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/platform/build"
	"github.com/wallettrack/deployctl/internal/platform/gcloud"
	"github.com/wallettrack/deployctl/internal/platform/probe"
	"github.com/wallettrack/deployctl/internal/platform/secrets"
	"github.com/wallettrack/deployctl/internal/provisioning/steps"
	"github.com/wallettrack/deployctl/internal/ui"
)

// Factory function variables - replaced in tests.
var (
	loadConfig = config.LoadFile

	newDeps = buildDeps
)

// buildDeps wires the real collaborators for one run.
func buildDeps(ctx context.Context, cfg *config.Config) (steps.Deps, error) {
	cloud := gcloud.NewClient(cfg.Project)

	store, err := secretStore(ctx, cfg, cloud)
	if err != nil {
		return steps.Deps{}, err
	}

	return steps.Deps{
		Cloud:   cloud,
		Secrets: store,
		Builder: build.NewDockerClient(nil),
		Remote:  build.NewCloudBuildClient(cfg.Project, nil),
		Prober:  probe.NewHTTPProber(),
		SecretValue: func(ctx context.Context) (string, error) {
			return ui.SecretValue(ctx, cfg.Secret.EnvVar, "Database connection string")
		},
	}, nil
}

// secretStore picks the configured secret backend.
func secretStore(ctx context.Context, cfg *config.Config, cloud *gcloud.Client) (secrets.Store, error) {
	switch cfg.Secret.Backend {
	case config.SecretBackendAWS:
		store, err := secrets.NewAWSStore(ctx, cfg.Secret.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize AWS secret store: %w", err)
		}
		return store, nil
	default:
		return cloud.SecretStore(), nil
	}
}
