package steps

import (
	"fmt"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/platform/build"
	"github.com/wallettrack/deployctl/internal/platform/probe"
	"github.com/wallettrack/deployctl/internal/platform/secrets"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// Deps bundles the collaborators the step plan needs. Handlers wire real
// clients; tests wire fakes.
type Deps struct {
	Cloud       CloudClient
	Secrets     secrets.Store
	Builder     build.Builder
	Remote      build.RemoteBuilder
	Prober      probe.Prober
	SecretValue SecretValueSource

	// LookPath overrides tool lookup in the preflight step; nil means PATH.
	LookPath func(name string) (string, error)
}

// Plan assembles the ordered checklist for the configured strategy. The
// shared prefix (tooling, project access, APIs, secret, identity, roles,
// warehouse table) is identical across strategies; only the build/deploy
// segment differs. The health probe always closes the plan.
func Plan(cfg *config.Config, deps Deps) ([]provisioning.Step, error) {
	tooling := NewToolingStep(deps.Cloud)
	if deps.LookPath != nil {
		tooling.lookPath = deps.LookPath
	}

	steps := []provisioning.Step{
		tooling,
		NewProjectAccessStep(deps.Cloud),
		NewAPIsStep(deps.Cloud),
		NewSecretStep(deps.Secrets, deps.SecretValue),
		NewIdentityStep(deps.Cloud),
		NewRoleBindingsStep(deps.Cloud),
		NewWarehouseTableStep(deps.Cloud),
	}

	switch cfg.Strategy {
	case config.StrategyManagedBuild:
		steps = append(steps, NewManagedBuildStep(deps.Cloud, deps.Remote))
	case config.StrategyLocalBuild:
		steps = append(steps,
			NewLocalBuildStep(deps.Builder),
			NewDeployServiceStep(deps.Cloud),
		)
	case config.StrategyPlatformNative:
		steps = append(steps, NewManifestDeployStep(deps.Cloud, deps.Secrets))
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}

	steps = append(steps, NewHealthStep(deps.Prober))
	return steps, nil
}
