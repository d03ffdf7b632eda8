package config

import "fmt"

// Strategy is the closed set of deployment strategies. The strategy is chosen
// once per run and only changes the build/deploy segment of the step list;
// every strategy runs the same resource pre-steps.
type Strategy string

const (
	// StrategyManagedBuild submits source to the remote build service, which
	// builds, pushes, and triggers the deploy.
	StrategyManagedBuild Strategy = "managed-build"

	// StrategyLocalBuild builds the image locally, pushes it to the registry,
	// and deploys the pushed tag.
	StrategyLocalBuild Strategy = "local-build"

	// StrategyPlatformNative renders a service manifest with the secret value
	// injected and deploys that manifest directly.
	StrategyPlatformNative Strategy = "platform-native-deploy"
)

// ParseStrategy validates and converts a strategy string.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyManagedBuild, StrategyLocalBuild, StrategyPlatformNative:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown deployment strategy %q (expected %s, %s or %s)",
			s, StrategyManagedBuild, StrategyLocalBuild, StrategyPlatformNative)
	}
}

// Strategies returns all valid strategy values in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyManagedBuild, StrategyLocalBuild, StrategyPlatformNative}
}
