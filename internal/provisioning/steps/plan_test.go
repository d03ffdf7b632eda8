package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

func testDeps() Deps {
	return Deps{
		Cloud:   newFakeCloud(),
		Secrets: newFakeStore(),
		Builder: &fakeBuilder{},
		Remote:  &fakeRemote{},
		Prober:  &fakeProber{codes: []int{200}},
	}
}

func stepNames(steps []provisioning.Step) []string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.Name())
	}
	return names
}

func TestPlan_ManagedBuild(t *testing.T) {
	t.Parallel()

	steps, err := Plan(testConfig(config.StrategyManagedBuild), testDeps())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"tooling",
		"project-access",
		"service-apis",
		"connection-secret",
		"service-identity",
		"role-bindings",
		"warehouse-table",
		"managed-build",
		"health-probe",
	}, stepNames(steps))
}

func TestPlan_LocalBuild(t *testing.T) {
	t.Parallel()

	steps, err := Plan(testConfig(config.StrategyLocalBuild), testDeps())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"tooling",
		"project-access",
		"service-apis",
		"connection-secret",
		"service-identity",
		"role-bindings",
		"warehouse-table",
		"build-image",
		"deploy-service",
		"health-probe",
	}, stepNames(steps))
}

func TestPlan_PlatformNative(t *testing.T) {
	t.Parallel()

	steps, err := Plan(testConfig(config.StrategyPlatformNative), testDeps())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"tooling",
		"project-access",
		"service-apis",
		"connection-secret",
		"service-identity",
		"role-bindings",
		"warehouse-table",
		"apply-manifest",
		"health-probe",
	}, stepNames(steps))
}

func TestPlan_UnknownStrategy(t *testing.T) {
	t.Parallel()

	cfg := testConfig(config.StrategyManagedBuild)
	cfg.Strategy = "rollout-by-hand"

	_, err := Plan(cfg, testDeps())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rollout-by-hand")
}
