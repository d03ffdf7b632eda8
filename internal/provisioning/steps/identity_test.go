package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallettrack/deployctl/internal/config"
)

func TestIdentityStep_CreatesAbsentIdentity(t *testing.T) {
	t.Parallel()

	cloud := newFakeCloud()
	ctx := testCtx(testConfig(config.StrategyManagedBuild))
	step := NewIdentityStep(cloud)

	satisfied, _, err := step.Check(ctx)
	require.NoError(t, err)
	require.False(t, satisfied)

	require.NoError(t, step.Remediate(ctx))
	assert.Equal(t, 1, cloud.createIdentityCalls)

	require.NoError(t, step.Verify(ctx))
}

func TestIdentityStep_ExistingIdentitySkips(t *testing.T) {
	t.Parallel()

	cloud := newFakeCloud()
	cloud.identities["wallet-tracker-sa@wallet-prod.iam.gserviceaccount.com"] = true

	step := NewIdentityStep(cloud)
	satisfied, detail, err := step.Check(testCtx(testConfig(config.StrategyManagedBuild)))
	require.NoError(t, err)
	assert.True(t, satisfied)
	assert.Contains(t, detail, "wallet-tracker-sa@wallet-prod.iam.gserviceaccount.com")
	assert.Zero(t, cloud.createIdentityCalls)
}

func TestRoleBindingsStep_BindsOnlyMissingRoles(t *testing.T) {
	t.Parallel()

	cloud := newFakeCloud()
	cloud.bindings["roles/secretmanager.secretAccessor"] = true

	ctx := testCtx(testConfig(config.StrategyManagedBuild))
	step := NewRoleBindingsStep(cloud)

	satisfied, detail, err := step.Check(ctx)
	require.NoError(t, err)
	assert.False(t, satisfied)
	assert.Contains(t, detail, "roles/bigquery.dataEditor")
	assert.NotContains(t, detail, "roles/secretmanager.secretAccessor")

	require.NoError(t, step.Remediate(ctx))
	assert.Equal(t, []string{"roles/bigquery.dataEditor"}, cloud.addBindingCalls,
		"roles already bound must never be re-bound")

	require.NoError(t, step.Verify(ctx))
}

func TestRoleBindingsStep_AllBoundSkips(t *testing.T) {
	t.Parallel()

	cloud := newFakeCloud()
	cloud.bindings["roles/secretmanager.secretAccessor"] = true
	cloud.bindings["roles/bigquery.dataEditor"] = true

	step := NewRoleBindingsStep(cloud)
	satisfied, detail, err := step.Check(testCtx(testConfig(config.StrategyManagedBuild)))
	require.NoError(t, err)
	assert.True(t, satisfied)
	assert.Contains(t, detail, "all 2 roles bound")
	assert.Empty(t, cloud.addBindingCalls)
}

func TestMissingRoles_SetDifference(t *testing.T) {
	t.Parallel()

	required := []string{"roles/c", "roles/a", "roles/b"}
	bound := map[string]bool{"roles/b": true}

	assert.Equal(t, []string{"roles/a", "roles/c"}, missingRoles(required, bound))
	assert.Nil(t, missingRoles(nil, bound))
}
