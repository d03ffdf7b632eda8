package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallettrack/deployctl/internal/config"
)

func TestAPIsStep_AllEnabledSkips(t *testing.T) {
	t.Parallel()

	cloud := newFakeCloud()
	cloud.enabledAPIs["run.googleapis.com"] = true
	cloud.enabledAPIs["bigquery.googleapis.com"] = true

	step := NewAPIsStep(cloud)
	satisfied, _, err := step.Check(testCtx(testConfig(config.StrategyManagedBuild)))
	require.NoError(t, err)
	assert.True(t, satisfied)
	assert.Empty(t, cloud.enableAPICalls)
}

func TestAPIsStep_EnablesOnlyMissing(t *testing.T) {
	t.Parallel()

	cloud := newFakeCloud()
	cloud.enabledAPIs["run.googleapis.com"] = true

	ctx := testCtx(testConfig(config.StrategyManagedBuild))
	step := NewAPIsStep(cloud)

	satisfied, detail, err := step.Check(ctx)
	require.NoError(t, err)
	assert.False(t, satisfied)
	assert.Contains(t, detail, "bigquery.googleapis.com")

	require.NoError(t, step.Remediate(ctx))
	assert.Equal(t, []string{"bigquery.googleapis.com"}, cloud.enableAPICalls)

	require.NoError(t, step.Verify(ctx))
}

func TestAPIsStep_SecondRunSkips(t *testing.T) {
	t.Parallel()

	cloud := newFakeCloud()
	ctx := testCtx(testConfig(config.StrategyManagedBuild))
	step := NewAPIsStep(cloud)

	satisfied, _, err := step.Check(ctx)
	require.NoError(t, err)
	require.False(t, satisfied)
	require.NoError(t, step.Remediate(ctx))

	again := NewAPIsStep(cloud)
	satisfied, _, err = again.Check(ctx)
	require.NoError(t, err)
	assert.True(t, satisfied)
	assert.Len(t, cloud.enableAPICalls, 2)
}
