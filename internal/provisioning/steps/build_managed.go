package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/wallettrack/deployctl/internal/platform/build"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// ManagedBuildStep submits the source to the provider's build service. The
// submitted pipeline both builds the image and rolls out the service, so this
// step owns the endpoint for the managed-build strategy. Verification polls
// the build until it reaches a terminal state.
type ManagedBuildStep struct {
	cloud  CloudClient
	remote build.RemoteBuilder
}

// NewManagedBuildStep creates the managed build step.
func NewManagedBuildStep(cloud CloudClient, remote build.RemoteBuilder) *ManagedBuildStep {
	return &ManagedBuildStep{cloud: cloud, remote: remote}
}

// Name implements provisioning.Step.
func (s *ManagedBuildStep) Name() string { return "managed-build" }

// Check implements provisioning.Step. A new build is always submitted; the
// pipeline decides internally what is stale.
func (s *ManagedBuildStep) Check(ctx *provisioning.Context) (bool, string, error) {
	return false, "build pipeline " + ctx.Config.Build.ConfigFile + " must run", nil
}

// Remediate implements provisioning.Step.
func (s *ManagedBuildStep) Remediate(ctx *provisioning.Context) error {
	ctx.Observer.Printf("submitting build pipeline %s", ctx.Config.Build.ConfigFile)
	id, err := s.remote.SubmitBuild(ctx, ctx.Config.Build.ConfigFile, ctx.Config.Build.Substitutions)
	if err != nil {
		return err
	}

	ctx.State.BuildID = id
	ctx.Observer.Printf("build %s submitted", id)
	return nil
}

// Verify implements provisioning.Step. Polls the submitted build until it
// finishes, then resolves the service endpoint.
func (s *ManagedBuildStep) Verify(ctx *provisioning.Context) error {
	if ctx.State.BuildID == "" {
		return fmt.Errorf("no build ID recorded after submission")
	}

	pollCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.RemoteBuild)
	defer cancel()

	status, err := s.waitForBuild(pollCtx, ctx, ctx.State.BuildID)
	if err != nil {
		return err
	}
	if status != build.BuildSuccess {
		return fmt.Errorf("build %s finished with status %s", ctx.State.BuildID, status)
	}

	url, err := s.cloud.DescribeService(ctx, ctx.Config.Service.Name, ctx.Config.Region)
	if err != nil {
		return err
	}
	if url == "" {
		return fmt.Errorf("service %s not found after build %s", ctx.Config.Service.Name, ctx.State.BuildID)
	}

	ctx.State.EndpointURL = url
	return nil
}

// waitForBuild polls the build status until terminal or the context expires.
func (s *ManagedBuildStep) waitForBuild(ctx context.Context, pctx *provisioning.Context, buildID string) (build.BuildStatus, error) {
	interval := pctx.Timeouts.RemoteBuildPoll
	if interval <= 0 {
		interval = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := s.remote.BuildStatus(ctx, buildID)
		if err != nil {
			return "", err
		}
		if status.Done() {
			return status, nil
		}
		pctx.Observer.Printf("build %s: %s", buildID, status)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("timed out waiting for build %s: %w", buildID, ctx.Err())
		case <-ticker.C:
		}
	}
}
