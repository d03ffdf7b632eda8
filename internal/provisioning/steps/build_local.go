package steps

import (
	"context"
	"fmt"

	"github.com/wallettrack/deployctl/internal/platform/build"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// LocalBuildStep builds the container image with the local docker daemon and
// pushes it to the registry. Builds are never skipped: the image contents may
// have changed even when a tag with the same name already exists, so Check
// always reports unsatisfied.
type LocalBuildStep struct {
	builder build.Builder
}

// NewLocalBuildStep creates the local build step.
func NewLocalBuildStep(builder build.Builder) *LocalBuildStep {
	return &LocalBuildStep{builder: builder}
}

// Name implements provisioning.Step.
func (s *LocalBuildStep) Name() string { return "build-image" }

// Check implements provisioning.Step.
func (s *LocalBuildStep) Check(ctx *provisioning.Context) (bool, string, error) {
	return false, "image must be rebuilt from " + ctx.Config.Build.ContextDir, nil
}

// Remediate implements provisioning.Step.
func (s *LocalBuildStep) Remediate(ctx *provisioning.Context) error {
	ref := ctx.Config.Service.ImageRef()

	buildCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Build)
	defer cancel()

	ctx.Observer.Printf("building %s from %s", ref, ctx.Config.Build.ContextDir)
	if err := s.builder.BuildImage(buildCtx, ctx.Config.Build.ContextDir, ref); err != nil {
		return err
	}

	ctx.Observer.Printf("pushing %s", ref)
	if err := s.builder.PushImage(buildCtx, ref); err != nil {
		return err
	}

	ctx.State.ImageRef = ref
	return nil
}

// Verify implements provisioning.Step.
func (s *LocalBuildStep) Verify(ctx *provisioning.Context) error {
	if ctx.State.ImageRef == "" {
		return fmt.Errorf("no image reference recorded after build")
	}
	return nil
}
