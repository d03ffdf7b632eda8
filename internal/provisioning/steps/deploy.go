package steps

import (
	"context"
	"fmt"

	"github.com/wallettrack/deployctl/internal/platform/gcloud"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// DeployServiceStep rolls out the previously built image as a managed
// service. Deploys are always applied: the platform itself no-ops when
// nothing changed, and re-applying the same revision is harmless.
type DeployServiceStep struct {
	cloud CloudClient
}

// NewDeployServiceStep creates the service deploy step.
func NewDeployServiceStep(cloud CloudClient) *DeployServiceStep {
	return &DeployServiceStep{cloud: cloud}
}

// Name implements provisioning.Step.
func (s *DeployServiceStep) Name() string { return "deploy-service" }

// Check implements provisioning.Step.
func (s *DeployServiceStep) Check(ctx *provisioning.Context) (bool, string, error) {
	if ctx.State.ImageRef == "" {
		return false, "", &provisioning.PreconditionError{
			Subject: "built image",
			Hint:    "the build step must run before deploy",
		}
	}
	return false, "service must be rolled out with " + ctx.State.ImageRef, nil
}

// Remediate implements provisioning.Step.
func (s *DeployServiceStep) Remediate(ctx *provisioning.Context) error {
	cfg := ctx.Config

	deployCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Deploy)
	defer cancel()

	spec := gcloud.DeploySpec{
		Name:                 cfg.Service.Name,
		Image:                ctx.State.ImageRef,
		Region:               cfg.Region,
		ServiceAccount:       cfg.Identity.Email(cfg.Project),
		Port:                 cfg.Service.Port,
		AllowUnauthenticated: cfg.Service.AllowUnauthenticated,
		SecretEnv:            map[string]string{cfg.Secret.EnvVar: cfg.Secret.Name},
	}

	ctx.Observer.Printf("deploying %s to %s", cfg.Service.Name, cfg.Region)
	url, err := s.cloud.DeployService(deployCtx, spec)
	if err != nil {
		return err
	}

	ctx.State.EndpointURL = url
	return nil
}

// Verify implements provisioning.Step.
func (s *DeployServiceStep) Verify(ctx *provisioning.Context) error {
	url, err := s.cloud.DescribeService(ctx, ctx.Config.Service.Name, ctx.Config.Region)
	if err != nil {
		return err
	}
	if url == "" {
		return fmt.Errorf("service %s not found after deploy", ctx.Config.Service.Name)
	}
	ctx.State.EndpointURL = url
	return nil
}
