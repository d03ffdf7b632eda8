package steps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// ToolingStep verifies the required CLI tools are installed and the cloud
// CLI is authenticated. There is no remediation for a missing tool; failure
// is reported as a missing precondition and aborts the run immediately.
type ToolingStep struct {
	cloud CloudClient

	// lookPath is swappable for tests; defaults to exec.LookPath.
	lookPath func(name string) (string, error)
}

// NewToolingStep creates the preflight step.
func NewToolingStep(cloud CloudClient) *ToolingStep {
	return &ToolingStep{cloud: cloud, lookPath: exec.LookPath}
}

// Name implements provisioning.Step.
func (s *ToolingStep) Name() string { return "tooling" }

// requiredTools returns the CLIs a strategy needs.
func requiredTools(strategy config.Strategy) []string {
	tools := []string{"gcloud", "bq"}
	if strategy == config.StrategyLocalBuild {
		tools = append(tools, "docker")
	}
	return tools
}

// Check implements provisioning.Step. Tool absence surfaces as a
// PreconditionError from the check, never as a remediation attempt.
func (s *ToolingStep) Check(ctx *provisioning.Context) (bool, string, error) {
	tools := requiredTools(ctx.Config.Strategy)
	for _, tool := range tools {
		if _, err := s.lookPath(tool); err != nil {
			return false, "", &provisioning.PreconditionError{
				Subject: tool,
				Hint:    fmt.Sprintf("install %s and make sure it is on PATH", tool),
				Err:     err,
			}
		}
	}

	account, err := s.cloud.ActiveAccount(ctx)
	if err != nil {
		return false, "", &provisioning.PreconditionError{Subject: "cloud authentication", Err: err}
	}
	if account == "" {
		return false, "", &provisioning.PreconditionError{
			Subject: "cloud authentication",
			Hint:    "run 'gcloud auth login' first",
		}
	}

	return true, fmt.Sprintf("%s available, authenticated as %s", strings.Join(tools, ", "), account), nil
}

// Remediate implements provisioning.Step. Never reached: preflight failures
// are precondition errors.
func (s *ToolingStep) Remediate(_ *provisioning.Context) error {
	return fmt.Errorf("missing tooling cannot be remediated automatically")
}

// Verify implements provisioning.Step.
func (s *ToolingStep) Verify(_ *provisioning.Context) error { return nil }

// ProjectAccessStep verifies the target project is reachable by the active
// account. Projects are never created by this tool, so inaccessibility is a
// precondition failure.
type ProjectAccessStep struct {
	cloud CloudClient
}

// NewProjectAccessStep creates the project access step.
func NewProjectAccessStep(cloud CloudClient) *ProjectAccessStep {
	return &ProjectAccessStep{cloud: cloud}
}

// Name implements provisioning.Step.
func (s *ProjectAccessStep) Name() string { return "project-access" }

// Check implements provisioning.Step.
func (s *ProjectAccessStep) Check(ctx *provisioning.Context) (bool, string, error) {
	if err := s.cloud.ProjectAccessible(ctx); err != nil {
		return false, "", &provisioning.PreconditionError{
			Subject: "project " + ctx.Config.Project,
			Hint:    "check the project ID and your permissions",
			Err:     err,
		}
	}
	return true, "project " + ctx.Config.Project, nil
}

// Remediate implements provisioning.Step.
func (s *ProjectAccessStep) Remediate(_ *provisioning.Context) error {
	return fmt.Errorf("projects are not created by this tool")
}

// Verify implements provisioning.Step.
func (s *ProjectAccessStep) Verify(_ *provisioning.Context) error { return nil }
