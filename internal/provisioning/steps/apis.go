package steps

import (
	"fmt"
	"strings"

	"github.com/wallettrack/deployctl/internal/provisioning"
)

// APIsStep ensures every required provider API is enabled. The check
// computes the set difference against the currently enabled APIs and
// remediation enables only the missing subset.
type APIsStep struct {
	cloud CloudClient

	missing []string
}

// NewAPIsStep creates the API enablement step.
func NewAPIsStep(cloud CloudClient) *APIsStep {
	return &APIsStep{cloud: cloud}
}

// Name implements provisioning.Step.
func (s *APIsStep) Name() string { return "service-apis" }

// Check implements provisioning.Step.
func (s *APIsStep) Check(ctx *provisioning.Context) (bool, string, error) {
	enabled, err := s.cloud.ListEnabledAPIs(ctx)
	if err != nil {
		return false, "", err
	}

	s.missing = s.missing[:0]
	for _, api := range ctx.Config.APIs {
		if !enabled[api] {
			s.missing = append(s.missing, api)
		}
	}

	if len(s.missing) == 0 {
		return true, fmt.Sprintf("all %d APIs enabled", len(ctx.Config.APIs)), nil
	}
	return false, "missing: " + strings.Join(s.missing, ", "), nil
}

// Remediate implements provisioning.Step.
func (s *APIsStep) Remediate(ctx *provisioning.Context) error {
	for _, api := range s.missing {
		provisioning.LogResourceCreating(ctx.Observer, s.Name(), "API", api)
		if err := s.cloud.EnableAPI(ctx, api); err != nil {
			return err
		}
		provisioning.LogResourceCreated(ctx.Observer, s.Name(), "API", api)
	}
	return nil
}

// Verify implements provisioning.Step.
func (s *APIsStep) Verify(ctx *provisioning.Context) error {
	enabled, err := s.cloud.ListEnabledAPIs(ctx)
	if err != nil {
		return err
	}
	for _, api := range ctx.Config.APIs {
		if !enabled[api] {
			return fmt.Errorf("API %s still not enabled", api)
		}
	}
	return nil
}
