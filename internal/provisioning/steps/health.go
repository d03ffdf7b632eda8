package steps

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/wallettrack/deployctl/internal/platform/probe"
	"github.com/wallettrack/deployctl/internal/provisioning"
	"github.com/wallettrack/deployctl/internal/util/retry"
)

// HealthStep probes the deployed service's health endpoint. A failing probe
// does not undo the deployment: the step is non-fatal, the run finishes with
// an unverified-health outcome and the operator is pointed at the logs.
type HealthStep struct {
	prober probe.Prober
}

// NewHealthStep creates the post-deploy health step.
func NewHealthStep(prober probe.Prober) *HealthStep {
	return &HealthStep{prober: prober}
}

// Name implements provisioning.Step.
func (s *HealthStep) Name() string { return "health-probe" }

// NonFatal implements provisioning.NonFatalStep.
func (s *HealthStep) NonFatal() bool { return true }

// Check implements provisioning.Step. The probe always runs after a deploy.
func (s *HealthStep) Check(ctx *provisioning.Context) (bool, string, error) {
	if ctx.State.EndpointURL == "" {
		return false, "", &provisioning.PreconditionError{
			Subject: "service endpoint",
			Hint:    "the deploy step must record an endpoint before the probe",
		}
	}
	return false, "endpoint health must be probed", nil
}

// Remediate implements provisioning.Step.
func (s *HealthStep) Remediate(ctx *provisioning.Context) error {
	url := strings.TrimRight(ctx.State.EndpointURL, "/") + ctx.Config.Service.HealthPath

	var code int
	err := retry.Do(ctx, func() error {
		var err error
		code, err = s.prober.GetWithTimeout(ctx, url, ctx.Timeouts.HealthProbe)
		if err != nil {
			return err
		}
		if code != http.StatusOK {
			return fmt.Errorf("unexpected status %d", code)
		}
		return nil
	},
		retry.WithMaxAttempts(ctx.Timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(ctx.Timeouts.RetryInitialDelay),
	)
	if err != nil {
		return fmt.Errorf("health probe of %s failed: %w; the service is deployed, check deployment logs", url, err)
	}

	ctx.Observer.Printf("health probe of %s returned %d", url, code)
	return nil
}

// Verify implements provisioning.Step. The probe itself is the verification.
func (s *HealthStep) Verify(_ *provisioning.Context) error { return nil }
