package provisioning

// StepStatus is the outcome of a single step.
type StepStatus string

const (
	// StepSkipped means the check found the resource already satisfied.
	StepSkipped StepStatus = "skipped-already-satisfied"
	// StepRemediated means the resource was created and verified.
	StepRemediated StepStatus = "remediated"
	// StepFailed means remediation or verification failed.
	StepFailed StepStatus = "failed"
)

// RunStatus is the terminal status of a whole run.
type RunStatus string

const (
	// RunSuccess means every step completed and the health probe passed.
	RunSuccess RunStatus = "success"
	// RunUnverifiedHealth means provisioning and deploy succeeded but the
	// health probe did not confirm the service is serving.
	RunUnverifiedHealth RunStatus = "deployed-with-unverified-health"
	// RunFailed means a step failed and the remainder was aborted.
	RunFailed RunStatus = "failed"
)

// StepOutcome is one entry in the ordered run log.
type StepOutcome struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`
}

// RunResult is the sole externally observable state of a run. It accumulates
// monotonically while steps execute and is immutable once the run ends.
type RunResult struct {
	Steps       []StepOutcome `json:"steps"`
	EndpointURL string        `json:"endpointURL,omitempty"`
	Status      RunStatus     `json:"status"`
	FailedStep  string        `json:"failedStep,omitempty"`
	Reason      string        `json:"reason,omitempty"`
}

func (r *RunResult) record(name string, status StepStatus, detail string) {
	r.Steps = append(r.Steps, StepOutcome{Name: name, Status: status, Detail: detail})
}

// Succeeded reports whether the run provisioned and deployed, regardless of
// health verification.
func (r *RunResult) Succeeded() bool {
	return r.Status == RunSuccess || r.Status == RunUnverifiedHealth
}

// ExitCode maps the terminal status to a process exit code.
// Unverified health is still a successful deploy.
func (r *RunResult) ExitCode() int {
	if r.Succeeded() {
		return 0
	}
	return 1
}

// RemediatedCount returns how many steps performed remediation.
func (r *RunResult) RemediatedCount() int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == StepRemediated {
			n++
		}
	}
	return n
}
