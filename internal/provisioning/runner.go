package provisioning

import (
	"fmt"
	"time"
)

// Runner executes an ordered list of steps against a shared context.
type Runner struct {
	Steps []Step
}

// NewRunner creates a runner for the given steps.
func NewRunner(steps ...Step) *Runner {
	return &Runner{Steps: steps}
}

// Run executes all steps in declared order.
//
// For each step the check runs first; if the resource is already satisfied
// the step is recorded as skipped and remediation is never invoked. Otherwise
// remediation runs, followed by verification. Any failure aborts the
// remainder of the run, except for steps marked non-fatal (the health probe),
// which downgrade the terminal status instead.
func (r *Runner) Run(ctx *Context) *RunResult {
	result := &RunResult{Status: RunSuccess}
	start := time.Now()

	ctx.Observer.Printf("Starting run with %d steps (strategy: %s)...", len(r.Steps), ctx.Config.Strategy)

	for i, step := range r.Steps {
		stepStart := time.Now()
		ctx.Observer.Event(Event{Type: EventStepStarted, Step: step.Name(), Message: fmt.Sprintf("starting (%d/%d)", i+1, len(r.Steps))})

		status, detail, err := r.runStep(ctx, step)
		if err != nil {
			if isNonFatal(step) {
				result.record(step.Name(), StepFailed, err.Error())
				if result.Status == RunSuccess {
					result.Status = RunUnverifiedHealth
					result.Reason = err.Error()
				}
				ctx.Observer.Event(Event{Type: EventStepWarning, Step: step.Name(), Message: err.Error()})
				continue
			}

			result.record(step.Name(), StepFailed, err.Error())
			result.Status = RunFailed
			result.FailedStep = step.Name()
			result.Reason = err.Error()
			result.EndpointURL = ctx.State.EndpointURL
			ctx.Observer.Event(Event{Type: EventStepFailed, Step: step.Name(), Message: err.Error()})
			return result
		}

		result.record(step.Name(), status, detail)
		eventType := EventStepRemediated
		if status == StepSkipped {
			eventType = EventStepSkipped
		}
		ctx.Observer.Event(Event{
			Type:    eventType,
			Step:    step.Name(),
			Message: fmt.Sprintf("%s in %v", status, time.Since(stepStart).Round(time.Millisecond)),
		})
	}

	result.EndpointURL = ctx.State.EndpointURL
	ctx.Observer.Event(Event{
		Type:    EventRunCompleted,
		Message: fmt.Sprintf("%s in %v", result.Status, time.Since(start).Round(time.Millisecond)),
	})
	return result
}

// runStep executes the check/remediate/verify sequence for one step.
func (r *Runner) runStep(ctx *Context, step Step) (StepStatus, string, error) {
	satisfied, detail, err := step.Check(ctx)
	if err != nil {
		return StepFailed, "", fmt.Errorf("%s check failed: %w", step.Name(), err)
	}
	if satisfied {
		return StepSkipped, detail, nil
	}

	if err := step.Remediate(ctx); err != nil {
		return StepFailed, "", &RemediationError{Step: step.Name(), Err: err}
	}
	if err := step.Verify(ctx); err != nil {
		return StepFailed, "", &VerificationError{Step: step.Name(), Err: err}
	}

	return StepRemediated, detail, nil
}

// isNonFatal reports whether a step opted into non-fatal failure handling.
func isNonFatal(step Step) bool {
	nf, ok := step.(NonFatalStep)
	return ok && nf.NonFatal()
}
