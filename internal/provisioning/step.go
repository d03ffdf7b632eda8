package provisioning

// Step is one idempotent unit of provisioning work.
type Step interface {
	// Name returns the human-readable name of this step.
	Name() string

	// Check reports whether the step's post-condition already holds.
	// The detail string is surfaced in the run log.
	Check(ctx *Context) (satisfied bool, detail string, err error)

	// Remediate creates or fixes the resource. It is only invoked when
	// Check reported the resource absent.
	Remediate(ctx *Context) error

	// Verify confirms the remediation succeeded. A step is never recorded
	// successful without verification passing.
	Verify(ctx *Context) error
}

// NonFatalStep marks a step whose failure downgrades the run instead of
// aborting it. The post-deploy health probe is the only such step: the deploy
// itself already succeeded, so a failed probe must not fail the run.
type NonFatalStep interface {
	Step
	NonFatal() bool
}
