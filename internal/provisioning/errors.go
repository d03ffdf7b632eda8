package provisioning

import (
	"errors"
	"fmt"
)

// PreconditionError reports a missing precondition, such as an absent or
// unauthenticated CLI tool. Precondition failures are fatal and no
// remediation is attempted for them.
type PreconditionError struct {
	Subject string // what is missing (tool name, credential)
	Hint    string // how to fix it
	Err     error
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("precondition missing: %s", e.Subject)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// IsPrecondition reports whether err carries a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// RemediationError reports that creating or fixing a resource failed.
// It aborts the remainder of the run.
type RemediationError struct {
	Step string
	Err  error
}

func (e *RemediationError) Error() string {
	return fmt.Sprintf("%s remediation failed: %v", e.Step, e.Err)
}

func (e *RemediationError) Unwrap() error { return e.Err }

// VerificationError reports that a step's post-condition did not hold after
// remediation.
type VerificationError struct {
	Step string
	Err  error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s verification failed: %v", e.Step, e.Err)
}

func (e *VerificationError) Unwrap() error { return e.Err }
