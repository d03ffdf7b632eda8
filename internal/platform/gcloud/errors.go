package gcloud

import (
	"errors"
	"fmt"
	"strings"
)

// CommandError wraps a failed CLI invocation with its captured stderr.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// notFoundMarkers are the phrases the CLIs print when a resource is absent.
var notFoundMarkers = []string{
	"NOT_FOUND",
	"not found",
	"could not be found",
	"does not exist",
}

// IsNotFound reports whether an error indicates a resource was not found.
// Absence is an expected answer for existence checks, not a failure.
func IsNotFound(err error) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	for _, marker := range notFoundMarkers {
		if strings.Contains(cmdErr.Stderr, marker) {
			return true
		}
	}
	return false
}
