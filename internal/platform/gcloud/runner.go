package gcloud

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// CommandRunner executes a CLI command and returns its stdout.
// Implementations must include stderr in the returned error on failure.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)

	// RunInput is Run with data piped to the command's stdin. Used for
	// secret creation so the value never appears in an argument list.
	RunInput(ctx context.Context, stdin string, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	return runCmd(ctx, "", name, args...)
}

// RunInput implements CommandRunner.
func (ExecRunner) RunInput(ctx context.Context, stdin string, name string, args ...string) (string, error) {
	return runCmd(ctx, stdin, name, args...)
}

func runCmd(ctx context.Context, stdin, name string, args ...string) (string, error) {
	// #nosec G204 -- command names are fixed, arguments come from validated config
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Command: name + " " + strings.Join(args, " "),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
