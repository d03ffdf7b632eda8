package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Interactive reports whether stdout is an interactive terminal.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Confirm asks the user a yes/no question. autoApprove short-circuits to yes,
// and a non-interactive session without auto-approval answers no.
func Confirm(ctx context.Context, title string, autoApprove bool) (bool, error) {
	if autoApprove {
		return true, nil
	}
	if !Interactive() {
		return false, fmt.Errorf("refusing to continue without confirmation; pass --yes in non-interactive sessions")
	}

	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return false, fmt.Errorf("confirmation canceled: %w", err)
	}
	return confirmed, nil
}

// SecretValue resolves a secret value: the named environment variable wins,
// otherwise an interactive masked prompt asks for it. Non-interactive
// sessions with no environment value fail instead of hanging.
func SecretValue(ctx context.Context, envVar, title string) (string, error) {
	if value := os.Getenv(envVar); value != "" {
		return value, nil
	}
	if !Interactive() {
		return "", fmt.Errorf("set %s; interactive input is unavailable", envVar)
	}

	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(&value),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", fmt.Errorf("secret input canceled: %w", err)
	}
	return value, nil
}
