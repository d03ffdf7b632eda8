package steps

import (
	"fmt"

	"github.com/wallettrack/deployctl/internal/platform/secrets"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// SecretStep ensures the database connection secret exists in the
// configured backend. The secret value is only requested (from the injected
// source) when the secret actually has to be created.
type SecretStep struct {
	store secrets.Store
	value SecretValueSource
}

// NewSecretStep creates the connection secret step.
func NewSecretStep(store secrets.Store, value SecretValueSource) *SecretStep {
	return &SecretStep{store: store, value: value}
}

// Name implements provisioning.Step.
func (s *SecretStep) Name() string { return "connection-secret" }

// Check implements provisioning.Step.
func (s *SecretStep) Check(ctx *provisioning.Context) (bool, string, error) {
	name := ctx.Config.Secret.Name
	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return false, "", err
	}
	if exists {
		provisioning.LogResourceExists(ctx.Observer, s.Name(), "secret", name)
		return true, fmt.Sprintf("secret %s exists (%s backend)", name, ctx.Config.Secret.Backend), nil
	}
	return false, fmt.Sprintf("secret %s absent", name), nil
}

// Remediate implements provisioning.Step.
func (s *SecretStep) Remediate(ctx *provisioning.Context) error {
	name := ctx.Config.Secret.Name

	value, err := s.value(ctx)
	if err != nil {
		return fmt.Errorf("no secret value available: %w", err)
	}
	if value == "" {
		return fmt.Errorf("secret value is empty")
	}

	provisioning.LogResourceCreating(ctx.Observer, s.Name(), "secret", name)
	if err := s.store.Create(ctx, name, value); err != nil {
		return err
	}
	provisioning.LogResourceCreated(ctx.Observer, s.Name(), "secret", name)
	return nil
}

// Verify implements provisioning.Step.
func (s *SecretStep) Verify(ctx *provisioning.Context) error {
	exists, err := s.store.Exists(ctx, ctx.Config.Secret.Name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("secret %s still absent after creation", ctx.Config.Secret.Name)
	}
	return nil
}
