package gcloud

import (
	"context"
	"fmt"

	"github.com/wallettrack/deployctl/internal/platform/secrets"
)

// SecretStore returns a secrets.Store backed by the provider's secret manager.
func (c *Client) SecretStore() secrets.Store {
	return &secretStore{client: c}
}

type secretStore struct {
	client *Client
}

// Exists implements secrets.Store.
func (s *secretStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.run.Run(ctx, "gcloud",
		"secrets", "describe", name,
		"--project", s.client.project,
		"--format=value(name)")
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe secret %s: %w", name, err)
	}
	return true, nil
}

// Create implements secrets.Store. The value is piped through stdin so it
// never shows up in a process argument list.
func (s *secretStore) Create(ctx context.Context, name, value string) error {
	_, err := s.client.run.RunInput(ctx, value, "gcloud",
		"secrets", "create", name,
		"--project", s.client.project,
		"--replication-policy=automatic",
		"--data-file=-")
	if err != nil {
		return fmt.Errorf("failed to create secret %s: %w", name, err)
	}
	return nil
}

// Value implements secrets.Store.
func (s *secretStore) Value(ctx context.Context, name string) (string, error) {
	out, err := s.client.run.Run(ctx, "gcloud",
		"secrets", "versions", "access", "latest",
		"--secret", name,
		"--project", s.client.project)
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	return out, nil
}
