package gcloud

import (
	"context"
	"encoding/json"
	"fmt"
)

// ServiceIdentityExists reports whether the service account exists.
func (c *Client) ServiceIdentityExists(ctx context.Context, email string) (bool, error) {
	_, err := c.run.Run(ctx, "gcloud",
		"iam", "service-accounts", "describe", email,
		"--project", c.project,
		"--format=value(email)")
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe service account %s: %w", email, err)
	}
	return true, nil
}

// CreateServiceIdentity creates a service account with the given short name.
func (c *Client) CreateServiceIdentity(ctx context.Context, name, displayName string) error {
	_, err := c.run.Run(ctx, "gcloud",
		"iam", "service-accounts", "create", name,
		"--project", c.project,
		"--display-name", displayName)
	if err != nil {
		return fmt.Errorf("failed to create service account %s: %w", name, err)
	}
	return nil
}

// iamPolicy mirrors the JSON shape of a project IAM policy.
type iamPolicy struct {
	Bindings []struct {
		Role    string   `json:"role"`
		Members []string `json:"members"`
	} `json:"bindings"`
}

// RoleBindings returns the set of roles currently bound to the member on the
// project.
func (c *Client) RoleBindings(ctx context.Context, member string) (map[string]bool, error) {
	out, err := c.run.Run(ctx, "gcloud",
		"projects", "get-iam-policy", c.project,
		"--format=json")
	if err != nil {
		return nil, fmt.Errorf("failed to get IAM policy: %w", err)
	}

	var policy iamPolicy
	if err := json.Unmarshal([]byte(out), &policy); err != nil {
		return nil, fmt.Errorf("failed to parse IAM policy: %w", err)
	}

	bound := make(map[string]bool)
	for _, binding := range policy.Bindings {
		for _, m := range binding.Members {
			if m == member {
				bound[binding.Role] = true
				break
			}
		}
	}
	return bound, nil
}

// AddRoleBinding grants a single role to the member on the project.
func (c *Client) AddRoleBinding(ctx context.Context, member, role string) error {
	_, err := c.run.Run(ctx, "gcloud",
		"projects", "add-iam-policy-binding", c.project,
		"--member", member,
		"--role", role,
		"--format=none")
	if err != nil {
		return fmt.Errorf("failed to bind %s to %s: %w", role, member, err)
	}
	return nil
}
