package gcloud

import (
	"context"
	"fmt"
)

// Client talks to the provider control plane for one project.
type Client struct {
	run     CommandRunner
	project string
}

// Option customizes a Client.
type Option func(*Client)

// WithRunner replaces the command runner, used by tests.
func WithRunner(r CommandRunner) Option {
	return func(c *Client) {
		c.run = r
	}
}

// NewClient creates a control-plane client pinned to the given project.
// The project is passed on every CLI call; the ambient gcloud project
// configuration is never consulted.
func NewClient(project string, opts ...Option) *Client {
	c := &Client{
		run:     ExecRunner{},
		project: project,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project returns the project the client is pinned to.
func (c *Client) Project() string {
	return c.project
}

// ProjectAccessible verifies the configured project exists and the active
// account can read it.
func (c *Client) ProjectAccessible(ctx context.Context) error {
	_, err := c.run.Run(ctx, "gcloud",
		"projects", "describe", c.project,
		"--format=value(projectId)")
	if err != nil {
		return fmt.Errorf("project %s is not accessible: %w", c.project, err)
	}
	return nil
}

// ActiveAccount returns the account the CLI is authenticated as.
// An empty result means nobody is logged in.
func (c *Client) ActiveAccount(ctx context.Context) (string, error) {
	out, err := c.run.Run(ctx, "gcloud",
		"auth", "list",
		"--filter=status:ACTIVE",
		"--format=value(account)")
	if err != nil {
		return "", fmt.Errorf("failed to query active account: %w", err)
	}
	return out, nil
}
