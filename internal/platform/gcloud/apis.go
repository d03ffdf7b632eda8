package gcloud

import (
	"context"
	"fmt"
	"strings"
)

// ListEnabledAPIs returns the set of APIs currently enabled on the project.
func (c *Client) ListEnabledAPIs(ctx context.Context) (map[string]bool, error) {
	out, err := c.run.Run(ctx, "gcloud",
		"services", "list",
		"--enabled",
		"--project", c.project,
		"--format=value(config.name)")
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled APIs: %w", err)
	}

	enabled := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			enabled[name] = true
		}
	}
	return enabled, nil
}

// EnableAPI enables a single API on the project. Enabling an already enabled
// API is a no-op on the provider side.
func (c *Client) EnableAPI(ctx context.Context, name string) error {
	_, err := c.run.Run(ctx, "gcloud",
		"services", "enable", name,
		"--project", c.project)
	if err != nil {
		return fmt.Errorf("failed to enable API %s: %w", name, err)
	}
	return nil
}
