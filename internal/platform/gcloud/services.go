package gcloud

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DeploySpec describes one managed service deployment.
type DeploySpec struct {
	Name                 string
	Image                string
	Region               string
	ServiceAccount       string
	Port                 int
	AllowUnauthenticated bool

	// SecretEnv maps environment variable names to secret names; the latest
	// secret version is mounted at deploy time.
	SecretEnv map[string]string

	// Env holds plain environment variables.
	Env map[string]string
}

// DeployService deploys the image as a managed service and returns the
// service endpoint URL.
func (c *Client) DeployService(ctx context.Context, spec DeploySpec) (string, error) {
	args := []string{
		"run", "deploy", spec.Name,
		"--image", spec.Image,
		"--project", c.project,
		"--region", spec.Region,
		"--format=value(status.url)",
	}
	if spec.ServiceAccount != "" {
		args = append(args, "--service-account", spec.ServiceAccount)
	}
	if spec.Port > 0 {
		args = append(args, "--port", strconv.Itoa(spec.Port))
	}
	if spec.AllowUnauthenticated {
		args = append(args, "--allow-unauthenticated")
	}
	if len(spec.SecretEnv) > 0 {
		args = append(args, "--set-secrets", joinKV(spec.SecretEnv, ":latest"))
	}
	if len(spec.Env) > 0 {
		args = append(args, "--set-env-vars", joinKV(spec.Env, ""))
	}

	out, err := c.run.Run(ctx, "gcloud", args...)
	if err != nil {
		return "", fmt.Errorf("failed to deploy service %s: %w", spec.Name, err)
	}
	return out, nil
}

// ReplaceService applies a rendered service manifest and returns nothing;
// the caller looks up the endpoint afterwards with DescribeService.
func (c *Client) ReplaceService(ctx context.Context, manifestPath, region string) error {
	_, err := c.run.Run(ctx, "gcloud",
		"run", "services", "replace", manifestPath,
		"--project", c.project,
		"--region", region)
	if err != nil {
		return fmt.Errorf("failed to replace service from %s: %w", manifestPath, err)
	}
	return nil
}

// DescribeService returns the service endpoint URL, or "" when the service
// does not exist.
func (c *Client) DescribeService(ctx context.Context, name, region string) (string, error) {
	out, err := c.run.Run(ctx, "gcloud",
		"run", "services", "describe", name,
		"--project", c.project,
		"--region", region,
		"--format=value(status.url)")
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to describe service %s: %w", name, err)
	}
	return out, nil
}

// DeleteService removes the service. Deleting an absent service is not an
// error so cleanup stays idempotent.
func (c *Client) DeleteService(ctx context.Context, name, region string) error {
	_, err := c.run.Run(ctx, "gcloud",
		"run", "services", "delete", name,
		"--project", c.project,
		"--region", region,
		"--quiet")
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete service %s: %w", name, err)
	}
	return nil
}

// joinKV renders a map as "k=vSUFFIX,k=vSUFFIX" with deterministic ordering.
func joinKV(m map[string]string, suffix string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+m[k]+suffix)
	}
	return strings.Join(parts, ",")
}
