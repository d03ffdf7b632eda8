package config

import (
	"fmt"
	"regexp"
	"strings"
)

// serviceNameRegex validates service names: lowercase alphanumeric with hyphens.
var serviceNameRegex = regexp.MustCompile(`^[a-z]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Validate checks the configuration for completeness and consistency.
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}

	if c.Service.Name == "" {
		return fmt.Errorf("service.name is required")
	}
	if !serviceNameRegex.MatchString(c.Service.Name) {
		return fmt.Errorf("service.name %q must be lowercase alphanumeric with hyphens", c.Service.Name)
	}
	if c.Service.Image == "" && c.Strategy != StrategyManagedBuild {
		return fmt.Errorf("service.image is required for strategy %s", c.Strategy)
	}

	if c.Strategy == StrategyManagedBuild && c.Build.ConfigFile == "" {
		return fmt.Errorf("build.configFile is required for strategy %s", StrategyManagedBuild)
	}

	if c.Secret.Name == "" {
		return fmt.Errorf("secret.name is required")
	}
	switch c.Secret.Backend {
	case SecretBackendCloud, SecretBackendAWS:
	default:
		return fmt.Errorf("secret.backend %q must be %q or %q", c.Secret.Backend, SecretBackendCloud, SecretBackendAWS)
	}
	if c.Secret.Backend == SecretBackendAWS && c.Secret.AWSRegion == "" {
		return fmt.Errorf("secret.awsRegion is required when secret.backend is %q", SecretBackendAWS)
	}

	for _, role := range c.Identity.Roles {
		if !strings.HasPrefix(role, "roles/") {
			return fmt.Errorf("identity role %q must start with roles/", role)
		}
	}

	for i, field := range c.Warehouse.Schema {
		if field.Name == "" || field.Type == "" {
			return fmt.Errorf("warehouse.schema[%d] needs both name and type", i)
		}
	}

	return nil
}
