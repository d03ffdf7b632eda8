package config

import "fmt"

// Config is the immutable configuration for one orchestration run.
type Config struct {
	// Project is the cloud project ID all resources live in.
	Project string `mapstructure:"project" yaml:"project"`

	// Region is the deployment region for the compute service.
	Region string `mapstructure:"region" yaml:"region"`

	// Strategy selects which build/deploy path runs.
	Strategy Strategy `mapstructure:"strategy" yaml:"strategy"`

	// APIs lists the provider APIs that must be enabled before deploying.
	APIs []string `mapstructure:"apis" yaml:"apis,omitempty"`

	Service   ServiceConfig   `mapstructure:"service" yaml:"service"`
	Build     BuildConfig     `mapstructure:"build" yaml:"build,omitempty"`
	Secret    SecretConfig    `mapstructure:"secret" yaml:"secret"`
	Identity  IdentityConfig  `mapstructure:"identity" yaml:"identity"`
	Warehouse WarehouseConfig `mapstructure:"warehouse" yaml:"warehouse"`

	// Timeouts are loaded from environment variables, not from the file.
	Timeouts *Timeouts `mapstructure:"-" yaml:"-"`
}

// ServiceConfig describes the deployable compute service.
type ServiceConfig struct {
	// Name is the managed service name.
	Name string `mapstructure:"name" yaml:"name"`

	// Image is the full image reference (repository path without tag).
	Image string `mapstructure:"image" yaml:"image"`

	// Tag is the image tag to build and deploy.
	Tag string `mapstructure:"tag" yaml:"tag,omitempty"`

	// HealthPath is the well-known health endpoint probed after deploy.
	HealthPath string `mapstructure:"healthPath" yaml:"healthPath,omitempty"`

	// Port is the container port the service listens on.
	Port int `mapstructure:"port" yaml:"port,omitempty"`

	// AllowUnauthenticated exposes the service publicly.
	AllowUnauthenticated bool `mapstructure:"allowUnauthenticated" yaml:"allowUnauthenticated,omitempty"`
}

// BuildConfig describes how the container image gets built.
type BuildConfig struct {
	// ContextDir is the local build context directory.
	ContextDir string `mapstructure:"contextDir" yaml:"contextDir,omitempty"`

	// ConfigFile is the remote build pipeline definition, used by the
	// managed-build strategy.
	ConfigFile string `mapstructure:"configFile" yaml:"configFile,omitempty"`

	// Substitutions are key/value pairs passed to the remote build service.
	Substitutions map[string]string `mapstructure:"substitutions" yaml:"substitutions,omitempty"`
}

// SecretBackend selects where the connection secret is stored.
type SecretBackend string

const (
	// SecretBackendCloud stores the secret in the provider's secret manager.
	SecretBackendCloud SecretBackend = "cloud"
	// SecretBackendAWS stores the secret in AWS Secrets Manager.
	SecretBackendAWS SecretBackend = "aws"
)

// SecretConfig describes the database connection secret.
type SecretConfig struct {
	// Name is the secret's resource name.
	Name string `mapstructure:"name" yaml:"name"`

	// Backend selects the secret store. The source environment mixed two
	// stores with no reconciling logic, so the target is a config choice.
	Backend SecretBackend `mapstructure:"backend" yaml:"backend,omitempty"`

	// EnvVar is the environment variable the service reads the secret from.
	EnvVar string `mapstructure:"envVar" yaml:"envVar,omitempty"`

	// AWSRegion is the Secrets Manager region when Backend is "aws".
	AWSRegion string `mapstructure:"awsRegion" yaml:"awsRegion,omitempty"`
}

// IdentityConfig describes the service identity and its role bindings.
type IdentityConfig struct {
	// Name is the service account short name.
	Name string `mapstructure:"name" yaml:"name"`

	// Roles lists the roles the identity must hold. Remediation binds only
	// the missing subset, never roles already present.
	Roles []string `mapstructure:"roles" yaml:"roles,omitempty"`
}

// Email returns the full service account email for the given project.
func (i IdentityConfig) Email(project string) string {
	return fmt.Sprintf("%s@%s.iam.gserviceaccount.com", i.Name, project)
}

// WarehouseConfig describes the analytics table backing the wallet tracker.
type WarehouseConfig struct {
	Dataset string        `mapstructure:"dataset" yaml:"dataset,omitempty"`
	Table   string        `mapstructure:"table" yaml:"table,omitempty"`
	Schema  []SchemaField `mapstructure:"schema" yaml:"schema,omitempty"`
}

// TableRef returns the fully qualified table reference.
func (w WarehouseConfig) TableRef(project string) string {
	return fmt.Sprintf("%s.%s.%s", project, w.Dataset, w.Table)
}

// ImageRef returns the full image reference including tag.
func (s ServiceConfig) ImageRef() string {
	return s.Image + ":" + s.Tag
}
