package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/platform/secrets"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// serviceManifest is the Knative-style service document applied by the
// platform-native strategy.
type serviceManifest struct {
	APIVersion string           `yaml:"apiVersion"`
	Kind       string           `yaml:"kind"`
	Metadata   manifestMetadata `yaml:"metadata"`
	Spec       manifestSpec     `yaml:"spec"`
}

type manifestMetadata struct {
	Name        string            `yaml:"name"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

type manifestSpec struct {
	Template manifestTemplate `yaml:"template"`
}

type manifestTemplate struct {
	Spec manifestTemplateSpec `yaml:"spec"`
}

type manifestTemplateSpec struct {
	ServiceAccountName string              `yaml:"serviceAccountName,omitempty"`
	Containers         []manifestContainer `yaml:"containers"`
}

type manifestContainer struct {
	Image string            `yaml:"image"`
	Ports []manifestPort    `yaml:"ports,omitempty"`
	Env   []manifestEnvVar  `yaml:"env,omitempty"`
}

type manifestPort struct {
	ContainerPort int `yaml:"containerPort"`
}

type manifestEnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// ManifestDeployStep renders a service manifest with the connection string
// resolved from the secret store and applies it with the platform's declarative
// replace. The rendered manifest contains the secret value, so the temp file
// is removed before the step returns on both the success and failure paths.
type ManifestDeployStep struct {
	cloud CloudClient
	store secrets.Store
}

// NewManifestDeployStep creates the manifest deploy step.
func NewManifestDeployStep(cloud CloudClient, store secrets.Store) *ManifestDeployStep {
	return &ManifestDeployStep{cloud: cloud, store: store}
}

// Name implements provisioning.Step.
func (s *ManifestDeployStep) Name() string { return "apply-manifest" }

// Check implements provisioning.Step.
func (s *ManifestDeployStep) Check(ctx *provisioning.Context) (bool, string, error) {
	return false, "manifest for " + ctx.Config.Service.Name + " must be applied", nil
}

// Remediate implements provisioning.Step.
func (s *ManifestDeployStep) Remediate(ctx *provisioning.Context) error {
	cfg := ctx.Config

	value, err := s.store.Value(ctx, cfg.Secret.Name)
	if err != nil {
		return fmt.Errorf("failed to resolve secret %s: %w", cfg.Secret.Name, err)
	}

	path, err := s.writeManifest(cfg, value)
	if err != nil {
		return err
	}
	defer os.Remove(path)
	ctx.State.ManifestPath = path

	deployCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Deploy)
	defer cancel()

	ctx.Observer.Printf("applying manifest for %s in %s", cfg.Service.Name, cfg.Region)
	if err := s.cloud.ReplaceService(deployCtx, path, cfg.Region); err != nil {
		return err
	}
	return nil
}

// Verify implements provisioning.Step.
func (s *ManifestDeployStep) Verify(ctx *provisioning.Context) error {
	url, err := s.cloud.DescribeService(ctx, ctx.Config.Service.Name, ctx.Config.Region)
	if err != nil {
		return err
	}
	if url == "" {
		return fmt.Errorf("service %s not found after manifest apply", ctx.Config.Service.Name)
	}
	ctx.State.EndpointURL = url
	return nil
}

// writeManifest renders the service document to a temp file and returns its
// path. The caller owns removal.
func (s *ManifestDeployStep) writeManifest(cfg *config.Config, value string) (string, error) {
	doc := serviceManifest{
		APIVersion: "serving.knative.dev/v1",
		Kind:       "Service",
		Metadata: manifestMetadata{
			Name: cfg.Service.Name,
		},
		Spec: manifestSpec{
			Template: manifestTemplate{
				Spec: manifestTemplateSpec{
					ServiceAccountName: cfg.Identity.Email(cfg.Project),
					Containers: []manifestContainer{{
						Image: cfg.Service.ImageRef(),
						Ports: []manifestPort{{ContainerPort: cfg.Service.Port}},
						Env: []manifestEnvVar{{
							Name:  cfg.Secret.EnvVar,
							Value: value,
						}},
					}},
				},
			},
		},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render manifest: %w", err)
	}

	f, err := os.CreateTemp("", "deployctl-service-*.yaml")
	if err != nil {
		return "", fmt.Errorf("failed to create manifest file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write manifest %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close manifest %s: %w", filepath.Base(path), err)
	}
	return path, nil
}
