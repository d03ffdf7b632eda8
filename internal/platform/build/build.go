// Package build wraps the container build tooling: local docker builds and
// the provider's remote build service.
package build

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/wallettrack/deployctl/internal/platform/gcloud"
)

// Builder builds and pushes container images.
type Builder interface {
	// BuildImage builds the image from a local context directory.
	BuildImage(ctx context.Context, contextDir, tag string) error

	// PushImage pushes a locally built image to the registry.
	PushImage(ctx context.Context, tag string) error
}

// RemoteBuilder submits source to the provider's build service.
type RemoteBuilder interface {
	// SubmitBuild submits the build and returns the remote build ID.
	SubmitBuild(ctx context.Context, configFile string, substitutions map[string]string) (string, error)

	// BuildStatus returns the status of a previously submitted build.
	BuildStatus(ctx context.Context, buildID string) (BuildStatus, error)
}

// BuildStatus is the remote build service's reported state.
type BuildStatus string

const (
	BuildWorking BuildStatus = "WORKING"
	BuildQueued  BuildStatus = "QUEUED"
	BuildSuccess BuildStatus = "SUCCESS"
	BuildFailure BuildStatus = "FAILURE"
	BuildTimeout BuildStatus = "TIMEOUT"
)

// Done reports whether the build reached a terminal state.
func (s BuildStatus) Done() bool {
	return s == BuildSuccess || s == BuildFailure || s == BuildTimeout
}

// DockerClient implements Builder with the local docker CLI.
type DockerClient struct {
	run gcloud.CommandRunner
}

// NewDockerClient creates a docker-backed builder.
func NewDockerClient(runner gcloud.CommandRunner) *DockerClient {
	if runner == nil {
		runner = gcloud.ExecRunner{}
	}
	return &DockerClient{run: runner}
}

// BuildImage implements Builder.
func (d *DockerClient) BuildImage(ctx context.Context, contextDir, tag string) error {
	_, err := d.run.Run(ctx, "docker", "build", "-t", tag, contextDir)
	if err != nil {
		return fmt.Errorf("failed to build image %s: %w", tag, err)
	}
	return nil
}

// PushImage implements Builder.
func (d *DockerClient) PushImage(ctx context.Context, tag string) error {
	_, err := d.run.Run(ctx, "docker", "push", tag)
	if err != nil {
		return fmt.Errorf("failed to push image %s: %w", tag, err)
	}
	return nil
}

// CloudBuildClient implements RemoteBuilder with the provider's build service.
type CloudBuildClient struct {
	run     gcloud.CommandRunner
	project string
}

// NewCloudBuildClient creates a remote builder pinned to the given project.
func NewCloudBuildClient(project string, runner gcloud.CommandRunner) *CloudBuildClient {
	if runner == nil {
		runner = gcloud.ExecRunner{}
	}
	return &CloudBuildClient{run: runner, project: project}
}

// SubmitBuild implements RemoteBuilder. The build runs asynchronously; the
// returned ID is polled with BuildStatus.
func (c *CloudBuildClient) SubmitBuild(ctx context.Context, configFile string, substitutions map[string]string) (string, error) {
	args := []string{
		"builds", "submit",
		"--project", c.project,
		"--config", configFile,
		"--async",
		"--format=value(id)",
	}
	if len(substitutions) > 0 {
		args = append(args, "--substitutions", joinSubstitutions(substitutions))
	}

	out, err := c.run.Run(ctx, "gcloud", args...)
	if err != nil {
		return "", fmt.Errorf("failed to submit build: %w", err)
	}
	return out, nil
}

// buildInfo mirrors the JSON shape of gcloud builds describe.
type buildInfo struct {
	Status string `json:"status"`
}

// BuildStatus implements RemoteBuilder.
func (c *CloudBuildClient) BuildStatus(ctx context.Context, buildID string) (BuildStatus, error) {
	out, err := c.run.Run(ctx, "gcloud",
		"builds", "describe", buildID,
		"--project", c.project,
		"--format=json")
	if err != nil {
		return "", fmt.Errorf("failed to describe build %s: %w", buildID, err)
	}

	var info buildInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return "", fmt.Errorf("failed to parse build %s: %w", buildID, err)
	}
	return BuildStatus(info.Status), nil
}

// joinSubstitutions renders substitutions as "_K=v,_K2=v2" with
// deterministic ordering.
func joinSubstitutions(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+m[k])
	}
	return strings.Join(parts, ",")
}
