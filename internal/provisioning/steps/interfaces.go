package steps

import (
	"context"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/platform/gcloud"
)

// CloudClient is the control-plane surface the steps consume.
// Implemented by gcloud.Client; tests use a fake.
type CloudClient interface {
	ActiveAccount(ctx context.Context) (string, error)
	ProjectAccessible(ctx context.Context) error

	ListEnabledAPIs(ctx context.Context) (map[string]bool, error)
	EnableAPI(ctx context.Context, name string) error

	ServiceIdentityExists(ctx context.Context, email string) (bool, error)
	CreateServiceIdentity(ctx context.Context, name, displayName string) error
	RoleBindings(ctx context.Context, member string) (map[string]bool, error)
	AddRoleBinding(ctx context.Context, member, role string) error

	DatasetExists(ctx context.Context, dataset string) (bool, error)
	CreateDataset(ctx context.Context, dataset string) error
	TableExists(ctx context.Context, ref string) (bool, error)
	TableSchema(ctx context.Context, ref string) ([]config.SchemaField, error)
	CreateTable(ctx context.Context, ref string, schema []config.SchemaField) error

	DeployService(ctx context.Context, spec gcloud.DeploySpec) (string, error)
	ReplaceService(ctx context.Context, manifestPath, region string) error
	DescribeService(ctx context.Context, name, region string) (string, error)
}

// SecretValueSource supplies the secret value when the secret has to be
// created. Interactive runs prompt; automated runs read an environment
// variable.
type SecretValueSource func(ctx context.Context) (string, error)
