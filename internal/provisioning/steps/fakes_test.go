package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/wallettrack/deployctl/internal/config"
	"github.com/wallettrack/deployctl/internal/platform/build"
	"github.com/wallettrack/deployctl/internal/platform/gcloud"
	"github.com/wallettrack/deployctl/internal/provisioning"
)

// fakeCloud is an in-memory CloudClient. Counters record how often each
// mutating call ran so tests can assert idempotence.
type fakeCloud struct {
	account     string
	projectErr  error
	enabledAPIs map[string]bool
	identities  map[string]bool
	bindings    map[string]bool
	datasets    map[string]bool
	tables      map[string][]config.SchemaField
	serviceURL  string

	enableAPICalls      []string
	createIdentityCalls int
	addBindingCalls     []string
	createDatasetCalls  int
	createTableCalls    int
	deployCalls         int
	replaceCalls        []string
	lastDeploySpec      gcloud.DeploySpec

	// onReplace inspects the manifest path while the file still exists.
	onReplace func(manifestPath string) error
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		account:     "dev@example.com",
		enabledAPIs: map[string]bool{},
		identities:  map[string]bool{},
		bindings:    map[string]bool{},
		datasets:    map[string]bool{},
		tables:      map[string][]config.SchemaField{},
	}
}

func (f *fakeCloud) ActiveAccount(context.Context) (string, error) { return f.account, nil }
func (f *fakeCloud) ProjectAccessible(context.Context) error       { return f.projectErr }

func (f *fakeCloud) ListEnabledAPIs(context.Context) (map[string]bool, error) {
	out := make(map[string]bool, len(f.enabledAPIs))
	for k, v := range f.enabledAPIs {
		out[k] = v
	}
	return out, nil
}

func (f *fakeCloud) EnableAPI(_ context.Context, name string) error {
	f.enableAPICalls = append(f.enableAPICalls, name)
	f.enabledAPIs[name] = true
	return nil
}

func (f *fakeCloud) ServiceIdentityExists(_ context.Context, email string) (bool, error) {
	return f.identities[email], nil
}

func (f *fakeCloud) CreateServiceIdentity(_ context.Context, name, _ string) error {
	f.createIdentityCalls++
	f.identities[name+"@wallet-prod.iam.gserviceaccount.com"] = true
	return nil
}

func (f *fakeCloud) RoleBindings(_ context.Context, _ string) (map[string]bool, error) {
	out := make(map[string]bool, len(f.bindings))
	for k, v := range f.bindings {
		out[k] = v
	}
	return out, nil
}

func (f *fakeCloud) AddRoleBinding(_ context.Context, _, role string) error {
	f.addBindingCalls = append(f.addBindingCalls, role)
	f.bindings[role] = true
	return nil
}

func (f *fakeCloud) DatasetExists(_ context.Context, dataset string) (bool, error) {
	return f.datasets[dataset], nil
}

func (f *fakeCloud) CreateDataset(_ context.Context, dataset string) error {
	f.createDatasetCalls++
	f.datasets[dataset] = true
	return nil
}

func (f *fakeCloud) TableExists(_ context.Context, ref string) (bool, error) {
	_, ok := f.tables[ref]
	return ok, nil
}

func (f *fakeCloud) TableSchema(_ context.Context, ref string) ([]config.SchemaField, error) {
	schema, ok := f.tables[ref]
	if !ok {
		return nil, fmt.Errorf("table %s not found", ref)
	}
	return schema, nil
}

func (f *fakeCloud) CreateTable(_ context.Context, ref string, schema []config.SchemaField) error {
	f.createTableCalls++
	f.tables[ref] = schema
	return nil
}

func (f *fakeCloud) DeployService(_ context.Context, spec gcloud.DeploySpec) (string, error) {
	f.deployCalls++
	f.lastDeploySpec = spec
	return f.serviceURL, nil
}

func (f *fakeCloud) ReplaceService(_ context.Context, manifestPath, _ string) error {
	f.replaceCalls = append(f.replaceCalls, manifestPath)
	if f.onReplace != nil {
		return f.onReplace(manifestPath)
	}
	return nil
}

func (f *fakeCloud) DescribeService(_ context.Context, _, _ string) (string, error) {
	return f.serviceURL, nil
}

// fakeStore is an in-memory secrets.Store.
type fakeStore struct {
	values map[string]string

	existsCalls int
	createCalls int
	valueCalls  int
	createErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Exists(_ context.Context, name string) (bool, error) {
	f.existsCalls++
	_, ok := f.values[name]
	return ok, nil
}

func (f *fakeStore) Create(_ context.Context, name, value string) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.values[name] = value
	return nil
}

func (f *fakeStore) Value(_ context.Context, name string) (string, error) {
	f.valueCalls++
	value, ok := f.values[name]
	if !ok {
		return "", fmt.Errorf("secret %s not found", name)
	}
	return value, nil
}

// fakeBuilder records build and push invocations.
type fakeBuilder struct {
	builtTags  []string
	pushedTags []string
	buildErr   error
	pushErr    error
}

func (f *fakeBuilder) BuildImage(_ context.Context, _, tag string) error {
	f.builtTags = append(f.builtTags, tag)
	return f.buildErr
}

func (f *fakeBuilder) PushImage(_ context.Context, tag string) error {
	f.pushedTags = append(f.pushedTags, tag)
	return f.pushErr
}

// fakeRemote simulates the remote build service with a scripted sequence of
// statuses returned by successive polls.
type fakeRemote struct {
	buildID  string
	statuses []build.BuildStatus

	submitCalls int
	pollCalls   int
	submitErr   error
}

func (f *fakeRemote) SubmitBuild(_ context.Context, _ string, _ map[string]string) (string, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.buildID, nil
}

func (f *fakeRemote) BuildStatus(_ context.Context, _ string) (build.BuildStatus, error) {
	idx := f.pollCalls
	f.pollCalls++
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	return f.statuses[idx], nil
}

// fakeProber returns scripted status codes or errors per call.
type fakeProber struct {
	codes []int
	errs  []error
	calls int
	urls  []string
}

func (f *fakeProber) GetWithTimeout(_ context.Context, url string, _ time.Duration) (int, error) {
	idx := f.calls
	f.calls++
	f.urls = append(f.urls, url)
	if idx < len(f.errs) && f.errs[idx] != nil {
		return 0, f.errs[idx]
	}
	if idx < len(f.codes) {
		return f.codes[idx], nil
	}
	return f.codes[len(f.codes)-1], nil
}

// nopObserver discards all output.
type nopObserver struct{}

func (nopObserver) Printf(string, ...interface{}) {}
func (nopObserver) Event(provisioning.Event)      {}

// testConfig returns a fully populated config for the given strategy.
func testConfig(strategy config.Strategy) *config.Config {
	cfg := &config.Config{
		Project:  "wallet-prod",
		Region:   "us-central1",
		Strategy: strategy,
		APIs:     []string{"run.googleapis.com", "bigquery.googleapis.com"},
		Service: config.ServiceConfig{
			Name:                 "wallet-tracker",
			Image:                "gcr.io/wallet-prod/wallet-tracker",
			Tag:                  "latest",
			HealthPath:           "/health",
			Port:                 8000,
			AllowUnauthenticated: true,
		},
		Build: config.BuildConfig{
			ContextDir: ".",
			ConfigFile: "cloudbuild.yaml",
		},
		Secret: config.SecretConfig{
			Name:    "mongodb-url",
			Backend: config.SecretBackendCloud,
			EnvVar:  "MONGODB_URL",
		},
		Identity: config.IdentityConfig{
			Name:  "wallet-tracker-sa",
			Roles: []string{"roles/secretmanager.secretAccessor", "roles/bigquery.dataEditor"},
		},
		Warehouse: config.WarehouseConfig{
			Dataset: "crypto_tracker",
			Table:   "smart_wallets",
			Schema:  config.DefaultWalletSchema(),
		},
	}
	cfg.Timeouts = &config.Timeouts{
		HealthProbe:       time.Second,
		Build:             time.Minute,
		Deploy:            time.Minute,
		RemoteBuild:       time.Minute,
		RemoteBuildPoll:   time.Millisecond,
		RetryMaxAttempts:  2,
		RetryInitialDelay: time.Millisecond,
	}
	return cfg
}

// testCtx builds a provisioning context with a silent observer.
func testCtx(cfg *config.Config) *provisioning.Context {
	return &provisioning.Context{
		Context:  context.Background(),
		Config:   cfg,
		State:    provisioning.NewState(),
		Observer: nopObserver{},
		Timeouts: cfg.Timeouts,
	}
}
