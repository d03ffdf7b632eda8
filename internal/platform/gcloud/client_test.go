package gcloud

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallettrack/deployctl/internal/config"
)

// fakeRunner records invocations and returns canned responses keyed by a
// substring of the full command line.
type fakeRunner struct {
	calls     []string
	stdins    []string
	responses map[string]string
	errs      map[string]error

	// onRun is invoked before returning, letting tests inspect side effects
	// like temp files that only exist while the command runs.
	onRun func(cmdline string)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	return f.record("", name, args...)
}

func (f *fakeRunner) RunInput(_ context.Context, stdin string, name string, args ...string) (string, error) {
	return f.record(stdin, name, args...)
}

func (f *fakeRunner) record(stdin, name string, args ...string) (string, error) {
	cmdline := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, cmdline)
	f.stdins = append(f.stdins, stdin)
	if f.onRun != nil {
		f.onRun(cmdline)
	}
	for key, err := range f.errs {
		if strings.Contains(cmdline, key) {
			return "", err
		}
	}
	for key, out := range f.responses {
		if strings.Contains(cmdline, key) {
			return out, nil
		}
	}
	return "", nil
}

func notFoundErr(cmd string) error {
	return &CommandError{Command: cmd, Stderr: "ERROR: NOT_FOUND: resource was not found", Err: errors.New("exit status 1")}
}

func newTestClient(runner *fakeRunner) *Client {
	if runner.responses == nil {
		runner.responses = map[string]string{}
	}
	if runner.errs == nil {
		runner.errs = map[string]error{}
	}
	return NewClient("wallet-prod", WithRunner(runner))
}

func TestActiveAccount(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{responses: map[string]string{"auth list": "dev@wallettrack.io"}}
	client := newTestClient(runner)

	account, err := client.ActiveAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev@wallettrack.io", account)
	assert.Contains(t, runner.calls[0], "--filter=status:ACTIVE")
}

func TestListEnabledAPIs(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{responses: map[string]string{
		"services list": "run.googleapis.com\nbigquery.googleapis.com\n",
	}}
	client := newTestClient(runner)

	enabled, err := client.ListEnabledAPIs(context.Background())
	require.NoError(t, err)
	assert.True(t, enabled["run.googleapis.com"])
	assert.True(t, enabled["bigquery.googleapis.com"])
	assert.False(t, enabled["secretmanager.googleapis.com"])
	assert.Contains(t, runner.calls[0], "--project wallet-prod")
}

func TestEnableAPI(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	client := newTestClient(runner)

	require.NoError(t, client.EnableAPI(context.Background(), "secretmanager.googleapis.com"))
	assert.Contains(t, runner.calls[0], "services enable secretmanager.googleapis.com")
}

func TestSecretStore_ExistsAndAbsent(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{
		responses: map[string]string{"secrets describe mongodb-url": "projects/1/secrets/mongodb-url"},
		errs:      map[string]error{"secrets describe missing": notFoundErr("gcloud secrets describe")},
	}
	store := newTestClient(runner).SecretStore()

	exists, err := store.Exists(context.Background(), "mongodb-url")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSecretStore_CreateUsesStdin(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	store := newTestClient(runner).SecretStore()

	require.NoError(t, store.Create(context.Background(), "mongodb-url", "mongodb+srv://user:pw@host"))

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "--data-file=-")
	assert.NotContains(t, runner.calls[0], "mongodb+srv", "secret value must not appear in the argument list")
	assert.Equal(t, "mongodb+srv://user:pw@host", runner.stdins[0])
}

func TestSecretStore_Value(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{responses: map[string]string{"versions access": "mongodb+srv://x"}}
	store := newTestClient(runner).SecretStore()

	value, err := store.Value(context.Background(), "mongodb-url")
	require.NoError(t, err)
	assert.Equal(t, "mongodb+srv://x", value)
}

func TestServiceIdentityExists(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{
		errs: map[string]error{"service-accounts describe": notFoundErr("gcloud iam service-accounts describe")},
	}
	client := newTestClient(runner)

	exists, err := client.ServiceIdentityExists(context.Background(), "wallet-runtime@wallet-prod.iam.gserviceaccount.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRoleBindings(t *testing.T) {
	t.Parallel()
	policy := `{
		"bindings": [
			{"role": "roles/secretmanager.secretAccessor", "members": ["serviceAccount:a@p.iam.gserviceaccount.com"]},
			{"role": "roles/bigquery.dataEditor", "members": ["user:dev@wallettrack.io", "serviceAccount:a@p.iam.gserviceaccount.com"]},
			{"role": "roles/owner", "members": ["user:dev@wallettrack.io"]}
		]
	}`
	runner := &fakeRunner{responses: map[string]string{"get-iam-policy": policy}}
	client := newTestClient(runner)

	bound, err := client.RoleBindings(context.Background(), "serviceAccount:a@p.iam.gserviceaccount.com")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"roles/secretmanager.secretAccessor": true,
		"roles/bigquery.dataEditor":          true,
	}, bound)
}

func TestAddRoleBinding(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{}
	client := newTestClient(runner)

	require.NoError(t, client.AddRoleBinding(context.Background(),
		"serviceAccount:a@p.iam.gserviceaccount.com", "roles/bigquery.jobUser"))
	assert.Contains(t, runner.calls[0], "add-iam-policy-binding wallet-prod")
	assert.Contains(t, runner.calls[0], "--role roles/bigquery.jobUser")
}

func TestTableExists_Absent(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{errs: map[string]error{"bq show": notFoundErr("bq show")}}
	client := newTestClient(runner)

	exists, err := client.TableExists(context.Background(), "wallet-prod.crypto_tracker.smart_wallets")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Contains(t, runner.calls[0], "wallet-prod:crypto_tracker.smart_wallets")
}

func TestTableSchema(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{responses: map[string]string{
		"--format=json": `{"schema":{"fields":[{"name":"id","type":"STRING","mode":"REQUIRED"}]}}`,
	}}
	client := newTestClient(runner)

	schema, err := client.TableSchema(context.Background(), "wallet-prod.crypto_tracker.smart_wallets")
	require.NoError(t, err)
	require.Len(t, schema, 1)
	assert.Equal(t, "id", schema[0].Name)
	assert.Equal(t, "STRING", schema[0].Type)
}

func TestCreateTable_WritesSchemaFile(t *testing.T) {
	t.Parallel()
	var schemaContent string
	runner := &fakeRunner{}
	runner.onRun = func(cmdline string) {
		if !strings.Contains(cmdline, "bq mk") {
			return
		}
		fields := strings.Fields(cmdline)
		for i, f := range fields {
			if f == "--schema" && i+1 < len(fields) {
				data, err := os.ReadFile(fields[i+1])
				if err == nil {
					schemaContent = string(data)
				}
			}
		}
	}
	client := newTestClient(runner)

	err := client.CreateTable(context.Background(), "wallet-prod.crypto_tracker.smart_wallets", config.DefaultWalletSchema())
	require.NoError(t, err)
	assert.Contains(t, runner.calls[0], "--table")
	assert.Contains(t, schemaContent, `"name":"address"`)
}

func TestDeployService(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{responses: map[string]string{"run deploy": "https://wallet-tracker-abc.a.run.app"}}
	client := newTestClient(runner)

	url, err := client.DeployService(context.Background(), DeploySpec{
		Name:                 "wallet-tracker",
		Image:                "gcr.io/wallet-prod/wallet-tracker:v1",
		Region:               "us-central1",
		ServiceAccount:       "wallet-runtime@wallet-prod.iam.gserviceaccount.com",
		Port:                 8000,
		AllowUnauthenticated: true,
		SecretEnv:            map[string]string{"MONGODB_URL": "mongodb-url"},
		Env:                  map[string]string{"GOOGLE_CLOUD_PROJECT": "wallet-prod"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://wallet-tracker-abc.a.run.app", url)

	call := runner.calls[0]
	assert.Contains(t, call, "--set-secrets MONGODB_URL=mongodb-url:latest")
	assert.Contains(t, call, "--set-env-vars GOOGLE_CLOUD_PROJECT=wallet-prod")
	assert.Contains(t, call, "--allow-unauthenticated")
	assert.Contains(t, call, "--port 8000")
}

func TestDescribeService_Absent(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{errs: map[string]error{"services describe": notFoundErr("gcloud run services describe")}}
	client := newTestClient(runner)

	url, err := client.DescribeService(context.Background(), "wallet-tracker", "us-central1")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestDeleteService_AbsentIsIdempotent(t *testing.T) {
	t.Parallel()
	runner := &fakeRunner{errs: map[string]error{"services delete": notFoundErr("gcloud run services delete")}}
	client := newTestClient(runner)

	require.NoError(t, client.DeleteService(context.Background(), "wallet-tracker-debug", "us-central1"))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()
	assert.True(t, IsNotFound(notFoundErr("bq show")))
	assert.False(t, IsNotFound(errors.New("plain failure")))
	assert.False(t, IsNotFound(&CommandError{Command: "gcloud", Stderr: "PERMISSION_DENIED", Err: errors.New("exit status 1")}))
	assert.False(t, IsNotFound(nil))
}

func TestJoinKV_Deterministic(t *testing.T) {
	t.Parallel()
	out := joinKV(map[string]string{"B": "2", "A": "1", "C": "3"}, "")
	assert.Equal(t, "A=1,B=2,C=3", out)
}
