package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSM implements SMAPI with canned behavior.
type fakeSM struct {
	secrets map[string]string

	describeCalls int
	createCalls   int
}

func (f *fakeSM) DescribeSecret(_ context.Context, params *secretsmanager.DescribeSecretInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error) {
	f.describeCalls++
	if _, ok := f.secrets[*params.SecretId]; !ok {
		return nil, &smtypes.ResourceNotFoundException{}
	}
	return &secretsmanager.DescribeSecretOutput{Name: params.SecretId}, nil
}

func (f *fakeSM) CreateSecret(_ context.Context, params *secretsmanager.CreateSecretInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	f.createCalls++
	f.secrets[*params.Name] = *params.SecretString
	return &secretsmanager.CreateSecretOutput{Name: params.Name}, nil
}

func (f *fakeSM) GetSecretValue(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	value, ok := f.secrets[*params.SecretId]
	if !ok {
		return nil, &smtypes.ResourceNotFoundException{}
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
}

func TestAWSStore_ExistsAbsent(t *testing.T) {
	t.Parallel()
	store := NewAWSStoreWithClient(&fakeSM{secrets: map[string]string{}})

	exists, err := store.Exists(context.Background(), "mongodb-url")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAWSStore_CreateThenRead(t *testing.T) {
	t.Parallel()
	sm := &fakeSM{secrets: map[string]string{}}
	store := NewAWSStoreWithClient(sm)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "mongodb-url", "mongodb+srv://x"))

	exists, err := store.Exists(ctx, "mongodb-url")
	require.NoError(t, err)
	assert.True(t, exists)

	value, err := store.Value(ctx, "mongodb-url")
	require.NoError(t, err)
	assert.Equal(t, "mongodb+srv://x", value)
	assert.Equal(t, 1, sm.createCalls)
}

func TestAWSStore_ValueMissing(t *testing.T) {
	t.Parallel()
	store := NewAWSStoreWithClient(&fakeSM{secrets: map[string]string{}})

	_, err := store.Value(context.Background(), "absent")
	require.Error(t, err)

	var notFound *smtypes.ResourceNotFoundException
	assert.True(t, errors.As(err, &notFound))
	assert.Contains(t, err.Error(), "absent")
}
