package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaEqual_Identical(t *testing.T) {
	t.Parallel()
	assert.True(t, SchemaEqual(DefaultWalletSchema(), DefaultWalletSchema()))
}

func TestSchemaEqual_CaseInsensitiveTypes(t *testing.T) {
	t.Parallel()
	a := []SchemaField{{Name: "score", Type: "INTEGER", Mode: "REQUIRED"}}
	b := []SchemaField{{Name: "score", Type: "integer", Mode: "required"}}
	assert.True(t, SchemaEqual(a, b))
}

func TestSchemaEqual_EmptyModeIsNullable(t *testing.T) {
	t.Parallel()
	a := []SchemaField{{Name: "note", Type: "STRING"}}
	b := []SchemaField{{Name: "note", Type: "STRING", Mode: "NULLABLE"}}
	assert.True(t, SchemaEqual(a, b))
}

func TestSchemaEqual_Differences(t *testing.T) {
	t.Parallel()

	base := []SchemaField{{Name: "score", Type: "INTEGER", Mode: "REQUIRED"}}

	assert.False(t, SchemaEqual(base, nil), "length mismatch")
	assert.False(t, SchemaEqual(base, []SchemaField{{Name: "points", Type: "INTEGER", Mode: "REQUIRED"}}), "name mismatch")
	assert.False(t, SchemaEqual(base, []SchemaField{{Name: "score", Type: "FLOAT", Mode: "REQUIRED"}}), "type mismatch")
	assert.False(t, SchemaEqual(base, []SchemaField{{Name: "score", Type: "INTEGER", Mode: "NULLABLE"}}), "mode mismatch")
}

func TestSchemaEqual_OrderSensitive(t *testing.T) {
	t.Parallel()
	a := []SchemaField{
		{Name: "id", Type: "STRING", Mode: "REQUIRED"},
		{Name: "address", Type: "STRING", Mode: "REQUIRED"},
	}
	b := []SchemaField{
		{Name: "address", Type: "STRING", Mode: "REQUIRED"},
		{Name: "id", Type: "STRING", Mode: "REQUIRED"},
	}
	assert.False(t, SchemaEqual(a, b))
}
