package config

import "strings"

// SchemaField is one column of the warehouse table schema.
type SchemaField struct {
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	Type string `mapstructure:"type" json:"type" yaml:"type"`
	Mode string `mapstructure:"mode" json:"mode,omitempty" yaml:"mode,omitempty"`
}

// DefaultWalletSchema is the schema of the wallet-tracker table.
func DefaultWalletSchema() []SchemaField {
	return []SchemaField{
		{Name: "id", Type: "STRING", Mode: "REQUIRED"},
		{Name: "address", Type: "STRING", Mode: "REQUIRED"},
		{Name: "score", Type: "INTEGER", Mode: "REQUIRED"},
		{Name: "is_active", Type: "BOOLEAN", Mode: "REQUIRED"},
		{Name: "created_at", Type: "TIMESTAMP", Mode: "REQUIRED"},
		{Name: "last_updated", Type: "TIMESTAMP", Mode: "REQUIRED"},
	}
}

// SchemaEqual reports whether two schemas describe the same columns.
// Comparison is order-sensitive and case-insensitive on type and mode,
// matching how the warehouse reports schemas back.
func SchemaEqual(a, b []SchemaField) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
		if !strings.EqualFold(a[i].Type, b[i].Type) {
			return false
		}
		if !strings.EqualFold(normalizeMode(a[i].Mode), normalizeMode(b[i].Mode)) {
			return false
		}
	}
	return true
}

// normalizeMode treats an empty mode as NULLABLE, the warehouse default.
func normalizeMode(mode string) string {
	if mode == "" {
		return "NULLABLE"
	}
	return mode
}
