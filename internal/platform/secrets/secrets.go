// Package secrets defines the secret store the orchestrator provisions the
// database connection string into.
//
// The environment this tool replaced kept secrets in two different stores
// with no reconciling logic, so the backend is a configuration choice: the
// provider's own secret manager (via the control-plane client) or AWS
// Secrets Manager.
package secrets

import "context"

// Store is a named-secret store.
type Store interface {
	// Exists reports whether the named secret exists.
	Exists(ctx context.Context, name string) (bool, error)

	// Create stores a new secret under the given name.
	Create(ctx context.Context, name, value string) error

	// Value returns the current value of the named secret.
	Value(ctx context.Context, name string) (string, error)
}
