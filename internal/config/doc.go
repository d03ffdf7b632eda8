// Package config defines the immutable run configuration for a deployment
// orchestration: target project and region, resource names, the selected
// deployment strategy, and timeout settings.
//
// A Config is constructed once from a YAML file (plus environment overrides
// for timeouts) before any provisioning step executes and is never mutated
// afterward.
package config
