// Package gcloud adapts the provider's control plane for the orchestrator.
//
// The provider publishes its contract through the gcloud and bq CLIs, which
// is what the deployment scripts this tool replaces automated against. Every
// call shells out through a swappable CommandRunner so tests never execute
// a real binary, and the target project is always passed explicitly instead
// of relying on the CLI's ambient project configuration.
package gcloud
