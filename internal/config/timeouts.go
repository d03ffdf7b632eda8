package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	HealthProbe       time.Duration // Timeout for the post-deploy health probe
	Build             time.Duration // Timeout for local image build and push
	Deploy            time.Duration // Timeout for service deploy operations
	RemoteBuild       time.Duration // Overall timeout for remote build completion
	RemoteBuildPoll   time.Duration // Interval between remote build status polls
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - DEPLOYCTL_TIMEOUT_HEALTH (default: 10s)
//   - DEPLOYCTL_TIMEOUT_BUILD (default: 15m)
//   - DEPLOYCTL_TIMEOUT_DEPLOY (default: 10m)
//   - DEPLOYCTL_TIMEOUT_REMOTE_BUILD (default: 20m)
//   - DEPLOYCTL_REMOTE_BUILD_POLL (default: 10s)
//   - DEPLOYCTL_RETRY_MAX_ATTEMPTS (default: 3)
//   - DEPLOYCTL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		HealthProbe:       parseDuration("DEPLOYCTL_TIMEOUT_HEALTH", 10*time.Second),
		Build:             parseDuration("DEPLOYCTL_TIMEOUT_BUILD", 15*time.Minute),
		Deploy:            parseDuration("DEPLOYCTL_TIMEOUT_DEPLOY", 10*time.Minute),
		RemoteBuild:       parseDuration("DEPLOYCTL_TIMEOUT_REMOTE_BUILD", 20*time.Minute),
		RemoteBuildPoll:   parseDuration("DEPLOYCTL_REMOTE_BUILD_POLL", 10*time.Second),
		RetryMaxAttempts:  parseInt("DEPLOYCTL_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("DEPLOYCTL_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
