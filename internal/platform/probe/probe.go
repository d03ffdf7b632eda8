// Package probe performs bounded-timeout HTTP health checks against a
// deployed service endpoint.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober checks whether an HTTP endpoint answers successfully.
type Prober interface {
	// GetWithTimeout issues a GET and returns the status code. Transport
	// errors and timeouts are returned as errors, not status codes.
	GetWithTimeout(ctx context.Context, url string, timeout time.Duration) (int, error)
}

// HTTPProber implements Prober with net/http.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober with a default transport.
func NewHTTPProber() *HTTPProber {
	return &HTTPProber{client: &http.Client{}}
}

// GetWithTimeout implements Prober.
func (p *HTTPProber) GetWithTimeout(ctx context.Context, url string, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probe of %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
