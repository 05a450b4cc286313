// Package httpds implements an HTTP-backed data source with retry/backoff,
// used to pull raw POS extracts published over HTTP (e.g. a nightly export
// endpoint or a public dataset mirror).
package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config configures the remote source. Zero values get sensible defaults:
// Timeout 30s, MaxRetries 3, InitialBackoff 200ms, MaxBackoff 5s.
type Config struct {
	// URL of the CSV extract.
	URL string

	// Timeout is the per-request timeout applied at the http.Client level.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the initial request.
	MaxRetries int

	// InitialBackoff is the base backoff for the first retry; each subsequent
	// retry doubles it up to MaxBackoff.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Transport is an optional custom RoundTripper, injectable for tests.
	Transport http.RoundTripper
}

// Remote is an HTTP data source. A nil sleep defaults to time.Sleep;
// tests inject their own to stay fast.
type Remote struct {
	cfg    Config
	client *http.Client
	sleep  func(time.Duration)
}

// NewRemote constructs a Remote source from Config, applying defaults.
func NewRemote(cfg Config) *Remote {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return &Remote{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		sleep: time.Sleep,
	}
}

// Open fetches the configured URL and returns the response body. Transient
// failures (network errors, 5xx, 429) are retried with exponential backoff;
// other HTTP errors fail immediately. Backoff waits respect ctx cancellation.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	backoff := r.cfg.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r.sleep(backoff)
			if backoff *= 2; backoff > r.cfg.MaxBackoff {
				backoff = r.cfg.MaxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("httpds: build request: %w", err)
		}
		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		switch {
		case resp.StatusCode == http.StatusOK:
			return resp.Body, nil
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			lastErr = fmt.Errorf("httpds: %s: %s", r.cfg.URL, resp.Status)
			continue
		default:
			resp.Body.Close()
			return nil, fmt.Errorf("httpds: %s: %s", r.cfg.URL, resp.Status)
		}
	}
	return nil, fmt.Errorf("httpds: %s: retries exhausted: %w", r.cfg.URL, lastErr)
}
