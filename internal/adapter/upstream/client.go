// Package upstream holds the outbound HTTP plumbing shared by the weather and
// news adapters.
package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/hashicorp/go-retryablehttp"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// NewHTTPClient returns a client that retries transient failures up to
// retryMax times. With retryMax 0 every call is attempted exactly once.
// Responses are passed through unchanged once retries are exhausted so
// callers can surface the upstream status and payload.
func NewHTTPClient(timeout time.Duration, retryMax int, logger *slog.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	// Request URLs carry the API key, so the built-in logger stays off.
	rc.Logger = nil
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Warn("retrying upstream request", "host", req.URL.Host, "path", req.URL.Path, "attempt", attempt)
		}
	}
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := rc.StandardClient()
	c.Timeout = timeout
	return c
}

// Get performs a GET request and returns the body of a 2xx response.
// Every failure is reported as a *domain.UpstreamError tagged with source.
func Get(ctx context.Context, client *http.Client, source, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Source: source, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.UpstreamError{Source: source, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Source: source, StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
