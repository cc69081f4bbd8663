// Package client provides HTTP clients for the external services the
// engraving editor depends on: image pricing, the commerce cart API, and
// the generative suggestion backend. Each client wraps its calls in a
// circuit breaker so a failing dependency degrades instead of cascading.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/guttosm/engraving-service/internal/circuitbreaker"
	"github.com/guttosm/engraving-service/internal/metrics"
)

// ErrServiceUnavailable is returned when an external service call fails
// or its circuit breaker is open.
var ErrServiceUnavailable = errors.New("external service unavailable")

const defaultTimeout = 10 * time.Second

// httpDoer is the minimal *http.Client surface, for test doubles.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// baseClient holds the shared pieces of every external client.
type baseClient struct {
	name    string
	baseURL string
	apiKey  string
	http    httpDoer
	breaker *circuitbreaker.CircuitBreaker
}

func newBaseClient(name, baseURL, apiKey string) baseClient {
	cfg := circuitbreaker.DefaultConfig()
	cfg.Name = name
	return baseClient{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		breaker: circuitbreaker.New(cfg),
	}
}

// Breaker exposes the circuit breaker for health reporting.
func (c *baseClient) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// postJSON sends a JSON POST through the circuit breaker and decodes the
// JSON response into out. Non-2xx statuses are failures.
func (c *baseClient) postJSON(ctx context.Context, path string, body, out interface{}) error {
	start := time.Now()
	err := c.breaker.Execute(ctx, func() error {
		return c.doJSON(ctx, http.MethodPost, path, body, out)
	})
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordExternalCall(c.name, status, time.Since(start))

	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrServiceUnavailable, c.name, err)
	}
	return nil
}

// getJSON sends a GET through the circuit breaker.
func (c *baseClient) getJSON(ctx context.Context, path string, out interface{}) error {
	start := time.Now()
	err := c.breaker.Execute(ctx, func() error {
		return c.doJSON(ctx, http.MethodGet, path, nil, out)
	})
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordExternalCall(c.name, status, time.Since(start))

	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrServiceUnavailable, c.name, err)
	}
	return nil
}

func (c *baseClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
