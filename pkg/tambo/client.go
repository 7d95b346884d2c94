// Package tambo is a client for the Tambo land suitability API.
package tambo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/vanam-labs/plantation-cli/internal/resilience"
)

const defaultBaseURL = "https://api.tambo.dev"

// Client analyzes plantation sites through the remote API.
type Client interface {
	// Analyze submits a site for analysis and returns the scored grid.
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
}

// Option configures the client.
type Option func(*client)

// WithBaseURL overrides the API endpoint, mainly for tests and self-hosted
// deployments.
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithRetry overrides the default retry policy.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *client) {
		c.retry = cfg
	}
}

type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      resilience.RetryConfig
	breaker    *resilience.CircuitBreaker
}

// NewClient creates a Client authenticated with the given API key.
func NewClient(apiKey string, opts ...Option) Client {
	c := &client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(5, 5),
		retry:      resilience.DefaultRetryConfig(),
		breaker:    resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "tambo: marshal request")
	}

	return resilience.ExecuteVal(ctx, c.breaker, func(ctx context.Context) (*AnalyzeResponse, error) {
		return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*AnalyzeResponse, error) {
			return c.doAnalyze(ctx, body)
		})
	})
}

func (c *client) doAnalyze(ctx context.Context, body []byte) (*AnalyzeResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "tambo: rate limiter")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "tambo: build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, resilience.Transient(eris.Wrap(err, "tambo: analyze request"))
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, resilience.Transient(eris.Wrap(err, "tambo: read response"))
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		msg := resp.Status
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		err := eris.Errorf("tambo: analyze failed (%d): %s", resp.StatusCode, msg)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.Transient(err)
		}
		return nil, err
	}

	var out AnalyzeResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, eris.Wrap(err, "tambo: decode response")
	}
	if len(out.SuitabilityGrid) == 0 {
		return nil, eris.New("tambo: response missing suitability grid")
	}
	return &out, nil
}
