package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"farmgenius/gateway/pkg/telemetry/tracing"

	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of a backend body is read.
const maxResponseBytes = 1 << 20

// ClientConfig configures an HTTPClient.
type ClientConfig struct {
	// Name identifies the backend in errors and logs.
	Name string

	// Timeout bounds one call including retries and backoff.
	Timeout time.Duration

	// MaxRetries is the number of retries for transport errors and 5xx.
	MaxRetries int

	// RetryBackoff is the first backoff delay; it doubles per attempt.
	// Zero means one second.
	RetryBackoff time.Duration

	// RequestsPerSecond paces outbound calls. Zero disables pacing.
	RequestsPerSecond float64

	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// HTTPClient is the shared transport for backend adapters. It provides
// connection pooling, bounded retries, typed errors, optional pacing and
// health counters.
type HTTPClient struct {
	config  ClientConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger

	health   ClientHealth
	healthMu sync.RWMutex
}

// NewHTTPClient creates a client with its own pooled transport.
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 20
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}
	if config.IdleConnTimeout == 0 {
		config.IdleConnTimeout = 90 * time.Second
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = time.Second
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	c := &HTTPClient{
		config: config,
		client: &http.Client{Transport: transport},
		logger: slog.Default().With("component", "provider", "provider", config.Name),
		health: ClientHealth{IsHealthy: true},
	}
	if config.RequestsPerSecond > 0 {
		burst := int(math.Ceil(config.RequestsPerSecond))
		c.limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}
	return c
}

// Name returns the configured backend name.
func (c *HTTPClient) Name() string {
	return c.config.Name
}

// Do performs a request and returns the body of a 2xx answer. Transport
// errors and 5xx answers are retried with exponential backoff; 4xx answers
// fail immediately. The whole call, backoff included, is bounded by the
// configured timeout.
func (c *HTTPClient) Do(ctx context.Context, method, url string, body []byte, headers map[string]string) ([]byte, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.contextError(ctx, err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.config.RetryBackoff * time.Duration(1<<uint(attempt-1))
			c.logger.DebugContext(ctx, "retrying request",
				"attempt", attempt,
				"max_retries", c.config.MaxRetries,
				"backoff", backoff,
			)

			select {
			case <-ctx.Done():
				c.recordRequest(false, lastErr)
				return nil, c.contextError(ctx, ctx.Err())
			case <-time.After(backoff):
			}
		}

		data, retry, err := c.attempt(ctx, method, url, body, headers)
		if err == nil {
			c.recordRequest(true, nil)
			return data, nil
		}
		lastErr = err
		if !retry {
			c.recordRequest(false, err)
			return nil, err
		}

		c.logger.WarnContext(ctx, "request failed, will retry",
			"attempt", attempt+1,
			"error", err,
		)
	}

	c.recordRequest(false, lastErr)
	return nil, lastErr
}

// attempt performs one request. retry reports whether a failure is transient.
func (c *HTTPClient) attempt(ctx context.Context, method, url string, body []byte, headers map[string]string) (data []byte, retry bool, err error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tracing.Inject(ctx, req.Header)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, c.contextError(ctx, ctx.Err())
		}
		return nil, true, &ProviderError{Provider: c.config.Name, Message: "transport error", Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, c.contextError(ctx, ctx.Err())
		}
		return nil, true, &ProviderError{
			Provider:   c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    "failed to read response",
			Cause:      err,
		}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return payload, false, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, false, &AuthError{Provider: c.config.Name, Message: string(payload)}

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, false, &RateLimitError{
			Provider:   c.config.Name,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    string(payload),
		}

	case resp.StatusCode >= 500:
		return nil, true, &ProviderError{
			Provider:   c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    string(payload),
		}

	default:
		return nil, false, &ProviderError{
			Provider:   c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    string(payload),
		}
	}
}

// DoJSON marshals reqBody, performs the request and decodes the answer
// into respBody.
func (c *HTTPClient) DoJSON(ctx context.Context, method, url string, reqBody, respBody any, headers map[string]string) error {
	var bodyBytes []byte
	if reqBody != nil {
		var err error
		bodyBytes, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	data, err := c.Do(ctx, method, url, bodyBytes, headers)
	if err != nil {
		return err
	}

	if respBody == nil {
		return nil
	}
	if err := json.Unmarshal(data, respBody); err != nil {
		return &ParseError{
			Provider:    c.config.Name,
			RawResponse: truncate(string(data), 512),
			Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}
	return nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) contextError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: c.config.Name, Timeout: c.config.Timeout}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
