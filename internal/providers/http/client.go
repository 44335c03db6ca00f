package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// StatusError is returned for responses with a 4xx or 5xx status
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d for %s: %s", e.Code, e.URL, e.Body)
}

// Client wraps resty.Client with retries, client-side rate limiting and a
// circuit breaker
type Client struct {
	resty      *resty.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*resty.Response]
	maxRetries int
	timeout    time.Duration
	logger     *slog.Logger
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryWait  time.Duration
	UserAgent  string

	// RateLimit is requests per second, 0 disables limiting
	RateLimit float64
	Burst     int

	// FailureThreshold consecutive transport or 5xx failures open the breaker
	FailureThreshold uint32
	OpenTimeout      time.Duration

	Debug  bool
	Logger *slog.Logger
}

// DefaultClientConfig returns sensible defaults for HTTP client
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:          30 * time.Second,
		MaxRetries:       3,
		RetryWait:        time.Second,
		UserAgent:        "reel/1.0",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config ClientConfig) *Client {
	defaults := DefaultClientConfig()
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = defaults.MaxRetries
	}
	if config.RetryWait == 0 {
		config.RetryWait = defaults.RetryWait
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	if config.FailureThreshold == 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.OpenTimeout == 0 {
		config.OpenTimeout = defaults.OpenTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	restyClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetRetryCount(config.MaxRetries).
		SetRetryWaitTime(config.RetryWait).
		SetRetryMaxWaitTime(5*config.RetryWait).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json")

	restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return !errors.Is(err, context.Canceled)
		}
		return r.StatusCode() >= 500 || r.StatusCode() == 429
	})

	client := &Client{
		resty:      restyClient,
		maxRetries: config.MaxRetries,
		timeout:    config.Timeout,
		logger:     config.Logger,
	}

	client.limiter = rate.NewLimiter(rate.Inf, 1)
	client.SetRateLimit(config.RateLimit, config.Burst)

	client.breaker = gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:    "catalog-api",
		Timeout: config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.Code < 500
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			config.Logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	if config.Debug {
		restyClient.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
			client.logger.Debug("HTTP request", "method", r.Method, "url", r.URL)
			return nil
		})
		restyClient.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
			client.logResponse(r)
			return nil
		})
	}

	return client
}

// Get performs a GET request. query may be nil. When out is non-nil the
// response body is decoded into it.
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	return c.breaker.Execute(func() (*resty.Response, error) {
		req := c.resty.R().SetContext(ctx)
		if query != nil {
			req.SetQueryParams(query)
		}
		if out != nil {
			req.SetResult(out)
		}

		resp, err := req.Get(path)
		if err != nil {
			return nil, fmt.Errorf("GET request failed for %s: %w", path, err)
		}
		if resp.IsError() {
			return resp, &StatusError{Code: resp.StatusCode(), URL: resp.Request.URL, Body: truncate(resp.String(), 200)}
		}
		return resp, nil
	})
}

// BreakerState reports the circuit breaker state, e.g. "closed" or "open"
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.resty.BaseURL
}

// GetTimeout returns the configured timeout
func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

// GetMaxRetries returns the configured max retries
func (c *Client) GetMaxRetries() int {
	return c.maxRetries
}

// SetRateLimit changes the limiter at runtime; 0 disables it.
// Safe to call while requests are in flight.
func (c *Client) SetRateLimit(rps float64, burst int) {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	c.limiter.SetBurst(burst)
	c.limiter.SetLimit(limit)
}

func (c *Client) logResponse(r *resty.Response) {
	c.logger.Debug("HTTP response",
		"status", r.StatusCode(),
		"url", r.Request.URL,
		"time", r.Time(),
		"body", truncate(r.String(), 1000),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "... (truncated)"
}
