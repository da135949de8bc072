package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crm-sync/core/metrics"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client defines the CRM operations used by the sync.
type Client interface {
	BatchCreate(ctx context.Context, objectType string, inputs []CreateInput) (*BatchResponse, error)
	BatchUpdate(ctx context.Context, objectType string, inputs []UpdateInput) (*BatchResponse, error)
	BatchArchive(ctx context.Context, objectType string, ids []string) error
	Search(ctx context.Context, objectType string, req SearchRequest) (*SearchResponse, error)
	BatchRead(ctx context.Context, objectType string, req BatchReadRequest) (*BatchResponse, error)
}

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Collector
	logger  *zap.Logger

	breakerTimeout time.Duration
}

// ClientOption customizes an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(h *HTTPClient) { h.http = c }
}

// WithMetrics records request latency on m.
func WithMetrics(m *metrics.Collector) ClientOption {
	return func(h *HTTPClient) { h.metrics = m }
}

// WithBreakerTimeout overrides how long the breaker stays open before it lets a trial call through.
func WithBreakerTimeout(d time.Duration) ClientOption {
	return func(h *HTTPClient) { h.breakerTimeout = d }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(h *HTTPClient) { h.logger = l }
}

// NewClient creates a rate limited, breaker protected client.
func NewClient(cfg Config, opts ...ClientOption) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("crm base url is required")
	}
	if cfg.Token == "" {
		return nil, errors.New("crm token is required")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	breakerTimeout := time.Duration(cfg.BreakerTimeoutSeconds) * time.Second
	if breakerTimeout <= 0 {
		breakerTimeout = 60 * time.Second
	}

	c := &HTTPClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		logger:  zap.NewNop(),

		breakerTimeout: breakerTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	failures := uint32(max(cfg.BreakerFailures, 1))
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "crm-api",
		Timeout: c.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Retryable()
			}
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c, nil
}

// BatchCreate creates objects. A 207 response is returned without error; inspect Errors.
func (c *HTTPClient) BatchCreate(ctx context.Context, objectType string, inputs []CreateInput) (*BatchResponse, error) {
	out := &BatchResponse{}
	code, err := c.do(ctx, objectType, "create", c.objectPath(objectType, "batch/create"), map[string]any{"inputs": inputs}, out)
	out.StatusCode = code
	return out, err
}

// BatchUpdate updates objects by id or by the input's IDProperty.
func (c *HTTPClient) BatchUpdate(ctx context.Context, objectType string, inputs []UpdateInput) (*BatchResponse, error) {
	out := &BatchResponse{}
	code, err := c.do(ctx, objectType, "update", c.objectPath(objectType, "batch/update"), map[string]any{"inputs": inputs}, out)
	out.StatusCode = code
	return out, err
}

// BatchArchive archives objects by record id.
func (c *HTTPClient) BatchArchive(ctx context.Context, objectType string, ids []string) error {
	inputs := make([]ObjectID, len(ids))
	for i, id := range ids {
		inputs[i] = ObjectID{ID: id}
	}
	_, err := c.do(ctx, objectType, "archive", c.objectPath(objectType, "batch/archive"), map[string]any{"inputs": inputs}, nil)
	return err
}

// Search returns one page of matching objects.
func (c *HTTPClient) Search(ctx context.Context, objectType string, req SearchRequest) (*SearchResponse, error) {
	out := &SearchResponse{}
	if _, err := c.do(ctx, objectType, "search", c.objectPath(objectType, "search"), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// BatchRead reads non-archived objects.
func (c *HTTPClient) BatchRead(ctx context.Context, objectType string, req BatchReadRequest) (*BatchResponse, error) {
	out := &BatchResponse{}
	code, err := c.do(ctx, objectType, "read", c.objectPath(objectType, "batch/read")+"?archived=false", req, out)
	out.StatusCode = code
	return out, err
}

func (c *HTTPClient) objectPath(objectType, suffix string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/crm/v3/objects/" + objectType + "/" + suffix
}

func (c *HTTPClient) do(ctx context.Context, objectType, op, url string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encode %s %s request: %w", objectType, op, err)
	}
	code := 0
	call := func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		code = resp.StatusCode

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
			_ = json.Unmarshal(raw, apiErr)
			apiErr.StatusCode = resp.StatusCode
			return nil, apiErr
		}
		if out != nil && len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return nil, fmt.Errorf("decode %s %s response: %w", objectType, op, err)
			}
		}
		return nil, nil
	}

	// An open breaker holds the call back until a trial is allowed; it never drops it.
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, err
		}
		start := time.Now()
		_, err = c.breaker.Execute(call)
		if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.metrics.ObserveRequest(objectType, op, code, time.Since(start))
			break
		}
		if err := c.awaitBreaker(ctx, objectType, op); err != nil {
			return 0, err
		}
	}

	if err != nil {
		c.logger.Debug("CRM request failed",
			zap.String("object_type", objectType),
			zap.String("operation", op),
			zap.Int("status", code),
			zap.Error(err))
	}
	return code, err
}

func (c *HTTPClient) awaitBreaker(ctx context.Context, objectType, op string) error {
	c.logger.Debug("CRM request waiting for circuit breaker",
		zap.String("object_type", objectType),
		zap.String("operation", op))

	poll := min(max(c.breakerTimeout/20, 10*time.Millisecond), time.Second)
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if c.breaker.State() != gobreaker.StateOpen {
			return nil
		}
	}
}
