// Package healthsearch is the HTTP client for the product search backend.
package healthsearch

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

	"github.com/cenkalti/backoff/v4"
	"github.com/tildaslashalef/healthsearch/internal/config"
	"github.com/tildaslashalef/healthsearch/internal/loggy"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-call request ID to the backend
const RequestIDHeader = "X-Request-ID"

// Client is the search backend API client
type Client struct {
	// Config for the client
	config config.APIConfig

	// HTTP client for API requests
	httpClient *http.Client

	limiter *rate.Limiter
}

// NewClient creates a new client with the provided configuration
func NewClient(cfg config.APIConfig) *Client {
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.IdleConnTimeout,
		},
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		limiter:    newLimiter(cfg.RequestsPerMinute, cfg.BurstLimit),
	}
}

// newLimiter returns an unlimited limiter when rpm is not positive
func newLimiter(rpm, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = 1
	}
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// Endpoint returns the backend base URL
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// Health asks the backend for its status and cache statistics.
// Any non-200 answer is returned as an *APIError.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.makeRequest(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("checking health: %w", err)
	}
	return &resp, nil
}

// GenerateQuery sends a natural-language query and returns the generated
// GraphQL query, the matching products and the generated summary.
func (c *Client) GenerateQuery(ctx context.Context, text string) (*GenerateQueryResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQuery
	}

	var resp GenerateQueryResponse
	req := GenerateQueryRequest{Text: text}
	if err := c.makeRequest(ctx, http.MethodPost, "/generate_query", req, &resp); err != nil {
		return nil, fmt.Errorf("generating query: %w", err)
	}
	if resp.Results == nil {
		resp.Results = Products{}
	}
	return &resp, nil
}

// makeRequest sends one API call, retrying transient failures up to
// MaxRetries times with exponential backoff.
func (c *Client) makeRequest(ctx context.Context, method, path string, reqBody, respBody any) error {
	var body []byte
	if reqBody != nil {
		var err error
		body, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	requestID := loggy.GetRequestID(ctx)
	if requestID == "" {
		requestID = loggy.NewRequestID()
		ctx = loggy.WithRequestID(ctx, requestID)
	}
	logger := loggy.FromContext(ctx)
	url := c.config.Endpoint + path

	attempt := 0
	operation := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("waiting for rate limiter: %w", err))
		}

		start := time.Now()
		respData, err := c.do(ctx, method, url, requestID, body)
		logger.Debug("API request",
			"method", method,
			"url", url,
			"attempt", attempt,
			"duration", time.Since(start),
			"error", err)
		if err != nil {
			if apiErr, ok := IsAPIError(err); ok && !apiErr.Temporary() {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}

		if len(respData) == 0 {
			return backoff.Permanent(errors.New("empty response body"))
		}

		if err := json.Unmarshal(respData, respBody); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.config.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		logger.WithError(err).Warn("API request failed", "method", method, "url", url, "attempts", attempt)
		return err
	}

	return nil
}

// do performs a single HTTP round trip and returns the response body
func (c *Client) do(ctx context.Context, method, url, requestID string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respData))}
	}

	return respData, nil
}
