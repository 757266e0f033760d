// Package tokenapi is the HTTP client for the token status service.
package tokenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rovshanmuradov/token-monitor/internal/token"
)

const (
	DefaultTimeout        = 10 * time.Second
	DefaultRequestsPerSec = 2.0

	// maxResponseBody bounds how much of a response is read.
	maxResponseBody = 4 << 20

	requestIDHeader = "X-Request-ID"
)

// Options configures a Client.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	HTTPClient     *http.Client
}

// Client talks to the token status service. Every call is a single
// request; nothing is retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient validates the base URL and builds a client.
func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", opts.BaseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", opts.BaseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSec > 0 {
		burst := int(opts.RequestsPerSec)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSec), burst)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		httpClient: httpClient,
		limiter:    limiter,
		logger:     logger.Named("tokenapi"),
	}, nil
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string { return c.baseURL }

type statusResponse struct {
	Tokens *[]token.Token `json:"tokens"`
}

// ListTokens fetches GET /tokens/status.
func (c *Client) ListTokens(ctx context.Context) ([]token.Token, error) {
	body, err := c.do(ctx, OpList, http.MethodGet, "/tokens/status", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var resp statusResponse
	if err := json.Unmarshal(nullNonFinite(body), &resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", OpList, err)
	}
	if resp.Tokens == nil {
		return nil, fmt.Errorf("%s: %w", OpList, ErrMalformedResponse)
	}
	return *resp.Tokens, nil
}

type addRequest struct {
	Name    string `json:"token_name"`
	Address string `json:"token_address"`
}

// AddToken registers a token with POST /tokens. Only 201 counts as success.
func (c *Client) AddToken(ctx context.Context, name, address string) error {
	_, err := c.do(ctx, OpAdd, http.MethodPost, "/tokens", addRequest{Name: name, Address: address}, http.StatusCreated)
	return err
}

// DeleteToken removes a token with DELETE /tokens/{address}.
func (c *Client) DeleteToken(ctx context.Context, address string) error {
	_, err := c.do(ctx, OpDelete, http.MethodDelete, tokenPath(address), nil, http.StatusOK)
	return err
}

type activeRequest struct {
	Active bool `json:"active"`
}

// SetActive toggles monitoring with PUT /tokens/{address}.
func (c *Client) SetActive(ctx context.Context, address string, active bool) error {
	_, err := c.do(ctx, OpToggle, http.MethodPut, tokenPath(address), activeRequest{Active: active}, http.StatusOK)
	return err
}

func tokenPath(address string) string {
	return "/tokens/" + url.PathEscape(address)
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any, want int) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}

	c.logger.Debug("Request completed",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != want {
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: truncateBody(bytes.TrimSpace(body))}
	}
	return body, nil
}
