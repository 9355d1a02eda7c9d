// Package client talks to the BuzzHive HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/aitips"
	"github.com/osse101/BuzzHive_Go/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	retryDelay     = 500 * time.Millisecond

	headerAPIKey      = "X-API-Key"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ActionResponse is the result of a hive action
type ActionResponse struct {
	Accepted      bool                  `json:"accepted"`
	State         domain.HiveState      `json:"state"`
	Notifications []domain.Notification `json:"notifications"`
}

type workersRequest struct {
	Count int `json:"count"`
}

type tradeRequest struct {
	Resource string  `json:"resource"`
	Amount   float64 `json:"amount"`
}

// APIClient handles communication with the BuzzHive API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: defaultTimeout},
		APIKey:  apiKey,
	}
}

// do performs a request, retrying transport failures and 5xx answers with
// exponential backoff, and decodes a 2xx body into out
func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody []byte
	if body != nil {
		var err error
		if reqBody, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.IntN(100)) * time.Millisecond
			delay := retryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			slog.Debug("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		retry, err := c.once(ctx, method, path, reqBody, out)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *APIClient) once(ctx context.Context, method, path string, body []byte, out any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(headerContentType, contentTypeJSON)
	if c.APIKey != "" {
		req.Header.Set(headerAPIKey, c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return resp.StatusCode >= 500, decodeError(resp)
	}
	if out == nil {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return false, nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errResp struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
		msg = errResp.Error
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func hivePath(hiveID string, suffix ...string) string {
	p := "/api/v1/hives/" + url.PathEscape(hiveID)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// CreateHive starts a new hive
func (c *APIClient) CreateHive(ctx context.Context) (domain.Hive, error) {
	var h domain.Hive
	err := c.do(ctx, http.MethodPost, "/api/v1/hives", nil, &h)
	return h, err
}

// GetHive returns the current state of a hive
func (c *APIClient) GetHive(ctx context.Context, hiveID string) (domain.Hive, error) {
	var h domain.Hive
	err := c.do(ctx, http.MethodGet, hivePath(hiveID), nil, &h)
	return h, err
}

// Bonus claims the honey bonus
func (c *APIClient) Bonus(ctx context.Context, hiveID string) (ActionResponse, error) {
	return c.action(ctx, hiveID, "bonus", nil)
}

// Upgrade raises the hive level
func (c *APIClient) Upgrade(ctx context.Context, hiveID string) (ActionResponse, error) {
	return c.action(ctx, hiveID, "upgrade", nil)
}

// AddWorkers hires count worker bees
func (c *APIClient) AddWorkers(ctx context.Context, hiveID string, count int) (ActionResponse, error) {
	return c.action(ctx, hiveID, "workers", workersRequest{Count: count})
}

// Sell sells amount of resource at the current price
func (c *APIClient) Sell(ctx context.Context, hiveID, resource string, amount float64) (ActionResponse, error) {
	return c.action(ctx, hiveID, "sell", tradeRequest{Resource: resource, Amount: amount})
}

// Buy buys amount of resource at the current price
func (c *APIClient) Buy(ctx context.Context, hiveID, resource string, amount float64) (ActionResponse, error) {
	return c.action(ctx, hiveID, "buy", tradeRequest{Resource: resource, Amount: amount})
}

func (c *APIClient) action(ctx context.Context, hiveID, name string, body any) (ActionResponse, error) {
	var out ActionResponse
	err := c.do(ctx, http.MethodPost, hivePath(hiveID, name), body, &out)
	return out, err
}

// HiveTips asks the advisor about a live hive
func (c *APIClient) HiveTips(ctx context.Context, hiveID string) (aitips.Response, error) {
	var out aitips.Response
	err := c.do(ctx, http.MethodPost, hivePath(hiveID, "tips"), nil, &out)
	return out, err
}

// Optimize asks the advisor about a described hive
func (c *APIClient) Optimize(ctx context.Context, req aitips.Request) (aitips.Response, error) {
	var out aitips.Response
	err := c.do(ctx, http.MethodPost, "/api/v1/tips", req, &out)
	return out, err
}
