// Package client is a typed HTTP client for the backend API. Every response
// is parsed into an explicit envelope at the boundary; a malformed body is
// an error, never a silent empty collection.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to one backend instance on behalf of one user.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a Client for a base URL like "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is the backend's error envelope. ErrorDescription carries the
// display-ready message; Message is a secondary human string.
type APIError struct {
	StatusCode       int    `json:"statusCode"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
	Message          string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s (%d): %s", e.ErrorCode, e.StatusCode, e.ErrorDescription)
}

// successEnvelope is the success wrapper: {statusCode, data}.
type successEnvelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

// listData is the data body of paginated list endpoints.
type listData struct {
	Result json.RawMessage `json:"result"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// do sends a request and decodes the success envelope's data into out.
// Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			return fmt.Errorf("%s %s: status %d with unreadable body", method, path, resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	var env successEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// decodeList unwraps the {result, total} list body into out (a slice ptr).
func decodeList(data json.RawMessage, out interface{}) (int, error) {
	var list listData
	if err := json.Unmarshal(data, &list); err != nil {
		return 0, fmt.Errorf("decode list body: %w", err)
	}
	if err := json.Unmarshal(list.Result, out); err != nil {
		return 0, fmt.Errorf("decode list result: %w", err)
	}
	return list.Total, nil
}
