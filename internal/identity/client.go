package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ihavefood/internal/contextKey"
)

const loginPath = "/auth/login"

// Client posts credentials to the identity service.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a client for baseURL. A nil httpClient means a plain
// http.Client, which imposes no timeout of its own.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{client: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Login issues exactly one POST {baseURL}/auth/login.
func (c *Client) Login(ctx context.Context, creds Credentials) (Response, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if rid, ok := contextKey.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, extractAuthError(resp.StatusCode, data)
	}

	if !json.Valid(data) {
		return Response{}, fmt.Errorf("%w: status %d", ErrParse, resp.StatusCode)
	}
	return Response{Body: json.RawMessage(data)}, nil
}

func extractAuthError(status int, data []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: status %d: %w", ErrParse, status, err)
	}
	return &AuthError{Status: status, Message: payload.Message}
}

// Ping reports whether the identity service answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
