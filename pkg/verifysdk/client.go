package verifysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to one verifyd instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do sends body as JSON when non-nil and decodes a response with
// expectedStatus into out when non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any, expectedStatus int) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), rd)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		if err := parseErrorResponse(resp, raw); err != nil {
			return err
		}
		return &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError, Description: "unexpected status"}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &u, http.StatusCreated)
	return u, err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp SessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", LoginRequest{Email: email, Password: password}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return c.NewSession(resp.Token, !resp.MFARequired), nil
}

// NewSession wraps an existing bearer token.
func (c *Client) NewSession(token string, mfaComplete bool) *Session {
	return &Session{client: c, token: token, mfaComplete: mfaComplete}
}

func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var h HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", "", nil, &h, http.StatusOK)
	return h, err
}

func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var h HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &h, http.StatusOK)
	return h, err
}

// Upload PUTs data to a presigned uploadUrl. The URL already carries its
// credentials so no bearer token is sent.
func (c *Client) Upload(ctx context.Context, uploadURL, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Code: "upload_failed", Description: string(msg)}
	}
	return nil
}
