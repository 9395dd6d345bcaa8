// Package api is the REST client for the sticker gallery backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Auth headers the backend validates on protected endpoints.
const (
	HeaderInitData  = "X-Telegram-Init-Data"
	HeaderBotName   = "X-Telegram-Bot-Name"
	headerRequestID = "X-Request-Id"
)

// DefaultTimeout bounds every backend call. The original client had no
// timeouts at all and a hung fetch left the UI loading forever.
const DefaultTimeout = 15 * time.Second

// AuthVerdict is the backend's authoritative authorization answer. It
// overrides any local freshness heuristic.
type AuthVerdict struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	Message       string `json:"message,omitempty"`
}

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Code int
	Text string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d %s", e.Code, e.Text)
}

// Client talks to the gallery backend.
type Client struct {
	baseURL string
	botName string
	http    *http.Client
}

// NewClient creates a backend client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(baseURL string, botName string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		botName: botName,
		http:    &http.Client{Timeout: timeout},
	}
}

// AuthStatus asks the backend whether the credential authenticates the user.
func (c *Client) AuthStatus(ctx context.Context, credential string) (*AuthVerdict, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/status", credential)
	if err != nil {
		return nil, err
	}

	var verdict AuthVerdict
	if err := json.Unmarshal(body, &verdict); err != nil {
		return nil, fmt.Errorf("failed to decode auth status: %w", err)
	}
	return &verdict, nil
}

// ListStickerSets fetches the raw listing body. The caller normalizes the
// shape; credential may be empty in public mode.
func (c *Client) ListStickerSets(ctx context.Context, credential string) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/stickersets", credential)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// DeleteStickerSet deletes a sticker set by id.
func (c *Client) DeleteStickerSet(ctx context.Context, credential string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/stickersets/%d", id), credential)
	if err != nil {
		return fmt.Errorf("failed to delete sticker set %d: %w", id, err)
	}
	return nil
}

// FetchMedia downloads raw media bytes for a locator path such as
// "/api/stickers/{fileId}". The media endpoint requires no auth headers.
func (c *Client) FetchMedia(ctx context.Context, locator string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, locator, "")
}

// MediaPath templates a file identifier into the media-retrieval endpoint.
func MediaPath(fileID string) string {
	return "/api/stickers/" + url.PathEscape(fileID)
}

func (c *Client) do(ctx context.Context, method string, path string, credential string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set(headerRequestID, uuid.NewString())
	if credential != "" {
		req.Header.Set(HeaderInitData, credential)
		req.Header.Set(HeaderBotName, c.botName)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Text: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
