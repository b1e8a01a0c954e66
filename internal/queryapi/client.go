// Package queryapi is the HTTP client for the FloatChat query service,
// the backend that turns natural-language questions about ARGO float
// data into SQL and runs it.
package queryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bssshyamsundhar/float-chat/internal/chat"
)

// DefaultTimeout bounds a single query round-trip. Generation plus
// execution on the service side is slow, so the bound is generous.
const DefaultTimeout = 120 * time.Second

// Client talks to one query service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the service at baseURL. A non-positive
// timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the service address the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Query submits a question (or an override re-run) and returns the
// service's reply.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	var result QueryResponse
	if err := c.postJSON(ctx, "/query", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health reports the service's own view of its dependencies.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.getJSON(ctx, "/health", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Conversations lists the IDs of every conversation the service holds.
func (c *Client) Conversations(ctx context.Context) ([]string, error) {
	var result conversationList
	if err := c.getJSON(ctx, "/conversations", &result); err != nil {
		return nil, err
	}
	return result.Conversations, nil
}

// Conversation fetches one stored conversation and rebuilds its turns.
func (c *Client) Conversation(ctx context.Context, id string) ([]chat.Message, error) {
	var result conversationHistory
	if err := c.getJSON(ctx, "/conversations/"+id, &result); err != nil {
		return nil, err
	}
	msgs := make([]chat.Message, 0, len(result.Messages))
	for _, wm := range result.Messages {
		msgs = append(msgs, wm.ChatMessage())
	}
	return msgs, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq, path, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(httpReq, path, out)
}

func (c *Client) do(httpReq *http.Request, path string, out any) error {
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to reach query service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// FastAPI wraps errors as {"detail": "..."}.
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(respBody, &detail); err == nil && detail.Detail != "" {
			return fmt.Errorf("query service error [%d] on %s: %s", resp.StatusCode, path, detail.Detail)
		}
		return fmt.Errorf("query service error [%d] on %s: %s", resp.StatusCode, path, previewBody(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func previewBody(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
