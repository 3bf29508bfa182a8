// Package client talks to the BODAI chat backend over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"bodai/internal/config"
	"bodai/internal/logging"

	"github.com/google/uuid"
)

// =============================================================================
// CHAT CLIENT
// =============================================================================

// Client posts messages to the chat endpoint and reads replies.
type Client struct {
	baseURL   string
	chatURL   string
	healthURL string
	http      *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the backend described by cfg.
func New(cfg config.ServerConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		chatURL:   cfg.ChatURL(),
		healthURL: cfg.HealthURL(),
		http: &http.Client{
			Timeout:   cfg.GetTimeout(),
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reply is a successful answer from the backend.
type Reply struct {
	Text      string
	RequestID string
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// Send posts text and returns the reply.
//
// Transport failures, non-2xx statuses and bodies that are not JSON all
// match ErrTransport. A JSON body without a usable reply field returns
// ErrInvalidReply.
func (c *Client) Send(ctx context.Context, text string) (Reply, error) {
	if strings.TrimSpace(text) == "" {
		return Reply{}, ErrEmptyMessage
	}

	reqID := uuid.NewString()
	log := logging.Get(logging.CategoryAPI).With("request_id", reqID)

	body, err := json.Marshal(chatRequest{Message: text})
	if err != nil {
		return Reply{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)

	if log.Enabled() {
		log.Debug("POST %s %s", c.chatURL, truncate(string(body), 200))
	}

	raw, err := c.do(httpReq)
	if err != nil {
		return Reply{RequestID: reqID}, err
	}

	reply, ok := extractReply(raw)
	if !ok {
		log.Warn("response carried no reply: %s", truncate(string(raw), 200))
		return Reply{RequestID: reqID}, ErrInvalidReply
	}

	log.Debug("reply received (%d chars)", len(reply))
	return Reply{Text: reply, RequestID: reqID}, nil
}

// Health queries the backend health endpoint.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	raw, err := c.do(httpReq)
	if err != nil {
		return HealthStatus{}, err
	}

	var hs HealthStatus
	if err := json.Unmarshal(raw, &hs); err != nil {
		return HealthStatus{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return hs, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// do executes req and returns the body of a 2xx response that holds valid JSON.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw), 200)}
	}

	if !json.Valid(raw) {
		return nil, ErrDecode
	}
	return raw, nil
}

// extractReply pulls a truthy "reply" out of a JSON document. Non-object
// documents, a missing field, and null/false/0/"" values yield ok=false.
// Non-string truthy values are returned as their JSON text.
func extractReply(raw []byte) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}
	field, ok := obj["reply"]
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(field, &s); err == nil {
		return s, s != ""
	}

	token := strings.TrimSpace(string(field))
	switch token {
	case "null", "false":
		return "", false
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil && f == 0 {
		return "", false
	}
	return token, true
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
