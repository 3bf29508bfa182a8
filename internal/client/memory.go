package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"bodai/internal/logging"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION CONTEXT AND PROFILE
// =============================================================================

// ContextEntry is one turn of the conversation the backend remembers.
type ContextEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ProfileEntry is one fact the backend learned about the user.
// ID is the position in the listing the backend returned.
type ProfileEntry struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Info     string `json:"info"`
}

// Context returns the conversation turns the backend keeps between messages.
func (c *Client) Context(ctx context.Context) ([]ContextEntry, error) {
	var out struct {
		Context []ContextEntry `json:"context"`
	}
	if err := c.call(ctx, http.MethodGet, "/context", nil, &out); err != nil {
		return nil, err
	}
	return out.Context, nil
}

// ClearContext makes the backend forget the conversation so far.
func (c *Client) ClearContext(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/context", nil, nil)
}

// Profile lists what the backend has noted about the user.
func (c *Client) Profile(ctx context.Context) ([]ProfileEntry, error) {
	var out struct {
		Profile []ProfileEntry `json:"profile"`
	}
	if err := c.call(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return out.Profile, nil
}

// UpdateProfile replaces the info of one profile entry.
func (c *Client) UpdateProfile(ctx context.Context, id int, info string) error {
	if id <= 0 {
		return fmt.Errorf("invalid profile id %d", id)
	}
	return c.call(ctx, http.MethodPut, "/profile/"+strconv.Itoa(id), chatRequest{Message: info}, nil)
}

// DeleteProfile removes one profile entry.
func (c *Client) DeleteProfile(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid profile id %d", id)
	}
	return c.call(ctx, http.MethodDelete, "/profile/"+strconv.Itoa(id), nil, nil)
}

// call sends in as JSON (when non-nil) to path and decodes the response into
// out (when non-nil).
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	url := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", reqID)

	log := logging.Get(logging.CategoryAPI).With("request_id", reqID)
	log.Debug("%s %s", method, url)

	raw, err := c.do(httpReq)
	if err != nil {
		log.Warn("%s %s failed: %v", method, url, err)
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
