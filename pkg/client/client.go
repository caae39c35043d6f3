// Package client is a Go client for the contentforge HTTP API, covering
// the same operations the web front-end uses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/contentforge/contentforge/internal/content"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateRequest is the partial record sent to POST /contents.
type CreateRequest struct {
	ID          string `json:"id,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Title       string `json:"title,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Content     string `json:"content,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// UpdateRequest carries merge fields for PUT /contents/{id}; nil fields
// are left out of the body and keep their stored values.
type UpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	ContentType *string `json:"contentType,omitempty"`
	Content     *string `json:"content,omitempty"`
}

type GenerateRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Prompt      string `json:"prompt"`
	UserID      string `json:"userId,omitempty"`
}

// MutationResponse is the envelope returned by create/update/delete.
type MutationResponse struct {
	Success string          `json:"success"`
	ID      string          `json:"id"`
	Content *content.Record `json:"content,omitempty"`
}

func (c *Client) List(ctx context.Context) ([]*content.Record, error) {
	var out []*content.Record
	if err := c.do(ctx, http.MethodGet, "/contents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListByUser(ctx context.Context, userID string) ([]*content.Record, error) {
	var out []*content.Record
	if err := c.do(ctx, http.MethodGet, "/contents/user/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*content.Record, error) {
	var out content.Record
	if err := c.do(ctx, http.MethodGet, "/contents/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, http.MethodPost, "/contents", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Generate returns the generated record without persisting it; pass the
// result to Create to save it.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*content.Record, error) {
	var out content.Record
	if err := c.do(ctx, http.MethodPost, "/contents/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, http.MethodPut, "/contents/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) (*MutationResponse, error) {
	var out MutationResponse
	if err := c.do(ctx, http.MethodDelete, "/contents/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var envelope struct {
			Err string `json:"error"`
		}
		msg := string(raw)
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Err != "" {
			msg = envelope.Err
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
