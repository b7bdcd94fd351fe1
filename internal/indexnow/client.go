// SPDX-License-Identifier: MIT

package indexnow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vidsite/vidsite/internal/platform/httpx"
	platformnet "github.com/vidsite/vidsite/internal/platform/net"
)

// DefaultEndpoint is the shared IndexNow endpoint that fans out to all
// participating search engines.
const DefaultEndpoint = "https://api.indexnow.org/IndexNow"

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4 << 10
)

// Payload is the JSON body of a bulk IndexNow submission.
type Payload struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("indexnow: unexpected status %s", e.Status)
	}
	return fmt.Sprintf("indexnow: unexpected status %s: %s", e.Status, e.Body)
}

// Submitter sends one payload. Client is the production implementation.
type Submitter interface {
	Submit(ctx context.Context, p Payload) error
}

// Client posts payloads to an IndexNow endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient returns a Client for endpoint. A nil hc gets a hardened default
// client; an empty endpoint means DefaultEndpoint.
func NewClient(endpoint string, hc *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if hc == nil {
		hc = httpx.NewClient(defaultTimeout)
	}
	return &Client{endpoint: endpoint, http: hc}
}

// Endpoint returns the submission URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Submit posts p. Any 2xx status counts as accepted.
func (c *Client) Submit(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post to %s: %w", platformnet.SanitizeURL(c.endpoint), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(msg)),
	}
}
