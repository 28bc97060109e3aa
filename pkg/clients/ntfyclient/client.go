// Package ntfyclient publishes push notifications to ntfy topic endpoints.
package ntfyclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultHost is the public ntfy instance.
const DefaultHost = "https://ntfy.sh"

// Notification carries the ntfy message metadata sent as headers.
type Notification struct {
	Title string
	Tags  []string
}

// Client posts notifications to ntfy endpoints.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an ntfy client.
func NewClient(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Publish posts message to the given endpoint URL. A non-2xx response is an
// error.
func (c *Client) Publish(ctx context.Context, endpoint, message string, n Notification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if n.Title != "" {
		req.Header.Set("Title", n.Title)
	}
	if len(n.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(n.Tags, ","))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notification rejected: status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("Notification sent",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode))

	return nil
}
