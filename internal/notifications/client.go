package notifications

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client pushes plain-text messages to an ntfy topic. Disabled clients turn
// every call into a no-op, so callers never need to branch.
type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	priority   string
	enabled    bool
}

func NewClient(baseURL, topic, priority string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		topic:      topic,
		priority:   priority,
		enabled:    enabled,
	}
}

// NotifyNewRecord announces a freshly registered record. Failures are logged
// and swallowed; a lost notification must never fail a submission.
func (c *Client) NotifyNewRecord(ctx context.Context, table, id string) {
	message := fmt.Sprintf("New %s record registered: %s", table, id)
	if err := c.send(ctx, message); err != nil {
		log.Warn().Err(err).Str("table", table).Str("id", id).Msg("Failed to send notification")
	}
}

func (c *Client) send(ctx context.Context, message string) error {
	if !c.enabled {
		log.Debug().Msg("Notifications disabled, skipping")
		return nil
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(message))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	if c.priority != "" {
		req.Header.Set("Priority", c.priority)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}

	log.Debug().Str("topic", c.topic).Msg("Notification sent")
	return nil
}
