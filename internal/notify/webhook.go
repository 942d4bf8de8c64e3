package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	requestTimeout = 5 * time.Second
	maxRetries     = 3
)

var httpClient = &http.Client{Timeout: requestTimeout}

// WebhookConfig defines a webhook notification destination.
type WebhookConfig struct {
	URL     string            `yaml:"url"     json:"url"`
	Format  string            `yaml:"format"  json:"format"` // "generic", "slack"
	Headers map[string]string `yaml:"headers" json:"headers"`
}

// WebhookSink posts notifications to an HTTP endpoint with retry on
// 5xx responses.
type WebhookSink struct {
	cfg WebhookConfig
}

// NewWebhookSink creates a webhook sink. Returns nil for an empty URL
// (callers should nil-check before registering).
func NewWebhookSink(cfg WebhookConfig) *WebhookSink {
	if cfg.URL == "" {
		return nil
	}
	return &WebhookSink{cfg: cfg}
}

func (s *WebhookSink) Present(n Notification) error {
	body, err := formatPayload(s.cfg.Format, n)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range s.cfg.Headers {
			req.Header.Set(k, v)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("webhook rejected: HTTP %d", resp.StatusCode)
		}
		// 5xx — retry
		lastErr = fmt.Errorf("webhook server error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("webhook failed after %d attempts: %w", maxRetries, lastErr)
}

func formatPayload(format string, n Notification) ([]byte, error) {
	if format == "slack" {
		return formatSlack(n)
	}
	return json.Marshal(n)
}

func formatSlack(n Notification) ([]byte, error) {
	payload := map[string]any{
		"blocks": []any{
			map[string]any{
				"type": "header",
				"text": map[string]any{
					"type": "plain_text",
					"text": fmt.Sprintf("extguard: %s", n.Title),
				},
			},
			map[string]any{
				"type": "section",
				"fields": []any{
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Priority:* %s", n.Priority)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Detail:* %s", n.Message)},
				},
			},
		},
	}
	return json.Marshal(payload)
}
