// Package messaging publishes rendered reports to chat and webhook targets.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/messaging"
)

// WebhookAdapter posts reports as JSON to a generic webhook URL.
type WebhookAdapter struct {
	config messaging.AdapterConfig
	client *http.Client
}

// NewWebhookAdapter creates a webhook adapter from config.
func NewWebhookAdapter(config messaging.AdapterConfig) *WebhookAdapter {
	return &WebhookAdapter{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *WebhookAdapter) Name() string { return a.config.Name }
func (a *WebhookAdapter) Type() string { return "webhook" }

func (a *WebhookAdapter) Send(ctx context.Context, msg *messaging.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "SprintPulse-Messaging/1.0")
	for k, v := range a.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.Newf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
