package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/messaging"
	"github.com/slack-go/slack"
)

// SlackAdapter posts reports to a Slack incoming webhook URL.
type SlackAdapter struct {
	config messaging.AdapterConfig
	client *http.Client
}

// NewSlackAdapter creates a Slack adapter from config.
func NewSlackAdapter(config messaging.AdapterConfig) *SlackAdapter {
	return &SlackAdapter{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *SlackAdapter) Name() string { return a.config.Name }
func (a *SlackAdapter) Type() string { return "slack" }

func (a *SlackAdapter) Send(ctx context.Context, msg *messaging.Message) error {
	if err := slack.PostWebhookCustomHTTPContext(ctx, a.config.URL, a.client, slackMessage(msg, a.config.Channel)); err != nil {
		return errors.Wrap(err, "send to slack")
	}
	return nil
}

// slackMessage wraps the report in a code block so column alignment
// survives, with the headline figures as attachment fields.
func slackMessage(msg *messaging.Message, channel string) *slack.WebhookMessage {
	keys := make([]string, 0, len(msg.Fields))
	for k := range msg.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	att := slack.Attachment{Title: msg.Title, Footer: msg.Board}
	for _, k := range keys {
		att.Fields = append(att.Fields, slack.AttachmentField{Title: k, Value: msg.Fields[k], Short: true})
	}
	if !msg.Timestamp.IsZero() {
		att.Ts = json.Number(strconv.FormatInt(msg.Timestamp.Unix(), 10))
	}

	return &slack.WebhookMessage{
		Channel:     channel,
		Text:        "```\n" + msg.Text + "\n```",
		Attachments: []slack.Attachment{att},
	}
}
