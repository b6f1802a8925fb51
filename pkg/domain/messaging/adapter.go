// Package messaging defines the pluggable messaging adapter interface.
package messaging

import (
	"context"
	"time"
)

// Message is a rendered report ready to be posted to a channel.
type Message struct {
	Title     string            `json:"title"`
	Text      string            `json:"text"` // plain text, no terminal styling
	Board     string            `json:"board,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// MessageAdapter sends report notifications to an external channel.
type MessageAdapter interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
	Type() string
}

// AdapterConfig defines configuration for a messaging adapter.
type AdapterConfig struct {
	Name    string            `yaml:"name" json:"name" toml:"name"`
	Type    string            `yaml:"type" json:"type" toml:"type"` // "webhook", "slack"
	URL     string            `yaml:"url" json:"url" toml:"url"`
	Channel string            `yaml:"channel,omitempty" json:"channel,omitempty" toml:"channel"`
	Enabled bool              `yaml:"enabled" json:"enabled" toml:"enabled"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty" toml:"headers"`
}

// MessagingConfig holds all configured messaging adapters.
type MessagingConfig struct {
	Adapters []AdapterConfig `yaml:"adapters" json:"adapters" toml:"adapters"`
}
