package messaging

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/messaging"
)

// Registry creates messaging adapters from configuration.
type Registry struct {
	adapters []messaging.MessageAdapter
	logger   *slog.Logger
}

// NewRegistry creates adapters from a MessagingConfig. Disabled adapters are
// skipped.
func NewRegistry(config *messaging.MessagingConfig, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config == nil {
		return &Registry{logger: logger}, nil
	}

	var adapters []messaging.MessageAdapter
	for _, cfg := range config.Adapters {
		if !cfg.Enabled {
			continue
		}

		adapter, err := createAdapter(cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "create adapter %q", cfg.Name)
		}
		adapters = append(adapters, adapter)
	}

	return &Registry{adapters: adapters, logger: logger}, nil
}

// Adapters returns all active adapters.
func (r *Registry) Adapters() []messaging.MessageAdapter {
	return r.adapters
}

// Publish sends msg to every adapter. A failing adapter does not stop the
// others; all failures are returned together.
func (r *Registry) Publish(ctx context.Context, msg *messaging.Message) error {
	var errs error
	for _, a := range r.adapters {
		if err := a.Send(ctx, msg); err != nil {
			r.logger.Warn("publish failed", "adapter", a.Name(), "type", a.Type(), "error", err)
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "adapter %q", a.Name()))
			continue
		}
		r.logger.Debug("report published", "adapter", a.Name(), "title", msg.Title)
	}
	return errs
}

func createAdapter(cfg messaging.AdapterConfig) (messaging.MessageAdapter, error) {
	if cfg.URL == "" {
		return nil, errors.Newf("adapter %q has no url", cfg.Name)
	}
	switch cfg.Type {
	case "webhook":
		return NewWebhookAdapter(cfg), nil
	case "slack":
		return NewSlackAdapter(cfg), nil
	default:
		return nil, errors.Newf("unknown adapter type: %s", cfg.Type)
	}
}
