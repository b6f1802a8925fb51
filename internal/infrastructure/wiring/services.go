// Package wiring assembles the application services from configuration.
package wiring

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/config"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/jira"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/messaging"
	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain"
)

// AppServices exposes the application layer services wired to one tracker.
type AppServices struct {
	Config      *config.Config
	Tracker     domain.IssueTracker
	Sprints     *application.SprintService
	Reports     *application.ReportService
	Velocity    *application.VelocityService
	Diagnostics *application.DiagnosticsService
	Publisher   *messaging.Registry
}

// BuildAppServices connects to Jira with the configured credentials and
// builds the services on top of the gateway.
func BuildAppServices(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*AppServices, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	gateway, err := jira.NewGateway(ctx, jira.Config{
		BaseURL:     cfg.BaseURL,
		Email:       cfg.Email,
		APIToken:    cfg.APIToken,
		BearerToken: cfg.BearerToken,
		Timeout:     timeout,
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "build jira gateway")
	}
	return NewAppServices(cfg, gateway, logger, nil)
}

// NewAppServices builds the services on top of an existing tracker. Extra
// report options are applied after the configured time zone.
func NewAppServices(cfg *config.Config, tracker domain.IssueTracker, logger *slog.Logger, opts []application.ReportOption) (*AppServices, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	publisher, err := messaging.NewRegistry(cfg.Messaging, logger)
	if err != nil {
		return nil, errors.Wrap(err, "messaging")
	}

	sprints := application.NewSprintService(tracker)
	reportOpts := append([]application.ReportOption{application.WithLocation(loc)}, opts...)

	return &AppServices{
		Config:      cfg,
		Tracker:     tracker,
		Sprints:     sprints,
		Reports:     application.NewReportService(tracker, sprints, logger, reportOpts...),
		Velocity:    application.NewVelocityService(tracker, logger),
		Diagnostics: application.NewDiagnosticsService(tracker, sprints),
		Publisher:   publisher,
	}, nil
}
