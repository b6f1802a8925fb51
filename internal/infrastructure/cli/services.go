package cli

import (
	"context"

	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/config"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"github.com/spf13/afero"
)

// Swapped in tests.
var (
	configFs      afero.Fs = afero.NewOsFs()
	buildServices          = wiring.BuildAppServices
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFs, config.LoadOptions{Path: configPath})
	if err != nil {
		return nil, MapError(err)
	}
	logger.Debug("config loaded", "path", cfg.Path(), "boards", len(cfg.Boards))
	return cfg, nil
}

func loadServices(ctx context.Context) (*wiring.AppServices, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	services, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return nil, MapError(err)
	}
	return services, nil
}

// loadBoard resolves the --board flag against the configuration.
func loadBoard(ctx context.Context) (*wiring.AppServices, sprint.BoardConfig, error) {
	services, err := loadServices(ctx)
	if err != nil {
		return nil, sprint.BoardConfig{}, err
	}
	board, err := services.Config.Board(boardID)
	if err != nil {
		return nil, sprint.BoardConfig{}, MapError(err)
	}
	return services, board, nil
}
