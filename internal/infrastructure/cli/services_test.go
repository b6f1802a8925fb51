package cli

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/trackertest"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

func TestLoadBoard(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)
	resetFlags(RootCmd)
	configPath = testConfigPath

	services, board, err := loadBoard(context.Background())
	if err != nil {
		t.Fatalf("loadBoard: %v", err)
	}
	if services == nil || board.ID != 7 || board.Name != "Core" {
		t.Fatalf("unexpected board %+v", board)
	}

	boardID = 99
	defer func() { boardID = 0 }()
	_, _, err = loadBoard(context.Background())
	if !errors.Is(err, sprint.ErrBoardNotFound) {
		t.Fatalf("expected board not found, got %v", err)
	}
	if ExitCode(err) != ExitConfig {
		t.Errorf("exit code = %d", ExitCode(err))
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	useFixture(t, trackertest.Fixture(), testConfig)
	resetFlags(RootCmd)
	configPath = "/nowhere/sprintpulse.yaml"
	defer func() { configPath = "" }()

	_, err := loadConfig()
	if !errors.Is(err, sprint.ErrInvalidConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) || cliErr.Hint != "check the --config path" {
		t.Errorf("unexpected error %#v", err)
	}
}
