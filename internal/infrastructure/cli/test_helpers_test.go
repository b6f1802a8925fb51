package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/config"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/trackertest"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testConfigPath = "/etc/sprintpulse/sprintpulse.yaml"

const testConfig = `
baseUrl: https://acme.atlassian.net
email: ada@acme.io
apiToken: secret
timezone: UTC
defaultBoard: 7
boards:
  - id: 7
    name: Core
`

// useFixture points the CLI at an in-memory config and the given tracker.
func useFixture(t *testing.T, tracker *trackertest.Tracker, cfgYAML string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, testConfigPath, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	oldFs, oldBuild := configFs, buildServices
	configFs = fs
	buildServices = func(ctx context.Context, cfg *config.Config, l *slog.Logger) (*wiring.AppServices, error) {
		clock := func() time.Time { return trackertest.Today }
		return wiring.NewAppServices(cfg, tracker, l, []application.ReportOption{application.WithClock(clock)})
	}
	t.Cleanup(func() {
		configFs, buildServices = oldFs, oldBuild
	})
}

// runCLI executes the root command with args and returns what it printed.
// Flag values and their changed state are reset first, since cobra keeps
// them between executions.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(append([]string{"--config", testConfigPath}, args...))
	err := RootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
