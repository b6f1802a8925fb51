package config_test

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/config"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

const yamlConfig = `
baseUrl: https://acme.atlassian.net
email: ada@acme.io
apiToken: secret
timeout: 45s
timezone: Europe/Berlin
defaultBoard: 7
boards:
  - id: 7
    name: Platform
    defaultTeamVelocity: 40
    customFields:
      storyPoints: customfield_10026
    finishLineStatuses: [Ready for QA]
    statusOrder: [To Do, In Progress, Ready for QA]
    sprints:
      Sprint 12:
        totalBusinessDays: 9
        notes: Public holiday on Friday
messaging:
  adapters:
    - name: team-channel
      type: slack
      url: https://hooks.slack.com/services/T/B/X
      enabled: true
`

const legacyJSON = `{
  "baseUrl": "https://acme.atlassian.net",
  "email": "ada@acme.io",
  "apiToken": "secret",
  "boards": [{"id": 3, "name": "Legacy", "customFields": {"groomedStatus": ["READY"]}}]
}`

const tomlConfig = `
baseUrl = "https://acme.atlassian.net"
bearerToken = "tok"

[[boards]]
id = 9
name = "Tomlish"
defaultTeamVelocity = 21.5

[boards.sprints."Sprint 1"]
teamVelocity = 18.0
`

func noEnv(string) string { return "" }

func TestLoad_YAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/work/sprintpulse.yaml", []byte(yamlConfig), 0o600)

	cfg, err := config.Load(fs, config.LoadOptions{WorkDir: "/work", HomeDir: "/home/ada", Env: noEnv})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Path() != "/work/sprintpulse.yaml" {
		t.Errorf("unexpected path %q", cfg.Path())
	}

	board, err := cfg.Board(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if board.StoryPointsField() != "customfield_10026" {
		t.Errorf("expected custom points field, got %q", board.StoryPointsField())
	}
	if days, ok := board.TotalBusinessDaysOverride("Sprint 12"); !ok || days != 9 {
		t.Errorf("expected 9 day override, got %d (ok=%v)", days, ok)
	}
	if v, ok := board.TeamVelocity("Sprint 12"); !ok || v != 40 {
		t.Errorf("expected board velocity 40, got %v", v)
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil || timeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %v (%v)", timeout, err)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Errorf("expected Europe/Berlin, got %v (%v)", loc, err)
	}
	if cfg.Messaging == nil || len(cfg.Messaging.Adapters) != 1 || cfg.Messaging.Adapters[0].Type != "slack" {
		t.Errorf("expected one slack adapter, got %+v", cfg.Messaging)
	}
}

func TestLoad_LegacyJSONInHome(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/home/ada/.jira-sprint-metrics/config.json", []byte(legacyJSON), 0o600)

	cfg, err := config.Load(fs, config.LoadOptions{WorkDir: "/work", HomeDir: "/home/ada", Env: noEnv})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	board, err := cfg.Board(0)
	if err != nil {
		t.Fatalf("single board should be selected implicitly: %v", err)
	}
	if diff := cmp.Diff([]string{"READY"}, board.GroomedStatuses()); diff != "" {
		t.Errorf("groomed statuses mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(sprint.DefaultUngroomedStatuses, board.UngroomedStatuses()); diff != "" {
		t.Errorf("ungroomed defaults mismatch:\n%s", diff)
	}
}

func TestLoad_TOML(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/etc/sp.toml", []byte(tomlConfig), 0o600)

	cfg, err := config.Load(fs, config.LoadOptions{Path: "/etc/sp.toml", Env: noEnv})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	board, err := cfg.Board(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := board.TeamVelocity("Sprint 1"); v != 18 {
		t.Errorf("expected sprint velocity 18, got %v", v)
	}
	if v, _ := board.TeamVelocity("Sprint 2"); v != 21.5 {
		t.Errorf("expected board velocity 21.5, got %v", v)
	}
	if cfg.BearerToken != "tok" {
		t.Errorf("expected bearer token, got %q", cfg.BearerToken)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/work/jira-config.json", []byte(legacyJSON), 0o600)
	env := map[string]string{
		config.EnvBaseURL:  "https://other.atlassian.net",
		config.EnvAPIToken: "from-env",
	}

	cfg, err := config.Load(fs, config.LoadOptions{WorkDir: "/work", HomeDir: "/none", Env: func(k string) string { return env[k] }})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://other.atlassian.net" || cfg.APIToken != "from-env" || cfg.Email != "ada@acme.io" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing boards", `baseUrl: https://acme.atlassian.net`},
		{"bad url", "baseUrl: acme\nboards: [{id: 1, name: A}]"},
		{"zero sprint length", "baseUrl: https://a.io\nboards: [{id: 1, name: A, sprints: {S1: {totalBusinessDays: 0}}}]"},
		{"bad adapter type", "baseUrl: https://a.io\nboards: [{id: 1, name: A}]\nmessaging: {adapters: [{name: x, type: email, url: https://a.io}]}"},
		{"duplicate board", "baseUrl: https://a.io\nboards: [{id: 1, name: A}, {id: 1, name: B}]"},
		{"unknown default", "baseUrl: https://a.io\ndefaultBoard: 4\nboards: [{id: 1, name: A}]"},
		{"malformed yaml", "baseUrl: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			_ = afero.WriteFile(fs, "/w/sprintpulse.yaml", []byte(tt.content), 0o600)

			_, err := config.Load(fs, config.LoadOptions{WorkDir: "/w", HomeDir: "/h", Env: noEnv})
			if !errors.Is(err, sprint.ErrInvalidConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestLoad_NoFile(t *testing.T) {
	_, err := config.Load(afero.NewMemMapFs(), config.LoadOptions{WorkDir: "/w", HomeDir: "/h", Env: noEnv})
	if !errors.Is(err, sprint.ErrInvalidConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if len(errors.GetAllHints(err)) == 0 {
		t.Error("expected a hint")
	}
}

func TestConfig_Board(t *testing.T) {
	cfg := &config.Config{Boards: []sprint.BoardConfig{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}

	if _, err := cfg.Board(0); !errors.Is(err, sprint.ErrBoardNotFound) {
		t.Errorf("expected not found without default, got %v", err)
	}
	if b, err := cfg.Board(2); err != nil || b.Name != "B" {
		t.Errorf("expected board B, got %+v (%v)", b, err)
	}
	if _, err := cfg.Board(5); !errors.Is(err, sprint.ErrBoardNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
