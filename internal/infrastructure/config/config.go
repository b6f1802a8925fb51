// Package config loads the sprintpulse configuration file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/messaging"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config is the whole configuration file.
type Config struct {
	BaseURL      string                     `yaml:"baseUrl" json:"baseUrl" toml:"baseUrl"`
	Email        string                     `yaml:"email,omitempty" json:"email,omitempty" toml:"email"`
	APIToken     string                     `yaml:"apiToken,omitempty" json:"apiToken,omitempty" toml:"apiToken"`
	BearerToken  string                     `yaml:"bearerToken,omitempty" json:"bearerToken,omitempty" toml:"bearerToken"`
	Timeout      string                     `yaml:"timeout,omitempty" json:"timeout,omitempty" toml:"timeout"`
	Timezone     string                     `yaml:"timezone,omitempty" json:"timezone,omitempty" toml:"timezone"`
	Boards       []sprint.BoardConfig       `yaml:"boards" json:"boards" toml:"boards"`
	DefaultBoard int                        `yaml:"defaultBoard,omitempty" json:"defaultBoard,omitempty" toml:"defaultBoard"`
	Messaging    *messaging.MessagingConfig `yaml:"messaging,omitempty" json:"messaging,omitempty" toml:"messaging"`

	path string
}

// Path is the file the configuration was read from.
func (c *Config) Path() string { return c.path }

// Board returns the board with the given id. A zero id selects the default
// board, or the only board when just one is configured.
func (c *Config) Board(id int) (sprint.BoardConfig, error) {
	if id == 0 {
		id = c.DefaultBoard
	}
	if id == 0 && len(c.Boards) == 1 {
		return c.Boards[0], nil
	}
	for _, b := range c.Boards {
		if b.ID == id {
			return b, nil
		}
	}
	if id == 0 {
		return sprint.BoardConfig{}, errors.WithHint(
			errors.Wrap(sprint.ErrBoardNotFound, "no board selected"),
			"pass --board or set defaultBoard in the config file",
		)
	}
	return sprint.BoardConfig{}, errors.WithHint(
		errors.Wrapf(sprint.ErrBoardNotFound, "board %d", id),
		"run 'sprintpulse boards' to list configured boards",
	)
}

// RequestTimeout parses the timeout setting; zero means the gateway default.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, sprint.ConfigError("use a Go duration such as 30s", "invalid timeout %q", c.Timeout)
	}
	return d, nil
}

// Location resolves the timezone used for calendar dates.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, sprint.ConfigError("use an IANA zone such as Europe/Berlin", "invalid timezone %q", c.Timezone)
	}
	return loc, nil
}

// LoadOptions controls where configuration is looked up.
type LoadOptions struct {
	Path    string              // explicit file, must exist
	WorkDir string              // defaults to "."
	HomeDir string              // defaults to the user's home directory
	Env     func(string) string // defaults to os.Getenv
}

const (
	EnvBaseURL     = "SPRINTPULSE_BASE_URL"
	EnvEmail       = "JIRA_EMAIL"
	EnvAPIToken    = "JIRA_API_TOKEN"
	EnvBearerToken = "JIRA_BEARER_TOKEN"
)

// Candidates lists the files tried, in order, when no path is given.
func Candidates(workDir, homeDir string) []string {
	c := []string{
		filepath.Join(workDir, "sprintpulse.yaml"),
		filepath.Join(workDir, "sprintpulse.yml"),
		filepath.Join(workDir, "sprintpulse.toml"),
		filepath.Join(workDir, "jira-config.json"),
	}
	if homeDir != "" {
		c = append(c,
			filepath.Join(homeDir, ".sprintpulse", "config.yaml"),
			filepath.Join(homeDir, ".sprintpulse", "config.toml"),
			filepath.Join(homeDir, ".jira-sprint-metrics", "config.json"),
		)
	}
	return c
}

// Load finds, decodes and validates the configuration.
func Load(fs afero.Fs, opts LoadOptions) (*Config, error) {
	if opts.Env == nil {
		opts.Env = os.Getenv
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.HomeDir == "" {
		opts.HomeDir, _ = os.UserHomeDir()
	}

	path, err := locate(fs, opts)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	cfg, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	cfg.path = path
	cfg.applyEnv(opts.Env)

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func locate(fs afero.Fs, opts LoadOptions) (string, error) {
	if opts.Path != "" {
		if ok, _ := afero.Exists(fs, opts.Path); !ok {
			return "", sprint.ConfigError("check the --config path", "config file %s does not exist", opts.Path)
		}
		return opts.Path, nil
	}
	for _, p := range Candidates(opts.WorkDir, opts.HomeDir) {
		if ok, _ := afero.Exists(fs, p); ok {
			return p, nil
		}
	}
	return "", sprint.ConfigError(
		"create sprintpulse.yaml in this directory or ~/.sprintpulse/config.yaml",
		"no configuration file found",
	)
}

// Decode parses data according to the file extension (.yaml, .yml, .toml or
// .json).
func Decode(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, markInvalid(err, "failed to unmarshal YAML")
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, markInvalid(err, "failed to unmarshal TOML")
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, markInvalid(err, "failed to unmarshal JSON")
		}
	default:
		return nil, sprint.ConfigError("use .yaml, .toml or .json", "unsupported config format %q", ext)
	}
	return &cfg, nil
}

func markInvalid(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), sprint.ErrInvalidConfig)
}

func (c *Config) applyEnv(env func(string) string) {
	if v := env(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := env(EnvEmail); v != "" {
		c.Email = v
	}
	if v := env(EnvAPIToken); v != "" {
		c.APIToken = v
	}
	if v := env(EnvBearerToken); v != "" {
		c.BearerToken = v
	}
}
