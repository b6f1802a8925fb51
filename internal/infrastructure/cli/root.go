package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	boardID    int

	logger = slog.Default()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "sprintpulse",
	Version: Version,
	Short:   "Sprint drift, grooming risk and velocity for Jira boards",
	Long: `SprintPulse reads a Jira board and answers:
1. Is the running sprint on track?
2. Is the next sprint groomed well enough to commit to?
3. What velocity should we plan with?`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(os.Stderr, logLevel, logFormat)
		if err != nil {
			return MapError(err)
		}
		logger = l
		return nil
	},
}

// newLogger builds the run's logger. Every record carries a run_id so the
// lines of one invocation can be grouped.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, NewCLIError(fmt.Sprintf("unknown log level %q", level), "Use debug, info, warn or error", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, NewCLIError(fmt.Sprintf("unknown log format %q", format), "Use text or json", nil)
	}
	return slog.New(h).With("run_id", uuid.NewString()), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./sprintpulse.yaml, then ~/.sprintpulse/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	RootCmd.PersistentFlags().IntVarP(&boardID, "board", "b", 0, "Board id (default: defaultBoard from the config)")
}
