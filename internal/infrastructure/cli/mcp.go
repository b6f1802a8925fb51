package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	inframcp "github.com/felixgeelhaar/sprintpulse/internal/infrastructure/mcp"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/watch"
	"github.com/spf13/cobra"
)

var (
	mcpTransport   string
	mcpAddr        string
	mcpWatchConfig bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the SprintPulse MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := newMCPServer(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if mcpWatchConfig {
			var cancel context.CancelFunc
			ctx, cancel = context.WithCancel(ctx)
			defer cancel()
			if err := watchConfig(ctx, server); err != nil {
				return err
			}
		}
		switch strings.ToLower(mcpTransport) {
		case "stdio", "":
			err = server.ServeStdio(ctx)
		case "http":
			err = server.ServeHTTP(ctx, mcpAddr)
		default:
			return NewCLIError(fmt.Sprintf("unsupported transport: %s", mcpTransport), "Use stdio or http", nil)
		}
		if err != nil {
			return MapError(errors.Wrap(err, "mcp server"))
		}
		return nil
	},
}

func newMCPServer(cmd *cobra.Command) (*inframcp.Server, error) {
	services, err := loadServices(cmd.Context())
	if err != nil {
		return nil, err
	}
	server, err := inframcp.NewServer(services, logger)
	if err != nil {
		return nil, MapError(errors.Wrap(err, "failed to initialize server"))
	}
	return server, nil
}

// watchConfig reloads the server's services whenever the config file
// changes. A config that fails to load is logged and the previous one kept.
func watchConfig(ctx context.Context, server *inframcp.Server) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w, err := watch.NewFileWatcher(cfg.Path(), watch.DefaultDebounce, func(ev watch.ChangeEvent) {
		if ev.ChangeType == "remove" || ev.ChangeType == "rename" {
			logger.Warn("config file moved away, keeping the current config", "path", ev.Path)
			return
		}
		services, err := loadServices(ctx)
		if err != nil {
			logger.Error("config reload failed, keeping the current config", "path", ev.Path, "error", err)
			return
		}
		server.Reload(services)
	})
	if err != nil {
		return NewCLIError("cannot watch the config file", "Run without --watch-config", err)
	}
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("config watcher stopped", "error", err)
		}
	}()
	logger.Debug("watching config", "path", w.Path())
	return nil
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8080", "Address for the http transport")
	mcpCmd.Flags().BoolVar(&mcpWatchConfig, "watch-config", false, "Reload the config file when it changes")
	RootCmd.AddCommand(mcpCmd)
}
