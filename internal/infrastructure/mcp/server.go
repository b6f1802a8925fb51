// Package mcp exposes sprint reports to agents over the Model Context Protocol.
package mcp

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/sprintpulse/pkg/application"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/analytics"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
)

type Server struct {
	mcpServer *mcp.Server
	logger    *slog.Logger

	mu       sync.RWMutex
	services *wiring.AppServices
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// mcpErr turns err into a message an agent can act on. Hints attached to the
// error are appended; stack details are not.
func mcpErr(friendly string, err error) error {
	msg := friendly
	if err != nil {
		msg += ": " + err.Error()
	}
	for _, h := range errors.GetAllHints(err) {
		msg += " (" + h + ")"
	}
	return errors.Newf("%s", msg)
}

func NewServer(services *wiring.AppServices, logger *slog.Logger) (*Server, error) {
	if services == nil {
		return nil, errors.New("services initialization returned nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	info := mcp.ServerInfo{
		Name:    "sprintpulse",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("SprintPulse MCP Server"),
			mcp.WithDescription("SprintPulse reports sprint drift, grooming risk and velocity for Jira boards."),
			mcp.WithWebsiteURL("https://github.com/felixgeelhaar/sprintpulse"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Use list_boards to find a board, then sprint_progress for the active sprint and sprint_planning for the next one."),
		),
		services: services,
		logger:   logger,
	}

	s.registerTools()
	s.registerSchemaResource()
	return s, nil
}

type BoardArgs struct {
	BoardID int `json:"board_id,omitempty" jsonschema:"description=Board id (default: the configured default board)"`
}

type ProgressArgs struct {
	BoardID   int    `json:"board_id,omitempty" jsonschema:"description=Board id (default: the configured default board)"`
	Sprint    string `json:"sprint,omitempty" jsonschema:"description=Sprint name (default: the active sprint)"`
	TimeShift int    `json:"time_shift,omitempty" jsonschema:"description=Business days to move today by, negative for the past"`
}

type PlanningArgs struct {
	BoardID int    `json:"board_id,omitempty" jsonschema:"description=Board id (default: the configured default board)"`
	Sprint  string `json:"sprint,omitempty" jsonschema:"description=Sprint name (default: the next future sprint)"`
}

type ListSprintsArgs struct {
	BoardID int    `json:"board_id,omitempty" jsonschema:"description=Board id (default: the configured default board)"`
	State   string `json:"state,omitempty" jsonschema:"description=Only sprints in this state: active, future or closed"`
}

type VelocityArgs struct {
	BoardID int `json:"board_id,omitempty" jsonschema:"description=Board id (default: the configured default board)"`
	Sprints int `json:"sprints,omitempty" jsonschema:"description=Number of closed sprints to learn from (default 6)"`
}

func (s *Server) registerTools() {
	s.mcpServer.Tool("list_boards").
		Description("List the boards configured in sprintpulse").
		Handler(s.handleListBoards)

	s.mcpServer.Tool("list_sprints").
		Description("List sprints of a board, active first").
		Handler(s.handleListSprints)

	s.mcpServer.Tool("sprint_progress").
		Description("Drift, remaining work, completed work and scope changes of a running sprint").
		Handler(s.handleProgress)

	s.mcpServer.Tool("sprint_planning").
		Description("Grooming readiness and risk of an upcoming sprint").
		Handler(s.handlePlanning)

	s.mcpServer.Tool("sprint_digest").
		Description("Condensed drift, workload and risk for the active and next sprint").
		Handler(s.handleDigest)

	s.mcpServer.Tool("velocity").
		Description("Suggest a team velocity from recently closed sprints").
		Handler(s.handleVelocity)
}

// Reload swaps the services used by subsequent tool calls. Calls already
// running finish with the services they started with.
func (s *Server) Reload(services *wiring.AppServices) {
	if services == nil {
		return
	}
	s.mu.Lock()
	s.services = services
	s.mu.Unlock()
	s.logger.Info("mcp services reloaded", "config", services.Config.Path(), "boards", len(services.Config.Boards))
}

func (s *Server) current() *wiring.AppServices {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services
}

// board resolves a board id together with the services to query it with.
func (s *Server) board(id int) (*wiring.AppServices, sprint.BoardConfig, error) {
	svc := s.current()
	board, err := svc.Config.Board(id)
	if err != nil {
		return nil, sprint.BoardConfig{}, mcpErr("Unknown board", err)
	}
	return svc, board, nil
}

func (s *Server) handleListBoards(ctx context.Context, args struct{}) (any, error) {
	return s.current().Config.Boards, nil
}

func (s *Server) handleListSprints(ctx context.Context, args ListSprintsArgs) (any, error) {
	svc, board, err := s.board(args.BoardID)
	if err != nil {
		return nil, err
	}
	var states []sprint.State
	if args.State != "" {
		states = append(states, sprint.State(args.State))
	}
	sprints, err := svc.Sprints.List(ctx, board.ID, states...)
	if err != nil {
		return nil, mcpErr("Failed to list sprints", err)
	}
	return sprints, nil
}

func (s *Server) handleProgress(ctx context.Context, args ProgressArgs) (any, error) {
	svc, board, err := s.board(args.BoardID)
	if err != nil {
		return nil, err
	}
	sp, err := svc.Sprints.Resolve(ctx, board.ID,
		application.SprintSelector{Name: args.Sprint}, application.SprintSelector{Active: true})
	if err != nil {
		return nil, mcpErr("Failed to find the sprint", err)
	}
	rep, err := svc.Reports.Progress(ctx, board, sp, application.ProgressOptions{TimeShift: args.TimeShift})
	if err != nil {
		return nil, mcpErr("Failed to build the progress report", err)
	}
	return rep, nil
}

func (s *Server) handlePlanning(ctx context.Context, args PlanningArgs) (any, error) {
	svc, board, err := s.board(args.BoardID)
	if err != nil {
		return nil, err
	}
	sp, err := svc.Sprints.Resolve(ctx, board.ID,
		application.SprintSelector{Name: args.Sprint}, application.SprintSelector{Next: true})
	if err != nil {
		return nil, mcpErr("Failed to find the sprint", err)
	}
	rep, err := svc.Reports.Planning(ctx, board, sp)
	if err != nil {
		return nil, mcpErr("Failed to build the planning report", err)
	}
	return rep, nil
}

func (s *Server) handleDigest(ctx context.Context, args ProgressArgs) (any, error) {
	svc, board, err := s.board(args.BoardID)
	if err != nil {
		return nil, err
	}
	d, err := svc.Reports.Digest(ctx, board, application.ProgressOptions{TimeShift: args.TimeShift})
	if err != nil {
		return nil, mcpErr("Failed to build the digest", err)
	}
	return d, nil
}

func (s *Server) handleVelocity(ctx context.Context, args VelocityArgs) (any, error) {
	svc, board, err := s.board(args.BoardID)
	if err != nil {
		return nil, err
	}
	vs, err := svc.Velocity.Suggest(ctx, board, args.Sprints)
	if err != nil {
		if errors.Is(err, analytics.ErrNoSamples) {
			return nil, mcpErr("No closed sprints with completed work yet", nil)
		}
		return nil, mcpErr("Failed to compute velocity", err)
	}
	return vs, nil
}

func (s *Server) StartStdio() error {
	return s.ServeStdio(context.Background())
}

func (s *Server) StartHTTP(addr string) error {
	return s.ServeHTTP(context.Background(), addr)
}

func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Debug("mcp serving on stdio")
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	s.logger.Info("mcp serving on http", "addr", addr)
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}
