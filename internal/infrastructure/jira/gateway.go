// Package jira implements the issue tracker gateway on top of the Jira Cloud
// REST and Agile APIs.
package jira

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/cockroachdb/errors"
	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/sprint"
	"golang.org/x/oauth2"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 100
)

var baseFields = []string{"key", "summary", "status", "assignee"}

// Config holds connection settings for a Jira site.
type Config struct {
	BaseURL     string
	Email       string
	APIToken    string
	BearerToken string
	Timeout     time.Duration
	PageSize    int
	HTTPClient  *http.Client // overrides the authenticated client, used in tests
}

// Gateway reads boards, sprints and issues from Jira. Every request runs
// under its own timeout and failures are never retried.
type Gateway struct {
	client   *jira.Client
	timeout  time.Duration
	pageSize int
	logger   *slog.Logger
}

// NewGateway creates a gateway. Bearer tokens take precedence over basic auth.
func NewGateway(ctx context.Context, cfg Config, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, sprint.ConfigError("set baseUrl in the config file or SPRINTPULSE_BASE_URL", "jira base URL is empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		switch {
		case cfg.BearerToken != "":
			httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.BearerToken}))
		case cfg.Email != "" && cfg.APIToken != "":
			tp := jira.BasicAuthTransport{Username: cfg.Email, Password: cfg.APIToken}
			httpClient = tp.Client()
		default:
			return nil, sprint.ConfigError(
				"set email and apiToken (or JIRA_EMAIL and JIRA_API_TOKEN)",
				"no Jira credentials configured",
			)
		}
	}

	client, err := jira.NewClient(httpClient, cfg.BaseURL)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "cannot create Jira client"), sprint.ErrInvalidConfig)
	}

	g := &Gateway{
		client:   client,
		timeout:  cfg.Timeout,
		pageSize: cfg.PageSize,
		logger:   logger,
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	if g.pageSize <= 0 {
		g.pageSize = DefaultPageSize
	}
	return g, nil
}

type searchPage struct {
	issues []jira.Issue
	total  int
}

// Search runs the filter and reads every page of results.
func (g *Gateway) Search(ctx context.Context, f sprint.Filter, fields []string) (*sprint.SearchResult, error) {
	if matchesNothing(f) {
		return &sprint.SearchResult{Issues: []sprint.Issue{}}, nil
	}

	jql := JQL(f)
	opts := &jira.SearchOptions{
		MaxResults: g.pageSize,
		Fields:     requestFields(f.PointsField, fields),
	}
	if f.ExpandHistory {
		opts.Expand = "changelog"
	}

	out := &sprint.SearchResult{Issues: []sprint.Issue{}}
	for {
		page, err := callWithTimeout(ctx, g.timeout, func(ctx context.Context) (searchPage, error) {
			issues, resp, err := g.client.Issue.SearchWithContext(ctx, jql, opts)
			if err != nil {
				return searchPage{}, describe(err, resp)
			}
			return searchPage{issues: issues, total: resp.Total}, nil
		})
		if err != nil {
			return nil, sprint.MarkTransport(err, "search "+jql)
		}

		for _, is := range page.issues {
			out.Issues = append(out.Issues, toIssue(is, f.PointsField))
		}
		out.Total = page.total
		opts.StartAt += len(page.issues)
		if len(page.issues) == 0 || opts.StartAt >= page.total {
			break
		}
	}

	g.logger.Debug("jira search", "jql", jql, "total", out.Total)
	return out, nil
}

// Sprints lists a board's sprints in the given states.
func (g *Gateway) Sprints(ctx context.Context, boardID int, states ...sprint.State) ([]sprint.Sprint, error) {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = string(s)
	}
	opts := &jira.GetAllSprintsOptions{
		State:         strings.Join(names, ","),
		SearchOptions: jira.SearchOptions{MaxResults: 50},
	}

	var out []sprint.Sprint
	for {
		list, err := callWithTimeout(ctx, g.timeout, func(ctx context.Context) (*jira.SprintsList, error) {
			list, resp, err := g.client.Board.GetAllSprintsWithOptionsWithContext(ctx, boardID, opts)
			if err != nil {
				return nil, describe(err, resp)
			}
			return list, nil
		})
		if err != nil {
			return nil, sprint.MarkTransport(err, "list sprints")
		}

		for _, s := range list.Values {
			out = append(out, toSprint(s))
		}
		if list.IsLast || len(list.Values) == 0 {
			break
		}
		opts.StartAt += len(list.Values)
	}
	return out, nil
}

// Boards lists every board the credentials can see.
func (g *Gateway) Boards(ctx context.Context) ([]sprint.Board, error) {
	opts := &jira.BoardListOptions{SearchOptions: jira.SearchOptions{MaxResults: 50}}

	var out []sprint.Board
	for {
		list, err := callWithTimeout(ctx, g.timeout, func(ctx context.Context) (*jira.BoardsList, error) {
			list, resp, err := g.client.Board.GetAllBoardsWithContext(ctx, opts)
			if err != nil {
				return nil, describe(err, resp)
			}
			return list, nil
		})
		if err != nil {
			return nil, sprint.MarkTransport(err, "list boards")
		}

		for _, b := range list.Values {
			out = append(out, toBoard(b))
		}
		if list.IsLast || len(list.Values) == 0 {
			break
		}
		opts.StartAt += len(list.Values)
	}
	return out, nil
}

func callWithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	t := timeout.New[T](timeout.Config{DefaultTimeout: d})
	return t.Execute(ctx, d, fn)
}

func requestFields(pointsField string, extra []string) []string {
	fields := append([]string(nil), baseFields...)
	if pointsField != "" {
		fields = append(fields, pointsField)
	}
	return append(fields, extra...)
}

// describe adds the HTTP status to err when Jira answered at all.
func describe(err error, resp *jira.Response) error {
	if resp != nil && resp.Response != nil {
		return errors.Wrapf(err, "jira responded %s", resp.Status)
	}
	return err
}
