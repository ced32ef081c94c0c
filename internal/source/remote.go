package source

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	resty "github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/teamtab/internal/config"
	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/core/layouts"
	"github.com/JonMunkholm/teamtab/internal/logging"
	"github.com/JonMunkholm/teamtab/internal/record"
)

const (
	teamsPath     = "/teams"
	teamRolesPath = "/teams/{id}/roles"

	RetryWaitTime    = 100 * time.Millisecond
	RetryWaitTimeMax = 2 * time.Second

	DefaultMaxConcurrent = 4
)

// RemoteOptions configures a Remote source.
type RemoteOptions struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	MaxConcurrent int
	RetryCount    int
	Layout        string // defaults to the separate-roles layout
}

// RemoteOptionsFromConfig copies the remote section of the configuration.
func RemoteOptionsFromConfig(cfg config.RemoteConfig) RemoteOptions {
	return RemoteOptions{
		BaseURL:       cfg.BaseURL,
		Token:         cfg.Token,
		Timeout:       cfg.Timeout,
		MaxConcurrent: cfg.MaxConcurrent,
		RetryCount:    cfg.RetryCount,
	}
}

// Remote fetches teams from an HTTP endpoint and then the roles of each team.
//
// The team list request must succeed. Each per-team role request is
// independent: a failed one leaves that team without roles and is logged.
type Remote struct {
	http          *resty.Client
	maxConcurrent int
	layout        string
}

// NewRemote creates a Remote source.
func NewRemote(opts RemoteOptions) (*Remote, error) {
	if opts.BaseURL == "" {
		return nil, ErrNoEndpoint
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.Layout == "" {
		opts.Layout = layouts.SeparateKey
	}

	return &Remote{
		http:          createHttpClient(opts),
		maxConcurrent: opts.MaxConcurrent,
		layout:        opts.Layout,
	}, nil
}

func createHttpClient(opts RemoteOptions) *resty.Client {
	c := resty.New()
	c.SetBaseURL(opts.BaseURL)
	c.SetHeader("Accept", "application/json")
	if opts.Token != "" {
		c.SetAuthToken(opts.Token)
	}
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	c.SetRetryCount(opts.RetryCount)
	c.SetRetryWaitTime(RetryWaitTime)
	c.SetRetryMaxWaitTime(RetryWaitTimeMax)
	c.AddRetryCondition(func(response *resty.Response, err error) bool {
		if response == nil {
			return false
		}
		switch response.StatusCode() {
		case
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	})
	return c
}

// Name implements core.Source.
func (r *Remote) Name() string { return NameRemote }

// Load implements core.Source.
func (r *Remote) Load(ctx context.Context) (*core.Dataset, error) {
	teams, err := r.fetchTeams(ctx)
	if err != nil {
		return nil, err
	}

	roles, err := r.fetchRoles(ctx, teams)
	if err != nil {
		return nil, err
	}

	return &core.Dataset{
		Source: NameRemote,
		Layout: r.layout,
		Teams:  teams,
		Roles:  roles,
	}, nil
}

func (r *Remote) fetchTeams(ctx context.Context) ([]record.Team, error) {
	resp, err := r.http.R().SetContext(ctx).Get(teamsPath)
	if err != nil {
		return nil, fmt.Errorf("teams fetch failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("teams fetch failed: status %d", resp.StatusCode())
	}

	teams, err := record.DecodeTeams(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("teams fetch failed: %w", err)
	}
	return teams, nil
}

// fetchRoles requests the roles of every distinct, non-empty team id.
// Per-team failures are soft; only cancellation of ctx aborts the load.
func (r *Remote) fetchRoles(ctx context.Context, teams []record.Team) (core.RolesByTeam, error) {
	ids := distinctIDs(teams)
	results := make([][]record.Role, len(ids))
	logger := logging.FromContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrent)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			roles, err := r.fetchTeamRoles(gctx, id)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("team roles fetch failed, team keeps no roles", "team_id", id, "error", err)
				return nil
			}
			results[i] = roles
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("roles fetch: %w", err)
	}

	byTeam := make(core.RolesByTeam, len(ids))
	for i, id := range ids {
		byTeam[id] = results[i]
	}
	return byTeam, nil
}

func (r *Remote) fetchTeamRoles(ctx context.Context, teamID string) ([]record.Role, error) {
	resp, err := r.http.R().
		SetContext(ctx).
		SetPathParam("id", teamID).
		Get(teamRolesPath)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}
	return record.DecodeRoles(bytes.NewReader(resp.Body()))
}

func distinctIDs(teams []record.Team) []string {
	seen := make(map[string]struct{}, len(teams))
	ids := make([]string, 0, len(teams))
	for _, team := range teams {
		id := team.ID.String()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
