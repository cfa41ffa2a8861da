package client

import (
	"context"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/params"
)

const (
	leagueBySummonerPath      = "/api/lol/{region}/{version}/league/by-summoner/{summonerIds}"
	leagueEntryBySummonerPath = "/api/lol/{region}/{version}/league/by-summoner/{summonerIds}/entry"
	leagueByTeamPath          = "/api/lol/{region}/{version}/league/by-team/{teamIds}"
	leagueEntryByTeamPath     = "/api/lol/{region}/{version}/league/by-team/{teamIds}/entry"
	challengerLeaguePath      = "/api/lol/{region}/{version}/league/challenger"
	masterLeaguePath          = "/api/lol/{region}/{version}/league/master"
)

// DefaultQueueType is used by the tier leagues when no type is given.
const DefaultQueueType = "RANKED_SOLO_5x5"

// IDsOptions select one or more entities. IDs may be a scalar or a list.
type IDsOptions struct {
	dispatcher.CallOptions
	IDs params.Value `json:"ids" validate:"required"`
}

// TierLeagueOptions are the options of the challenger and master league accessors.
type TierLeagueOptions struct {
	dispatcher.CallOptions
	Type string `json:"type,omitempty" validate:"omitempty,oneof=RANKED_SOLO_5x5 RANKED_TEAM_3x3 RANKED_TEAM_5x5"`
}

func (o TierLeagueOptions) queueType() string {
	if o.Type == "" {
		return DefaultQueueType
	}
	return o.Type
}

func (c *Client) leagueByIDs(ctx context.Context, opts IDsOptions, template, token string) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupLeague,
			PathTemplate: template,
			PathParams:   map[string]params.Value{token: opts.IDs},
		}
	})
}

// GetLeagueBySummonerIDs returns the leagues of the given summoners.
func (c *Client) GetLeagueBySummonerIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.leagueByIDs(ctx, opts, leagueBySummonerPath, "summonerIds")
}

// GetLeagueEntryBySummonerIDs returns the league entries of the given summoners.
func (c *Client) GetLeagueEntryBySummonerIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.leagueByIDs(ctx, opts, leagueEntryBySummonerPath, "summonerIds")
}

// GetLeagueByTeamIDs returns the leagues of the given teams.
func (c *Client) GetLeagueByTeamIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.leagueByIDs(ctx, opts, leagueByTeamPath, "teamIds")
}

// GetLeagueEntryByTeamIDs returns the league entries of the given teams.
func (c *Client) GetLeagueEntryByTeamIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.leagueByIDs(ctx, opts, leagueEntryByTeamPath, "teamIds")
}

func (c *Client) tierLeague(ctx context.Context, opts TierLeagueOptions, template string) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupLeague,
			PathTemplate: template,
			Query:        params.Query{"type": params.String(opts.queueType())},
		}
	})
}

// GetChallengerLeague returns the challenger tier league for a queue type.
func (c *Client) GetChallengerLeague(ctx context.Context, opts TierLeagueOptions) (*dispatcher.Outcome, error) {
	return c.tierLeague(ctx, opts, challengerLeaguePath)
}

// GetMasterLeague returns the master tier league for a queue type.
func (c *Client) GetMasterLeague(ctx context.Context, opts TierLeagueOptions) (*dispatcher.Outcome, error) {
	return c.tierLeague(ctx, opts, masterLeaguePath)
}
