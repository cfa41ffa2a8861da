package client

import (
	"context"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/params"
)

const (
	teamsBySummonerPath = "/api/lol/{region}/{version}/team/by-summoner/{summonerIds}"
	teamsPath           = "/api/lol/{region}/{version}/team/{teamIds}"
)

// GetTeamsBySummonerIDs returns the teams of the given summoners.
func (c *Client) GetTeamsBySummonerIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupTeam,
			PathTemplate: teamsBySummonerPath,
			PathParams:   map[string]params.Value{"summonerIds": opts.IDs},
		}
	})
}

// GetTeamsByIDs looks teams up by id.
func (c *Client) GetTeamsByIDs(ctx context.Context, opts IDsOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupTeam,
			PathTemplate: teamsPath,
			PathParams:   map[string]params.Value{"teamIds": opts.IDs},
		}
	})
}
