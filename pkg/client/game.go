package client

import (
	"context"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/params"
)

const (
	currentGamePath   = "/observer-mode/rest/consumer/getSpectatorGameInfo/{platformId}/{summonerId}"
	featuredGamesPath = "/observer-mode/rest/featured"
	recentGamesPath   = "/api/lol/{region}/{version}/game/by-summoner/{summonerId}/recent"
)

// SummonerIDOptions select a single summoner.
type SummonerIDOptions struct {
	dispatcher.CallOptions
	ID params.Value `json:"id" validate:"required"`
}

// RegionOptions carry only the per-call overrides.
type RegionOptions struct {
	dispatcher.CallOptions
}

// GetCurrentGameBySummonerID returns the game a summoner is currently playing.
func (c *Client) GetCurrentGameBySummonerID(ctx context.Context, opts SummonerIDOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupCurrentGame,
			PathTemplate: currentGamePath,
			PathParams:   map[string]params.Value{"summonerId": opts.ID},
		}
	})
}

// GetFeaturedGames returns the featured games of a region.
func (c *Client) GetFeaturedGames(ctx context.Context, opts RegionOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupFeaturedGames,
			PathTemplate: featuredGamesPath,
		}
	})
}

// GetRecentGamesBySummonerID returns a summoner's recent games.
func (c *Client) GetRecentGamesBySummonerID(ctx context.Context, opts SummonerIDOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupGame,
			PathTemplate: recentGamesPath,
			PathParams:   map[string]params.Value{"summonerId": opts.ID},
		}
	})
}
