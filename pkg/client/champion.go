package client

import (
	"context"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/params"
)

const (
	championListPath = "/api/lol/{region}/{version}/champion"
	championPath     = "/api/lol/{region}/{version}/champion/{id}"
)

// ChampionsOptions are the options of GetChampions.
type ChampionsOptions struct {
	dispatcher.CallOptions
	FreeToPlay bool `json:"freeToPlay,omitempty"`
}

// ChampionByIDOptions are the options of GetChampionByID.
type ChampionByIDOptions struct {
	dispatcher.CallOptions
	ID params.Value `json:"id" validate:"required"`
}

// GetChampions lists champion availability, optionally only the free-to-play rotation.
func (c *Client) GetChampions(ctx context.Context, opts ChampionsOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupChampion,
			PathTemplate: championListPath,
			Query:        params.Query{"freeToPlay": params.Bool(opts.FreeToPlay)},
		}
	})
}

// GetChampionByID returns the availability of one champion.
func (c *Client) GetChampionByID(ctx context.Context, opts ChampionByIDOptions) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, opts.CallOptions, func() dispatcher.RequestSpec {
		return dispatcher.RequestSpec{
			Group:        catalog.GroupChampion,
			PathTemplate: championPath,
			PathParams:   map[string]params.Value{"id": opts.ID},
		}
	})
}
