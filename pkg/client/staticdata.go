package client

import (
	"context"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/dispatcher"
	"github.com/morezero/gamestats/pkg/params"
)

// Static data is served by the global host for every region.
const (
	staticChampionsPath       = "/api/lol/static-data/{region}/{version}/champion"
	staticChampionPath        = "/api/lol/static-data/{region}/{version}/champion/{id}"
	staticItemsPath           = "/api/lol/static-data/{region}/{version}/item"
	staticItemPath            = "/api/lol/static-data/{region}/{version}/item/{id}"
	staticLanguageStringsPath = "/api/lol/static-data/{region}/{version}/language-strings"
	staticLanguagesPath       = "/api/lol/static-data/{region}/{version}/languages"
	staticMapPath             = "/api/lol/static-data/{region}/{version}/map"
	staticMasteriesPath       = "/api/lol/static-data/{region}/{version}/mastery"
	staticMasteryPath         = "/api/lol/static-data/{region}/{version}/mastery/{id}"
	staticRealmPath           = "/api/lol/static-data/{region}/{version}/realm"
	staticRunesPath           = "/api/lol/static-data/{region}/{version}/rune"
	staticRunePath            = "/api/lol/static-data/{region}/{version}/rune/{id}"
	staticSpellsPath          = "/api/lol/static-data/{region}/{version}/summoner-spell"
	staticSpellPath           = "/api/lol/static-data/{region}/{version}/summoner-spell/{id}"
	staticVersionsPath        = "/api/lol/static-data/{region}/{version}/versions"
)

// StaticOptions are shared by the static data accessors. DataVersion selects the
// data set version, not the API version.
type StaticOptions struct {
	dispatcher.CallOptions
	Locale      string `json:"locale,omitempty"`
	DataVersion string `json:"version,omitempty"`
}

func (o StaticOptions) query() params.Query {
	return params.Query{
		"locale":  params.OptionalString(o.Locale),
		"version": params.OptionalString(o.DataVersion),
	}
}

// StaticChampionsOptions are the options of GetStaticChampions.
type StaticChampionsOptions struct {
	StaticOptions
	DataByID  bool         `json:"dataById,omitempty"`
	ChampData params.Value `json:"champData,omitempty"`
}

// StaticChampionOptions are the options of GetStaticChampionByID.
type StaticChampionOptions struct {
	StaticOptions
	ID        params.Value `json:"id" validate:"required"`
	ChampData params.Value `json:"champData,omitempty"`
}

// StaticItemsOptions are the options of GetStaticItems.
type StaticItemsOptions struct {
	StaticOptions
	ItemListData params.Value `json:"itemListData,omitempty"`
}

// StaticItemOptions are the options of GetStaticItemByID.
type StaticItemOptions struct {
	StaticOptions
	ID       params.Value `json:"id" validate:"required"`
	ItemData params.Value `json:"itemData,omitempty"`
}

// StaticMasteriesOptions are the options of GetStaticMasteries.
type StaticMasteriesOptions struct {
	StaticOptions
	MasteryListData params.Value `json:"masteryListData,omitempty"`
}

// StaticMasteryOptions are the options of GetStaticMasteryByID.
type StaticMasteryOptions struct {
	StaticOptions
	ID          params.Value `json:"id" validate:"required"`
	MasteryData params.Value `json:"masteryData,omitempty"`
}

// StaticRunesOptions are the options of GetStaticRunes.
type StaticRunesOptions struct {
	StaticOptions
	RuneListData params.Value `json:"runeListData,omitempty"`
}

// StaticRuneOptions are the options of GetStaticRuneByID.
type StaticRuneOptions struct {
	StaticOptions
	ID       params.Value `json:"id" validate:"required"`
	RuneData params.Value `json:"runeData,omitempty"`
}

// StaticSpellsOptions are the options of GetStaticSummonerSpells.
type StaticSpellsOptions struct {
	StaticOptions
	DataByID  bool         `json:"dataById,omitempty"`
	SpellData params.Value `json:"spellData,omitempty"`
}

// StaticSpellOptions are the options of GetStaticSummonerSpellByID.
type StaticSpellOptions struct {
	StaticOptions
	ID        params.Value `json:"id" validate:"required"`
	SpellData params.Value `json:"spellData,omitempty"`
}

func (c *Client) static(ctx context.Context, opts interface{}, overrides dispatcher.CallOptions, template string, id params.Value, query params.Query) (*dispatcher.Outcome, error) {
	return c.call(ctx, opts, overrides, func() dispatcher.RequestSpec {
		spec := dispatcher.RequestSpec{
			Group:         catalog.GroupStaticData,
			PathTemplate:  template,
			Query:         query,
			UseGlobalHost: true,
		}
		if !id.IsNull() {
			spec.PathParams = map[string]params.Value{"id": id}
		}
		return spec
	})
}

// GetStaticChampions lists champion static data.
func (c *Client) GetStaticChampions(ctx context.Context, opts StaticChampionsOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["dataById"] = params.Bool(opts.DataByID)
	q["champData"] = params.OrNull(opts.ChampData)
	return c.static(ctx, opts, opts.CallOptions, staticChampionsPath, params.Null(), q)
}

// GetStaticChampionByID returns static data for one champion.
func (c *Client) GetStaticChampionByID(ctx context.Context, opts StaticChampionOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["champData"] = params.OrNull(opts.ChampData)
	return c.static(ctx, opts, opts.CallOptions, staticChampionPath, opts.ID, q)
}

// GetStaticItems lists item static data.
func (c *Client) GetStaticItems(ctx context.Context, opts StaticItemsOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["itemListData"] = params.OrNull(opts.ItemListData)
	return c.static(ctx, opts, opts.CallOptions, staticItemsPath, params.Null(), q)
}

// GetStaticItemByID returns static data for one item.
func (c *Client) GetStaticItemByID(ctx context.Context, opts StaticItemOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["itemData"] = params.OrNull(opts.ItemData)
	return c.static(ctx, opts, opts.CallOptions, staticItemPath, opts.ID, q)
}

// GetStaticLanguageStrings returns localized language strings.
func (c *Client) GetStaticLanguageStrings(ctx context.Context, opts StaticOptions) (*dispatcher.Outcome, error) {
	return c.static(ctx, opts, opts.CallOptions, staticLanguageStringsPath, params.Null(), opts.query())
}

// GetStaticLanguages lists the supported locales.
func (c *Client) GetStaticLanguages(ctx context.Context, opts StaticOptions) (*dispatcher.Outcome, error) {
	return c.static(ctx, opts, opts.CallOptions, staticLanguagesPath, params.Null(), opts.query())
}

// GetStaticMap returns map static data.
func (c *Client) GetStaticMap(ctx context.Context, opts StaticOptions) (*dispatcher.Outcome, error) {
	return c.static(ctx, opts, opts.CallOptions, staticMapPath, params.Null(), opts.query())
}

// GetStaticMasteries lists mastery static data.
func (c *Client) GetStaticMasteries(ctx context.Context, opts StaticMasteriesOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["masteryListData"] = params.OrNull(opts.MasteryListData)
	return c.static(ctx, opts, opts.CallOptions, staticMasteriesPath, params.Null(), q)
}

// GetStaticMasteryByID returns static data for one mastery.
func (c *Client) GetStaticMasteryByID(ctx context.Context, opts StaticMasteryOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["masteryData"] = params.OrNull(opts.MasteryData)
	return c.static(ctx, opts, opts.CallOptions, staticMasteryPath, opts.ID, q)
}

// GetStaticRealm returns realm data.
func (c *Client) GetStaticRealm(ctx context.Context, opts RegionOptions) (*dispatcher.Outcome, error) {
	return c.static(ctx, opts, opts.CallOptions, staticRealmPath, params.Null(), nil)
}

// GetStaticRunes lists rune static data.
func (c *Client) GetStaticRunes(ctx context.Context, opts StaticRunesOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["runeListData"] = params.OrNull(opts.RuneListData)
	return c.static(ctx, opts, opts.CallOptions, staticRunesPath, params.Null(), q)
}

// GetStaticRuneByID returns static data for one rune.
func (c *Client) GetStaticRuneByID(ctx context.Context, opts StaticRuneOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["runeData"] = params.OrNull(opts.RuneData)
	return c.static(ctx, opts, opts.CallOptions, staticRunePath, opts.ID, q)
}

// GetStaticSummonerSpells lists summoner spell static data.
func (c *Client) GetStaticSummonerSpells(ctx context.Context, opts StaticSpellsOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["dataById"] = params.Bool(opts.DataByID)
	q["spellData"] = params.OrNull(opts.SpellData)
	return c.static(ctx, opts, opts.CallOptions, staticSpellsPath, params.Null(), q)
}

// GetStaticSummonerSpellByID returns static data for one summoner spell.
func (c *Client) GetStaticSummonerSpellByID(ctx context.Context, opts StaticSpellOptions) (*dispatcher.Outcome, error) {
	q := opts.query()
	q["spellData"] = params.OrNull(opts.SpellData)
	return c.static(ctx, opts, opts.CallOptions, staticSpellPath, opts.ID, q)
}

// GetStaticVersions lists the available data set versions.
func (c *Client) GetStaticVersions(ctx context.Context, opts RegionOptions) (*dispatcher.Outcome, error) {
	return c.static(ctx, opts, opts.CallOptions, staticVersionsPath, params.Null(), nil)
}
