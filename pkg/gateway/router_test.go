package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morezero/gamestats/pkg/catalog"
	"github.com/morezero/gamestats/pkg/client"
	"github.com/morezero/gamestats/pkg/events"
	"github.com/morezero/gamestats/pkg/transport"
	"github.com/morezero/gamestats/pkg/transport/transporttest"
)

type harness struct {
	router  *Router
	ft      *transporttest.FakeTransport
	metrics *Metrics
	events  []*events.CallCompletedEvent
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{ft: transporttest.NewFakeTransport(t)}
	c, err := client.New(client.Options{Credential: "gw-key", Transport: h.ft})
	require.NoError(t, err)

	h.metrics = NewMetrics(prometheus.NewRegistry())
	h.router = NewRouter(NewRouterParams{
		Client: c,
		Publisher: events.NewCallbackPublisher(func(_ context.Context, e *events.CallCompletedEvent) error {
			h.events = append(h.events, e)
			return nil
		}),
		Metrics: h.metrics,
	})
	return h
}

func TestRoute_UnknownMethod(t *testing.T) {
	h := newHarness(t)

	resp := h.router.Route(context.Background(), &CallRequest{ID: "1", Method: "getReplay"})
	assert.False(t, resp.Ok)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)
	assert.False(t, resp.Error.Retryable)
	assert.Empty(t, h.events)
}

func TestRoute_Catalog(t *testing.T) {
	h := newHarness(t)

	resp := h.router.Route(context.Background(), &CallRequest{ID: "c", Method: MethodCatalog})
	require.True(t, resp.Ok)
	view, ok := resp.Result.(catalog.View)
	require.True(t, ok)
	assert.Len(t, view.Groups, 12)
}

func TestRoute_Success(t *testing.T) {
	h := newHarness(t)
	h.ft.RespondJSON(200, `{"42":{"id":42}}`)

	resp := h.router.Route(context.Background(), &CallRequest{
		ID:     "req-1",
		Method: "getSummonersByIds",
		Params: json.RawMessage(`{"ids":[42]}`),
		Ctx:    &InvocationContext{Region: "euw", RequestID: "trace-1"},
	})
	require.True(t, resp.Ok, "%+v", resp.Error)
	assert.Equal(t, "req-1", resp.ID)
	assert.JSONEq(t, `{"42":{"id":42}}`, string(resp.Result.(json.RawMessage)))
	assert.Equal(t, "https://euw.api.pvp.net/api/lol/euw/v1.4/summoner/42?api_key=gw-key", h.ft.URLs()[0])

	require.Len(t, h.events, 1)
	ev := h.events[0]
	assert.Equal(t, "getSummonersByIds", ev.Method)
	assert.Equal(t, catalog.GroupSummoner, ev.Group)
	assert.Equal(t, "euw", ev.Region)
	assert.Equal(t, "trace-1", ev.RequestID)
	assert.True(t, ev.Ok)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.calls.WithLabelValues("getSummonersByIds", catalog.GroupSummoner, resultOK)))
}

func TestRoute_ParamsOverrideContext(t *testing.T) {
	h := newHarness(t)
	h.ft.RespondJSON(200, `{}`)

	resp := h.router.Route(context.Background(), &CallRequest{
		ID:     "2",
		Method: "getChampionById",
		Params: json.RawMessage(`{"id":"266","region":"kr","credential":"param-key"}`),
		Ctx:    &InvocationContext{Region: "euw", Credential: "ctx-key"},
	})
	require.True(t, resp.Ok)
	assert.Equal(t, "https://kr.api.pvp.net/api/lol/kr/v1.2/champion/266?api_key=param-key", h.ft.URLs()[0])
}

func TestRoute_ContextCredential(t *testing.T) {
	h := newHarness(t)
	h.ft.RespondJSON(200, `{}`)

	resp := h.router.Route(context.Background(), &CallRequest{
		ID:     "3",
		Method: "getChampions",
		Ctx:    &InvocationContext{Credential: "ctx-key"},
	})
	require.True(t, resp.Ok)
	assert.Equal(t, "https://na.api.pvp.net/api/lol/na/v1.2/champion?api_key=ctx-key&freeToPlay=false", h.ft.URLs()[0])
}

func TestRoute_InvalidParams(t *testing.T) {
	h := newHarness(t)

	for name, raw := range map[string]string{
		"malformed":     `{"ids":`,
		"unknown field": `{"ids":[1],"bogus":true}`,
		"object id":     `{"ids":{"a":1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := h.router.Route(context.Background(), &CallRequest{ID: "x", Method: "getSummonersByIds", Params: json.RawMessage(raw)})
			assert.False(t, resp.Ok)
			assert.Equal(t, CodeInvalidArgument, resp.Error.Code)
		})
	}
	assert.Equal(t, 0, h.ft.Calls())
}

func TestRoute_ValidationError(t *testing.T) {
	h := newHarness(t)

	resp := h.router.Route(context.Background(), &CallRequest{ID: "v", Method: "getMatchById", Params: json.RawMessage(`{}`)})
	assert.False(t, resp.Ok)
	assert.Equal(t, CodeInvalidArgument, resp.Error.Code)
	assert.Equal(t, map[string]string{"id": "required"}, resp.Error.Details)
	assert.Equal(t, 0, h.ft.Calls())
}

func TestRoute_InvalidRegionOutcome(t *testing.T) {
	h := newHarness(t)

	resp := h.router.Route(context.Background(), &CallRequest{
		ID:     "r",
		Method: "getChampions",
		Ctx:    &InvocationContext{Region: "pbe"},
	})
	assert.False(t, resp.Ok)
	assert.Equal(t, "INVALID_REGION", resp.Error.Code)
	assert.Nil(t, resp.Error.Status)
	assert.Equal(t, 0, h.ft.Calls())
	require.Len(t, h.events, 1)
	assert.Equal(t, "INVALID_REGION", h.events[0].Kind)
}

func TestRoute_UpstreamError(t *testing.T) {
	h := newHarness(t)
	h.ft.RespondJSON(429, `{}`)

	resp := h.router.Route(context.Background(), &CallRequest{ID: "u", Method: "getFeaturedGames"})
	assert.False(t, resp.Ok)
	assert.Equal(t, "UPSTREAM", resp.Error.Code)
	require.NotNil(t, resp.Error.Status)
	assert.Equal(t, 429, *resp.Error.Status)
	assert.Equal(t, "Too Many Requests", resp.Error.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.calls.WithLabelValues("getFeaturedGames", catalog.GroupFeaturedGames, "UPSTREAM")))
}

func TestRoute_TransportError(t *testing.T) {
	h := newHarness(t)
	h.ft.Fail(&transport.Error{Err: errors.New("no route to host")})

	resp := h.router.Route(context.Background(), &CallRequest{ID: "t", Method: "getStatus"})
	assert.False(t, resp.Ok)
	assert.Equal(t, "TRANSPORT", resp.Error.Code)
	assert.Equal(t, "could not resolve the request", resp.Error.Message)
}

func TestRoute_StatusByRegionUsesContextRegion(t *testing.T) {
	h := newHarness(t)
	h.ft.RespondJSON(200, `{}`)

	resp := h.router.Route(context.Background(), &CallRequest{ID: "s", Method: "getStatusByRegion", Ctx: &InvocationContext{Region: "pbe"}})
	require.True(t, resp.Ok)
	assert.Equal(t, "http://status.pbe.leagueoflegends.com/shards/pbe", h.ft.URLs()[0])
}

func TestRoute_PublisherErrorDoesNotFailCall(t *testing.T) {
	ft := transporttest.NewFakeTransport(t).RespondJSON(200, `[]`)
	c, err := client.New(client.Options{Credential: "k", Transport: ft})
	require.NoError(t, err)
	r := NewRouter(NewRouterParams{
		Client:    c,
		Publisher: events.NewCallbackPublisher(func(context.Context, *events.CallCompletedEvent) error { return errors.New("down") }),
	})

	resp := r.Route(context.Background(), &CallRequest{ID: "p", Method: "getVersions"})
	assert.True(t, resp.Ok)
}

func TestHandleMessage(t *testing.T) {
	h := newHarness(t)
	h.ft.RespondJSON(200, `{"ok":true}`)

	out := h.router.HandleMessage(context.Background(), []byte(`{"id":"m1","method":"getRealms"}`))
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, "m1", resp["id"])
	assert.Equal(t, true, resp["ok"])

	out = h.router.HandleMessage(context.Background(), []byte(`not json`))
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, false, resp["ok"])
	assert.Equal(t, CodeInvalidArgument, resp["error"].(map[string]interface{})["code"])
}

func TestMethods(t *testing.T) {
	methods := Methods()
	assert.Len(t, methods, 40)
	assert.Contains(t, methods, "getSummonerNamesByIds")
	assert.Contains(t, methods, MethodCatalog)
}
