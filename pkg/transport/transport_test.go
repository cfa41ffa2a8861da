package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDoer struct {
	resp *http.Response
	err  error
	reqs []*http.Request
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func stringResponse(status int, statusLine, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     statusLine,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestHTTPTransport_OK(t *testing.T) {
	doer := &fakeDoer{resp: stringResponse(200, "200 OK", `{"champions":[]}`)}
	tr := NewHTTPTransport(NewHTTPTransportParams{Doer: doer})

	resp, err := tr.Get(context.Background(), "https://na.example.test/api/lol/na/v1.2/champion")
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "OK", resp.Status)
	assert.JSONEq(t, `{"champions":[]}`, string(resp.Body))

	require.Len(t, doer.reqs, 1)
	assert.Equal(t, http.MethodGet, doer.reqs[0].Method)
	assert.Equal(t, "application/json", doer.reqs[0].Header.Get("Accept"))
	assert.Equal(t, "gamestats", doer.reqs[0].Header.Get("User-Agent"))
}

func TestHTTPTransport_NonOKIsResponse(t *testing.T) {
	doer := &fakeDoer{resp: stringResponse(404, "404 Not Found", "not json at all")}
	tr := NewHTTPTransport(NewHTTPTransportParams{Doer: doer})

	resp, err := tr.Get(context.Background(), "https://na.example.test/x")
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.Status)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestHTTPTransport_UnreadableBody(t *testing.T) {
	broken := func(status int, line string) *http.Response {
		return &http.Response{
			StatusCode: status,
			Status:     line,
			Body:       io.NopCloser(failingReader{}),
			Header:     make(http.Header),
		}
	}

	t.Run("non-200 still yields a response", func(t *testing.T) {
		tr := NewHTTPTransport(NewHTTPTransportParams{Doer: &fakeDoer{resp: broken(404, "404 Not Found")}})
		resp, err := tr.Get(context.Background(), "https://na.example.test/x")
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, "Not Found", resp.Status)
		assert.Empty(t, resp.Body)
	})

	t.Run("200 is a transport error", func(t *testing.T) {
		tr := NewHTTPTransport(NewHTTPTransportParams{Doer: &fakeDoer{resp: broken(200, "200 OK")}})
		_, err := tr.Get(context.Background(), "https://na.example.test/x")
		require.Error(t, err)
		te, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, 200, te.StatusCode)
	})
}

func TestHTTPTransport_StatusTextFallback(t *testing.T) {
	doer := &fakeDoer{resp: stringResponse(429, "", "{}")}
	tr := NewHTTPTransport(NewHTTPTransportParams{Doer: doer})

	resp, err := tr.Get(context.Background(), "https://na.example.test/x")
	require.NoError(t, err)
	assert.Equal(t, "Too Many Requests", resp.Status)
}

func TestHTTPTransport_DoErrorHasNoStatus(t *testing.T) {
	doer := &fakeDoer{err: errors.New("dial tcp: no such host")}
	tr := NewHTTPTransport(NewHTTPTransportParams{Doer: doer})

	_, err := tr.Get(context.Background(), "https://nowhere.example.test/x")
	require.Error(t, err)

	te, ok := AsError(err)
	require.True(t, ok)
	assert.False(t, te.HasStatus())
	assert.Contains(t, te.Error(), "no such host")
}

func TestHTTPTransport_InvalidJSONOn200(t *testing.T) {
	doer := &fakeDoer{resp: stringResponse(200, "200 OK", "<html>")}
	tr := NewHTTPTransport(NewHTTPTransportParams{Doer: doer})

	_, err := tr.Get(context.Background(), "https://na.example.test/x")
	te, ok := AsError(err)
	require.True(t, ok)
	assert.True(t, te.HasStatus())
	assert.Equal(t, 200, te.StatusCode)
}

func TestHTTPTransport_AgainstTLSServer(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(NewHTTPTransportParams{Doer: srv.Client()})

	resp, err := tr.Get(context.Background(), srv.URL+"/summoner/42?api_key=k")
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"id":42}`, string(resp.Body))

	resp, err = tr.Get(context.Background(), srv.URL+"/summoner/42?api_key=wrong")
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Unauthorized", resp.Status)
}
