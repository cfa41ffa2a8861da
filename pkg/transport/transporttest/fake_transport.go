// Package transporttest provides a scripted Transport for tests.
package transporttest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/morezero/gamestats/pkg/transport"
)

// FakeTransport returns queued results in order and records every requested URL.
type FakeTransport struct {
	t       testing.TB
	mu      sync.Mutex
	results []result
	urls    []string
}

type result struct {
	resp *transport.Response
	err  error
}

// NewFakeTransport returns an empty FakeTransport.
func NewFakeTransport(t testing.TB) *FakeTransport {
	return &FakeTransport{t: t}
}

// RespondJSON queues a response with the given status and raw JSON body.
func (f *FakeTransport) RespondJSON(status int, body string) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result{resp: &transport.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       json.RawMessage(body),
	}})
	return f
}

// Fail queues a transport failure.
func (f *FakeTransport) Fail(err error) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, result{err: err})
	return f
}

// Get records url and returns the next queued result.
func (f *FakeTransport) Get(_ context.Context, url string) (*transport.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	if len(f.results) == 0 {
		f.t.Fatalf("fake transport has no results left for GET %s", url)
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.resp, r.err
}

// URLs returns the URLs requested so far.
func (f *FakeTransport) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// Calls returns how many times Get was invoked.
func (f *FakeTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

var _ transport.Transport = (*FakeTransport)(nil)
