// Package transport performs the outbound HTTP GET for a resolved URL and reports
// either a status code with a body or a transport-level failure.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const logPrefix = "transport:transport"

// Transport issues a single GET and returns the response or a transport failure.
type Transport interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// HTTPDoer is the subset of *http.Client the transport relies on.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a completed HTTP exchange. Body is only guaranteed to be valid JSON when StatusCode is 200.
type Response struct {
	StatusCode int
	Status     string
	Body       json.RawMessage
}

// Error is a transport-level failure. StatusCode and StatusText are set only when a response was obtained.
type Error struct {
	StatusCode int
	StatusText string
	Err        error
}

func (e *Error) Error() string {
	if e.HasStatus() {
		return fmt.Sprintf("%s - %d %s: %v", logPrefix, e.StatusCode, e.StatusText, e.Err)
	}
	return fmt.Sprintf("%s - request failed: %v", logPrefix, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HasStatus reports whether the failure carries a status code and status text pair.
func (e *Error) HasStatus() bool {
	return e.StatusCode != 0 && e.StatusText != ""
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 32 << 20

// HTTPTransport implements Transport over an HTTPDoer.
type HTTPTransport struct {
	doer      HTTPDoer
	userAgent string
}

// NewHTTPTransportParams holds parameters for NewHTTPTransport.
type NewHTTPTransportParams struct {
	// Doer defaults to an *http.Client with Timeout.
	Doer HTTPDoer
	// Timeout applies only to the default client. Zero means no timeout.
	Timeout   time.Duration
	UserAgent string
}

// NewHTTPTransport creates an HTTPTransport.
func NewHTTPTransport(params NewHTTPTransportParams) *HTTPTransport {
	doer := params.Doer
	if doer == nil {
		doer = &http.Client{Timeout: params.Timeout}
	}
	ua := params.UserAgent
	if ua == "" {
		ua = "gamestats"
	}
	return &HTTPTransport{doer: doer, userAgent: ua}
}

// Get performs the request. Any status code yields a Response; only a missing
// response or an unreadable or non-JSON 200 body yields an *Error.
func (t *HTTPTransport) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.doer.Do(req)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	text := StatusText(resp)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if resp.StatusCode != http.StatusOK {
			slog.Debug(fmt.Sprintf("%s - status %d body unreadable: %v", logPrefix, resp.StatusCode, err))
			return &Response{StatusCode: resp.StatusCode, Status: text}, nil
		}
		return nil, &Error{StatusCode: resp.StatusCode, StatusText: text, Err: err}
	}

	if resp.StatusCode == http.StatusOK && !json.Valid(body) {
		slog.Debug(fmt.Sprintf("%s - status 200 with non-JSON body (%d bytes)", logPrefix, len(body)))
		return nil, &Error{
			StatusCode: resp.StatusCode,
			StatusText: "invalid JSON body",
			Err:        errors.New("response body is not valid JSON"),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Status: text, Body: body}, nil
}

// StatusText returns the reason phrase of resp, e.g. "Not Found" for "404 Not Found".
func StatusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

var _ Transport = (*HTTPTransport)(nil)
