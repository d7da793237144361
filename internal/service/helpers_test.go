package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"restaurant-site/internal/apiclient"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recorded is a request seen by the fake backend.
type recorded struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// fakeBackend is an httptest server with one handler per "METHOD /path".
type fakeBackend struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]http.HandlerFunc
	server   *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	b := &fakeBackend{routes: make(map[string]http.HandlerFunc)}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body})
		h, ok := b.routes[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(b.server.Close)

	return b
}

func (b *fakeBackend) handle(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = h
}

func (b *fakeBackend) json(method, path string, status int, body any) {
	b.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (b *fakeBackend) calls() []recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]recorded, len(b.requests))
	copy(out, b.requests)
	return out
}

// client returns an API client pointed at the fake backend.
func (b *fakeBackend) client(t *testing.T, timeout time.Duration) *apiclient.Client {
	t.Helper()

	c, err := apiclient.New(apiclient.Options{
		BaseURL: b.server.URL + "/api",
		Timeout: timeout,
	}, zerolog.Nop())
	require.NoError(t, err)

	return c
}

// MockSession is a mock implementation of SessionState.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) SetAuthenticated(ctx context.Context, authenticated bool) error {
	args := m.Called(ctx, authenticated)
	return args.Error(0)
}

func (m *MockSession) SetToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSession) ClearSession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSession) IsLoggedIn(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
