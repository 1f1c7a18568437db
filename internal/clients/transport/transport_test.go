package transport

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/mealplan-gateway/internal/clients/breaker"
	"github.com/yungbote/mealplan-gateway/internal/platform/ctxutil"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveCollaborator(_, _, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func newTestClient(t *testing.T, h http.HandlerFunc, obs CallObserver) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(logger.Nop(), Config{
		Name:     "test",
		BaseURL:  srv.URL + "/",
		Timeout:  time.Second,
		Breaker:  breaker.Config{MaxFailures: 2, OpenTimeout: time.Minute},
		Observer: obs,
	})
	require.NoError(t, err)
	return c
}

func TestDoJSONRoundTrip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("n"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"salt"}`, string(raw))
		_ = json.NewEncoder(w).Encode(map[string]int{"id": 9})
	}, nil)

	ctx := ctxutil.WithTraceData(context.Background(), &ctxutil.TraceData{RequestID: "req-1"})
	out, err := DoJSON[map[string]int](c, ctx, "create", http.MethodPost, "/items", url.Values{"n": {"3"}}, map[string]string{"name": "salt"})
	require.NoError(t, err)
	assert.Equal(t, 9, out["id"])
}

func TestDoJSONEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, nil)
	out, err := DoJSON[[]int](c, context.Background(), "delete", http.MethodDelete, "/items/1", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDoJSONHTTPError(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	}, obs)
	_, err := DoJSON[map[string]any](c, context.Background(), "get", http.MethodGet, "/users/x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Contains(t, err.Error(), "no such user")
	assert.Equal(t, []string{"client_error"}, obs.outcomes)
}

func TestServerErrorsOpenTheBreaker(t *testing.T) {
	obs := &recordingObserver{}
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, obs)

	for i := 0; i < 3; i++ {
		_, _ = DoJSON[map[string]any](c, context.Background(), "get", http.MethodGet, "/x", nil, nil)
	}
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, "open", c.Breaker().State())
	assert.Equal(t, []string{"error", "error", "breaker_open"}, obs.outcomes)
}

func TestClientErrorsKeepTheBreakerClosed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, nil)
	for i := 0; i < 5; i++ {
		_, err := DoJSON[map[string]any](c, context.Background(), "get", http.MethodGet, "/x", nil, nil)
		assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	}
	assert.Equal(t, "closed", c.Breaker().State())
}

func TestDoJSONDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}, nil)
	_, err := DoJSON[map[string]any](c, context.Background(), "get", http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode error")
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New(logger.Nop(), Config{Name: "test", BaseURL: "localhost:3001"})
	assert.Error(t, err)
	_, err = New(nil, Config{Name: "test", BaseURL: "http://localhost"})
	assert.Error(t, err)
}

func TestUnencodableBodyNeverReachesTheCollaborator(t *testing.T) {
	obs := &recordingObserver{}
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, obs)

	for i := 0; i < 3; i++ {
		_, err := DoJSON[map[string]any](c, context.Background(), "put", http.MethodPut, "/x", nil, map[string]float64{"quantity": math.Inf(1)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEncode)
		assert.Zero(t, StatusOf(err))
	}
	assert.Zero(t, hits.Load())
	assert.Empty(t, obs.outcomes)
	assert.Equal(t, "closed", c.Breaker().State())
}

func TestCancelledFanOutKeepsTheBreakerClosed(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			http.Error(w, "unknown", http.StatusNotFound)
			return
		}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}, nil)
	t.Cleanup(func() { close(release) })

	g, gctx := errgroup.WithContext(context.Background())
	for i := 0; i < 6; i++ {
		g.Go(func() error {
			_, err := DoJSON[map[string]any](c, gctx, "get", http.MethodGet, "/slow", nil, nil)
			return err
		})
	}
	g.Go(func() error {
		_, err := DoJSON[map[string]any](c, gctx, "get", http.MethodGet, "/fail", nil, nil)
		return err
	})
	err := g.Wait()
	require.Error(t, err)
	assert.Equal(t, "closed", c.Breaker().State())
}
