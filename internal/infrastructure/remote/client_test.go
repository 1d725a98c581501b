package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lruconsole/internal/application/port"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{BaseURL: srv.URL + "/", UserAgent: "lruconsole/test", Timeout: 5 * time.Second})
	require.NoError(t, err)
	c.sleep = func(context.Context, time.Duration) error { return nil }
	c.randInt63 = nil
	return c
}

func TestNewClient_ValidatesBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "http", baseURL: "http://localhost:8080"},
		{name: "https with path", baseURL: "https://cache.internal/api/"},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "no scheme", baseURL: "localhost:8080", wantErr: true},
		{name: "ftp", baseURL: "ftp://host", wantErr: true},
		{name: "no host", baseURL: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(Options{BaseURL: tt.baseURL})
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBaseURL)
				return
			}
			require.NoError(t, err)
			assert.False(t, strings.HasSuffix(c.BaseURL(), "/"))
		})
	}
}

func TestClient_GetAll(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cache/getall", r.URL.Path)
		assert.Equal(t, "lruconsole/test", r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, `[
			{"key":"b","value":"2","expiration":"2026-05-01T10:00:00Z"},
			{"key":"a","value":"1","expiration":"2026-05-01T10:00:00.5+02:00"},
			{"key":"c","value":"3","expiration":"2026-05-01T10:00:00"}
		]`)
	}))

	got, err := c.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "b", got[0].Key, "service order preserved")
	assert.Equal(t, "a", got[1].Key)
	assert.True(t, got[0].Expiration.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, got[1].Expiration.Equal(time.Date(2026, 5, 1, 8, 0, 0, 500_000_000, time.UTC)))
	assert.True(t, got[2].Expiration.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)))
}

func TestClient_GetAll_NullIsEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "null")
	}))

	got, err := c.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_GetAll_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))

	got, err := c.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_GetAll_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))

	_, err := c.GetAll(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "overloaded", statusErr.Body)
	assert.Equal(t, int32(defaultMaxAttempts), calls.Load())
}

func TestClient_Get(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/cache/get/hello%2Fworld":
			_, _ = io.WriteString(w, `{"found":true,"value":"42"}`)
		case "/cache/get/missing":
			_, _ = io.WriteString(w, `{"found":false}`)
		default:
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	hit, err := c.Get(context.Background(), "hello/world")
	require.NoError(t, err)
	assert.Equal(t, port.LookupResponse{Found: true, Value: "42"}, hit)

	miss, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, miss.Found)
}

func TestClient_Set(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cache/set", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"key": "x", "value": "y", "expiration": float64(60)}, body)
		w.WriteHeader(http.StatusCreated)
	}))

	require.NoError(t, c.Set(context.Background(), port.SetRequest{Key: "x", Value: "y", Expiration: 60}))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Set_IsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	err := c.Set(context.Background(), port.SetRequest{Key: "x", Value: "y"})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.MethodPost, statusErr.Method)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Delete(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/cache/delete/gone" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	require.NoError(t, c.Delete(context.Background(), "gone"))

	err := c.Delete(context.Background(), "other")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "DELETE /cache/delete/other")
}

func TestClient_CanceledContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetAll(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRetryDelayForAttempt(t *testing.T) {
	assert.Equal(t, retryBaseDelay, retryDelayForAttempt(1, nil))
	assert.Equal(t, 2*retryBaseDelay, retryDelayForAttempt(2, nil))
	assert.Equal(t, retryMaxDelay, retryDelayForAttempt(10, nil))
	assert.Equal(t, retryMaxDelay, retryDelayForAttempt(10, func(int64) int64 { return int64(retryJitterMax) }))
}

func TestParseExpiration(t *testing.T) {
	zero, err := parseExpiration("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = parseExpiration("tomorrow")
	require.Error(t, err)
}
