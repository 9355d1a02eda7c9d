package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

func TestAPIClient_SendsKeyAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get(headerAPIKey))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/hives/abc/sell", r.URL.Path)

		var body tradeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, tradeRequest{Resource: "pollen", Amount: 3}, body)

		_ = json.NewEncoder(w).Encode(ActionResponse{
			Accepted: true,
			State:    domain.HiveState{Currency: 42},
		})
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL+"/", "secret")
	resp, err := c.Sell(context.Background(), "abc", "pollen", 3)

	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, 42.0, resp.State.Currency)
}

func TestAPIClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Hive not found"}`))
	}))
	defer srv.Close()

	_, err := NewAPIClient(srv.URL, "").GetHive(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Hive not found")
	assert.Equal(t, int32(1), calls.Load())
}

func TestAPIClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Hive{ID: "abc"})
	}))
	defer srv.Close()

	h, err := NewAPIClient(srv.URL, "").GetHive(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "abc", h.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAPIClient_ContextCancelStopsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAPIClient(srv.URL, "").Bonus(ctx, "abc")
	assert.Error(t, err)
}

func TestHivePath(t *testing.T) {
	assert.Equal(t, "/api/v1/hives/abc", hivePath("abc"))
	assert.Equal(t, "/api/v1/hives/abc/workers", hivePath("abc", "workers"))
	assert.Equal(t, "/api/v1/hives/a%2Fb", hivePath("a/b"))
}
