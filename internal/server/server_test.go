package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/aitips"
	"github.com/osse101/BuzzHive_Go/internal/handler"
	"github.com/osse101/BuzzHive_Go/internal/sse"
)

// stubHives only answers Count; the routes under test never reach a hive
type stubHives struct {
	handler.HiveService
}

func (stubHives) Count() int { return 0 }

type okStore struct{}

func (okStore) Ping(context.Context) error { return nil }

const testAPIKey = "test-key"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	advisor := aitips.AdvisorFunc(func(ctx context.Context, req aitips.Request) (aitips.Response, error) {
		return aitips.Response{OptimizationTips: []string{"Add bees"}, Reasoning: "ok"}, nil
	})
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	return NewRouter(Config{
		APIKey:        testAPIKey,
		TipsRateLimit: 0.001,
		TipsRateBurst: 1,
	}, Deps{
		Hives:   stubHives{},
		Advisor: advisor,
		Store:   okStore{},
		Hub:     hub,
	})
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	router := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		withKey    bool
		wantStatus int
	}{
		{"healthz is public", "GET", "/healthz", false, http.StatusOK},
		{"readyz is public", "GET", "/readyz", false, http.StatusOK},
		{"version is public", "GET", "/version", false, http.StatusOK},
		{"metrics are public", "GET", "/metrics", false, http.StatusOK},
		{"api needs a key", "POST", "/api/v1/hives", false, http.StatusUnauthorized},
		{"unknown route", "GET", "/api/v1/nope", true, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.withKey {
				req.Header.Set(HeaderAPIKey, testAPIKey)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestRouter_TipsAreRateLimited(t *testing.T) {
	router := newTestServer(t)
	body := `{"hiveLevel":1,"workerBeeCount":5,"flowerTypes":["Clover"],"currentHoneyProductionRate":50,"availableResources":{"pollen":1,"propolis":1}}`

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/v1/tips", strings.NewReader(body))
		req.Header.Set(HeaderAPIKey, testAPIKey)
		req.RemoteAddr = "198.51.100.20:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Contains(t, first.Body.String(), "Add bees")

	assert.Equal(t, http.StatusTooManyRequests, send().Code)
}

func TestRouter_SecurityHeadersOnRejections(t *testing.T) {
	router := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/v1/hives/h1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	want := map[string]string{
		HeaderContentType:    HeaderValueNoSniff,
		HeaderFrameOptions:   HeaderValueSameOrigin,
		HeaderXSSProtection:  HeaderValueXSSBlock,
		HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	}
	for header, value := range want {
		assert.Equal(t, value, rec.Header().Get(header), header)
	}
}
