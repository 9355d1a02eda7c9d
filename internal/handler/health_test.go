package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPinger mocks a storage backend
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fixedCount int

func (c fixedCount) Count() int { return int(c) }

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"store reachable", nil, http.StatusOK, `{"status":"ok","sessions":3}`},
		{"store down", errors.New("connection refused"), http.StatusServiceUnavailable, `"status":"unavailable"`},
		{"store timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, `"message":"snapshot store unreachable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockPinger{}
			store.On("Ping", mock.Anything).Return(tt.pingErr)

			req := httptest.NewRequest("GET", "/readyz", nil)
			w := httptest.NewRecorder()

			HandleReadyz(store, fixedCount(3)).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			store.AssertExpectations(t)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	t.Setenv("VERSION", "1.4.0")

	w := httptest.NewRecorder()
	HandleVersion("BZH1").ServeHTTP(w, httptest.NewRequest("GET", "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"1.4.0"`)
	assert.Contains(t, w.Body.String(), `"go_version":"go`)
	assert.Contains(t, w.Body.String(), `"snapshot_format":"BZH1"`)
}
