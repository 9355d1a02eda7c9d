package aitips

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

func answer(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []interface{}{map[string]interface{}{"text": text}},
				},
			},
		},
	})
	return string(body)
}

func TestGeminiClient_Optimize(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  error
		wantTips []string
	}{
		{
			name:     "plain json answer",
			status:   http.StatusOK,
			body:     answer(`{"optimizationTips":["Add bees"],"reasoning":"More bees, more honey."}`),
			wantTips: []string{"Add bees"},
		},
		{
			name:     "fenced answer",
			status:   http.StatusOK,
			body:     answer("```json\n{\"optimizationTips\":[\"Upgrade\"],\"reasoning\":\"r\"}\n```"),
			wantTips: []string{"Upgrade"},
		},
		{
			name:    "model error",
			status:  http.StatusTooManyRequests,
			body:    `{"error":{"code":429,"message":"quota exceeded"}}`,
			wantErr: domain.ErrAdvisorUnavailable,
		},
		{
			name:    "gateway html",
			status:  http.StatusBadGateway,
			body:    "<html>bad gateway</html>",
			wantErr: domain.ErrAdvisorUnavailable,
		},
		{
			name:    "answer is not json",
			status:  http.StatusOK,
			body:    answer("Add more bees!"),
			wantErr: domain.ErrAdvisorResponse,
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: domain.ErrAdvisorResponse,
		},
		{
			name:    "empty tips",
			status:  http.StatusOK,
			body:    answer(`{"optimizationTips":[],"reasoning":"nothing"}`),
			wantErr: domain.ErrAdvisorResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// ARRANGE
			var gotPath, gotKey string
			var gotBody geminiRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.Header.Get(headerAPIKey)
				raw, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(raw, &gotBody)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()
			client := NewGeminiClient(GeminiConfig{APIKey: "secret", Model: "test-model", BaseURL: srv.URL + "/"}, srv.Client())

			// ACT
			resp, err := client.Optimize(context.Background(), validRequest())

			// ASSERT
			assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
			assert.Equal(t, "secret", gotKey)
			require.Len(t, gotBody.Contents, 1)
			assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "Worker Bee Count: 40")
			assert.Equal(t, responseMimeJSON, gotBody.GenerationConfig.ResponseMimeType)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTips, resp.OptimizationTips)
		})
	}
}

func TestGeminiClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: url}, nil)

	_, err := client.Optimize(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrAdvisorUnavailable)
}

func TestGeminiClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	client := NewGeminiClient(GeminiConfig{APIKey: "k", BaseURL: srv.URL}, srv.Client())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Optimize(ctx, validRequest())

	assert.ErrorIs(t, err, domain.ErrAdvisorUnavailable)
}
