package aitips

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

var prompt = template.Must(template.New("prompt").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(promptTemplate))

// RenderPrompt fills the advisor prompt for req
func RenderPrompt(req Request) (string, error) {
	var buf bytes.Buffer
	if err := prompt.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GeminiConfig configures the Gemini client
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiClient asks a Gemini model for tips over the generateContent REST API
type GeminiClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewGeminiClient creates a client. A nil httpClient uses one with DefaultTimeout.
func NewGeminiClient(cfg GeminiConfig, httpClient *http.Client) *GeminiClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &GeminiClient{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Optimize sends req to the model and parses its JSON answer
func (c *GeminiClient) Optimize(ctx context.Context, req Request) (Response, error) {
	text, err := RenderPrompt(req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to render prompt: %w", err)
	}

	body, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: text}}}},
		GenerationConfig: geminiGenerationConfig{ResponseMimeType: responseMimeJSON},
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to encode request: %w", err)
	}

	url := c.baseURL + fmt.Sprintf(generateContentPath, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", domain.ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", domain.ErrAdvisorUnavailable, err)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Response{}, fmt.Errorf("%w: status %d", domain.ErrAdvisorUnavailable, resp.StatusCode)
		}
		return Response{}, fmt.Errorf("%w: %v", domain.ErrAdvisorResponse, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if decoded.Error != nil {
			msg = decoded.Error.Message
		}
		return Response{}, fmt.Errorf("%w: status %d: %s", domain.ErrAdvisorUnavailable, resp.StatusCode, msg)
	}

	return parseAnswer(decoded)
}

func parseAnswer(decoded geminiResponse) (Response, error) {
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return Response{}, fmt.Errorf("%w: no candidates", domain.ErrAdvisorResponse)
	}

	var answer strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		answer.WriteString(p.Text)
	}

	var out Response
	if err := json.Unmarshal([]byte(stripCodeFence(answer.String())), &out); err != nil {
		return Response{}, fmt.Errorf("%w: %v", domain.ErrAdvisorResponse, err)
	}
	if len(out.OptimizationTips) == 0 {
		return Response{}, fmt.Errorf("%w: no tips", domain.ErrAdvisorResponse)
	}
	return out, nil
}

// stripCodeFence removes a markdown ```json fence some models wrap answers in
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
