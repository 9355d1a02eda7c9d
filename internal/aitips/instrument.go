package aitips

import (
	"context"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/logger"
	"github.com/osse101/BuzzHive_Go/internal/metrics"
)

// Instrumented records latency and outcome of every call to next
func Instrumented(name string, next Advisor) Advisor {
	return AdvisorFunc(func(ctx context.Context, req Request) (Response, error) {
		start := time.Now()
		resp, err := next.Optimize(ctx, req)
		elapsed := time.Since(start)

		metrics.AdvisorDuration.WithLabelValues(name).Observe(elapsed.Seconds())
		metrics.AdvisorRequests.WithLabelValues(name, metrics.ResultLabel(err)).Inc()

		log := logger.FromContext(ctx)
		if err != nil {
			log.Warn(LogMsgAdvisorFailed, "advisor", name, "error", err, "duration", elapsed)
		} else {
			log.Debug(LogMsgAdvisorServed, "advisor", name, "tips", len(resp.OptimizationTips), "duration", elapsed)
		}
		return resp, err
	})
}

// New picks the Gemini client when an API key is set, and the local advisor
// otherwise. The result validates requests and records metrics.
func New(cfg GeminiConfig, timeout time.Duration, local *LocalAdvisor) Advisor {
	if cfg.APIKey == "" {
		return Validated(Instrumented(AdvisorLocal, local))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := NewGeminiClient(cfg, nil)
	client.httpClient.Timeout = timeout
	return Validated(Instrumented(AdvisorGemini, client))
}
