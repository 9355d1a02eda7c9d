package bootstrap

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/config"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/notify"
)

// EventSystem is the in-process bus plus the optional retrying Discord mirror
type EventSystem struct {
	Bus     *event.MemoryBus
	Discord *event.ResilientPublisher // nil when the webhook is not configured
}

// InitializeEventSystem creates the event bus. With a Discord webhook
// configured, notifications are also mirrored through a resilient publisher
// whose dead letters land next to the session logs.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	es := &EventSystem{Bus: event.NewMemoryBus()}

	if !cfg.DiscordWebhookEnabled() {
		slog.Info(LogMsgEventSystemInitialized, "discord_mirror", false)
		return es, nil
	}

	webhook, err := notify.NewDiscordWebhook(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgDiscordWebhook, err)
	}

	deadLetters := DeadLetterPath(cfg)
	retryDelay := event.RetryInitialDelaySeconds * time.Second
	es.Discord, err = event.NewResilientPublisher(webhook, event.RetryMaxAttempts, retryDelay, deadLetters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"discord_mirror", true,
		"max_retries", event.RetryMaxAttempts,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetters)
	return es, nil
}

// DeadLetterPath is where mirrored notifications that never landed are kept
func DeadLetterPath(cfg *config.Config) string {
	return filepath.Join(cfg.LogDir, DeadLetterFileName)
}

// Mirror returns the Discord publisher, or nil when mirroring is disabled
func (es *EventSystem) Mirror() event.Publisher {
	if es.Discord == nil {
		return nil
	}
	return es.Discord
}
