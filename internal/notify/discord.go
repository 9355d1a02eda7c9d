package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// webhookExecutor is the part of discordgo.Session the webhook publisher uses
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordWebhook mirrors notification events to a Discord channel webhook.
// It implements event.Publisher so it can sit behind a ResilientPublisher.
type DiscordWebhook struct {
	session   webhookExecutor
	webhookID string
	token     string
}

// NewDiscordWebhook creates a webhook publisher. Webhook execution needs no
// bot token, so the session is created unauthenticated.
func NewDiscordWebhook(webhookID, token string) (*DiscordWebhook, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateDiscordSession, err)
	}
	return &DiscordWebhook{session: s, webhookID: webhookID, token: token}, nil
}

// Publish posts the notification carried by e
func (d *DiscordWebhook) Publish(ctx context.Context, e event.Event) error {
	n, err := event.DecodePayload[domain.Notification](e.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUnexpectedPayload, err)
	}

	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{notificationEmbed(n)},
	}
	if _, err := d.session.WebhookExecute(d.webhookID, d.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWebhookFailed, err)
	}

	slog.Debug(LogMsgWebhookSent, logger.AttrKeyHiveID, n.HiveID, "title", n.Title)
	return nil
}

func notificationEmbed(n domain.Notification) *discordgo.MessageEmbed {
	color := ColorDefault
	if n.Variant == domain.VariantDestructive {
		color = ColorDestructive
	}

	embed := &discordgo.MessageEmbed{
		Title:       n.Title,
		Description: n.Description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterText + " • " + n.HiveID,
		},
	}
	if !n.CreatedAt.IsZero() {
		embed.Timestamp = n.CreatedAt.Format(time.RFC3339)
	}
	return embed
}

// Relay forwards NotificationRaised events from a bus to another publisher.
// Wrap the target in an event.ResilientPublisher so slow or failing webhooks
// retry without blocking the bus.
type Relay struct {
	target event.Publisher
}

// NewRelay creates a relay to target
func NewRelay(target event.Publisher) *Relay {
	return &Relay{target: target}
}

// Subscribe registers the relay on bus
func (r *Relay) Subscribe(bus event.Bus) {
	bus.Subscribe(event.NotificationRaised, r.handle)
	slog.Info(LogMsgRelaySubscribed)
}

func (r *Relay) handle(ctx context.Context, e event.Event) error {
	return r.target.Publish(ctx, e)
}
