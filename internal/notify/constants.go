package notify

// Discord embed colors
const (
	ColorDefault     = 0xf1c40f // Honey
	ColorDestructive = 0xe74c3c // Red
)

// FooterText is shown under every mirrored notification
const FooterText = "BuzzHive"

// Log messages
const (
	LogMsgNotification    = "Hive notification"
	LogMsgPublishFailed   = "Failed to publish notification"
	LogMsgWebhookSent     = "Notification mirrored to Discord"
	LogMsgRelaySubscribed = "Discord relay subscribed to notifications"
)

// Error messages
const (
	ErrMsgWebhookFailed        = "failed to execute discord webhook"
	ErrMsgUnexpectedPayload    = "unexpected notification payload"
	ErrMsgCreateDiscordSession = "failed to create discord session"
)
