package domain

import "time"

// NotificationKind classifies a notification by the operation that produced it
type NotificationKind string

const (
	NotificationOfflineSummary NotificationKind = "offline_summary"
	NotificationQueenBirth     NotificationKind = "queen_birth"
	NotificationBonus          NotificationKind = "bonus"
	NotificationUpgrade        NotificationKind = "upgrade"
	NotificationWorkers        NotificationKind = "workers"
	NotificationWorkersPartial NotificationKind = "workers_partial"
	NotificationTrade          NotificationKind = "trade"
	NotificationInvalidAmount  NotificationKind = "invalid_amount"
	NotificationRejected       NotificationKind = "rejected"
)

// NotificationVariant mirrors how a notification is meant to be displayed
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is a fire-and-forget, human-readable message about a hive
type Notification struct {
	ID          string              `json:"id,omitempty"`
	HiveID      string              `json:"hive_id,omitempty"`
	Kind        NotificationKind    `json:"kind"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
	CreatedAt   time.Time           `json:"created_at,omitempty"`
}
