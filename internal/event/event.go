package event

import (
	"time"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// HiveID returns the hive the event belongs to, or "" for global events
func (e Event) HiveID() string {
	id, _ := e.GetMetadataValue(MetadataKeyHiveID).(string)
	return id
}

// Hive event types
const (
	NotificationRaised Type = "hive.notification"
	StateChanged       Type = "hive.state"
	MarketUpdated      Type = "hive.market"
	SessionOpened      Type = "hive.session.opened"
	SessionClosed      Type = "hive.session.closed"
	ActionApplied      Type = "hive.action"
)

// Types lists every hive event type
var Types = []Type{NotificationRaised, StateChanged, MarketUpdated, SessionOpened, SessionClosed, ActionApplied}

// State change sources
const (
	SourceCatchUp = "catch_up"
	SourceTick    = "tick"
	SourceMarket  = "market"
	SourceAction  = "action"
)

// StatePayloadV1 is the typed payload for state change events
type StatePayloadV1 struct {
	HiveID   string           `json:"hive_id"`
	Source   string           `json:"source"`
	BeesBorn int              `json:"bees_born,omitempty"`
	State    domain.HiveState `json:"state"`
}

// ActionPayloadV1 is the typed payload for user action events
type ActionPayloadV1 struct {
	HiveID   string `json:"hive_id"`
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
}

// MarketPayloadV1 is the typed payload for market update events
type MarketPayloadV1 struct {
	HiveID string        `json:"hive_id"`
	Prices domain.Prices `json:"prices"`
}

// SessionPayloadV1 is the typed payload for session lifecycle events
type SessionPayloadV1 struct {
	HiveID    string `json:"hive_id"`
	Origin    string `json:"origin,omitempty"` // how the hive was loaded: new, restored, recovered
	Reason    string `json:"reason,omitempty"` // why the session closed: idle, shutdown
	Timestamp int64  `json:"timestamp"`
}

func hiveMetadata(hiveID string) Metadata {
	return Metadata{MetadataKeyHiveID: hiveID}
}

// NewNotificationEvent wraps a stamped hive notification
func NewNotificationEvent(n domain.Notification) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     NotificationRaised,
		Payload:  n,
		Metadata: hiveMetadata(n.HiveID),
	}
}

// NewStateEvent creates a state change event carrying a copy of s
func NewStateEvent(hiveID, source string, s domain.HiveState, beesBorn int) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     StateChanged,
		Payload:  StatePayloadV1{HiveID: hiveID, Source: source, BeesBorn: beesBorn, State: s.Clone()},
		Metadata: hiveMetadata(hiveID),
	}
}

// NewActionEvent records the outcome of a user action
func NewActionEvent(hiveID, action string, accepted bool) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     ActionApplied,
		Payload:  ActionPayloadV1{HiveID: hiveID, Action: action, Accepted: accepted},
		Metadata: hiveMetadata(hiveID),
	}
}

// NewMarketEvent creates a market update event
func NewMarketEvent(hiveID string, p domain.Prices) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     MarketUpdated,
		Payload:  MarketPayloadV1{HiveID: hiveID, Prices: p},
		Metadata: hiveMetadata(hiveID),
	}
}

// NewSessionOpenedEvent creates a session opened event
func NewSessionOpenedEvent(hiveID, origin string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     SessionOpened,
		Payload:  SessionPayloadV1{HiveID: hiveID, Origin: origin, Timestamp: time.Now().Unix()},
		Metadata: hiveMetadata(hiveID),
	}
}

// NewSessionClosedEvent creates a session closed event
func NewSessionClosedEvent(hiveID, reason string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     SessionClosed,
		Payload:  SessionPayloadV1{HiveID: hiveID, Reason: reason, Timestamp: time.Now().Unix()},
		Metadata: hiveMetadata(hiveID),
	}
}
