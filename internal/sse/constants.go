package sse

import "time"

const (
	BroadcastBufferSize = 256
	ClientEventBuffer   = 64 // per client; a slow client drops events past this
	ClientChannelBuffer = 10 // register and unregister queues
)

const (
	KeepaliveInterval = 30 * time.Second
	// ClientRetryInterval is the reconnect delay suggested to EventSource clients
	ClientRetryInterval = 3 * time.Second
)

// Stream event types
const (
	EventTypeNotification  = "notification"
	EventTypeState         = "state"
	EventTypeMarket        = "market"
	EventTypeSessionClosed = "session_closed"
	EventTypeConnected     = "connected"
	EventTypeKeepalive     = "keepalive"
)

// filterableTypes are the types a client may ask for with ?types=
var filterableTypes = map[string]bool{
	EventTypeNotification:  true,
	EventTypeState:         true,
	EventTypeMarket:        true,
	EventTypeSessionClosed: true,
}

// QueryParamTypes selects event types on the stream URL, comma separated
const QueryParamTypes = "types"

const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
	LogMsgInvalidPayload     = "Invalid event payload for SSE"
)
