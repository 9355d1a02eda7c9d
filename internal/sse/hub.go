package sse

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	HiveID    string        `json:"hive_id,omitempty"`
	Timestamp int64         `json:"timestamp"`
	Payload   interface{}   `json:"payload"`
	Retry     time.Duration `json:"-"` // sent as the retry field when set
}

// Client is one open stream watching a single hive
type Client struct {
	ID           string
	HiveID       string
	EventChannel chan Event

	types   map[string]bool // nil means every type
	dropped atomic.Int64
}

func (c *Client) wants(eventType string) bool {
	return c.types == nil || c.types[eventType]
}

// Dropped counts events this client missed because its buffer was full
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Hub fans hive events out to the streams watching that hive. Clients are
// indexed by hive, so a broadcast only walks the watchers of its hive.
type Hub struct {
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	mu     sync.RWMutex
	byHive map[string]map[string]*Client
	byID   map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
		byHive:     make(map[string]map[string]*Client),
		byID:       make(map[string]*Client),
	}
}

// Start runs the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel, which ends their
// streams. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, c := range h.byID {
			close(c.EventChannel)
		}
		h.byID = make(map[string]*Client)
		h.byHive = make(map[string]map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case c := <-h.register:
			h.add(c)
		case id := <-h.unregister:
			h.remove(id)
		case e := <-h.broadcast:
			h.deliver(e)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	watchers := h.byHive[c.HiveID]
	if watchers == nil {
		watchers = make(map[string]*Client)
		h.byHive[c.HiveID] = watchers
	}
	watchers[c.ID] = c
	h.byID[c.ID] = c
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.byID[id]
	if !ok {
		return
	}
	close(c.EventChannel)
	delete(h.byID, id)
	delete(h.byHive[c.HiveID], id)
	if len(h.byHive[c.HiveID]) == 0 {
		delete(h.byHive, c.HiveID)
	}
}

// deliver never blocks: a client with a full buffer misses the event
func (h *Hub) deliver(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	send := func(c *Client) {
		if !c.wants(e.Type) {
			return
		}
		select {
		case c.EventChannel <- e:
		default:
			c.dropped.Add(1)
		}
	}

	if e.HiveID == "" {
		for _, c := range h.byID {
			send(c)
		}
		return
	}
	for _, c := range h.byHive[e.HiveID] {
		send(c)
	}
}

// Register adds a client watching hiveID. An empty eventTypes receives every
// type. A client registered after Stop gets an already closed channel.
func (h *Hub) Register(hiveID string, eventTypes []string) *Client {
	c := &Client{
		ID:           uuid.NewString(),
		HiveID:       hiveID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		c.types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			c.types[t] = true
		}
	}

	select {
	case <-h.shutdown:
		close(c.EventChannel)
		return c
	default:
	}
	select {
	case h.register <- c:
	case <-h.shutdown:
		close(c.EventChannel)
	}
	return c
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for the clients watching hiveID. An empty
// hiveID reaches every client. Events are dropped when the queue is full.
func (h *Hub) Broadcast(hiveID, eventType string, payload interface{}) {
	e := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		HiveID:    hiveID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
	select {
	case h.broadcast <- e:
	default:
	}
}

// ClientCount is the number of open streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byID)
}

// Watchers is the number of open streams for hiveID
func (h *Hub) Watchers(hiveID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byHive[hiveID])
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.Grow(len(data) + 64)
	b.WriteString("id: " + event.ID + "\n")
	if event.Retry > 0 {
		b.WriteString("retry: " + strconv.FormatInt(event.Retry.Milliseconds(), 10) + "\n")
	}
	b.WriteString("event: " + event.Type + "\n")
	b.WriteString("data: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String()), nil
}
