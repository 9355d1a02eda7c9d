package sse

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// HiveIDFunc extracts the hive a stream request is for
type HiveIDFunc func(r *http.Request) string

// Handler returns an HTTP handler streaming one hive's events
func Handler(hub *Hub, hiveIDFrom HiveIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		hiveID := hiveIDFrom(r)
		if hiveID == "" {
			http.Error(w, "missing hive id", http.StatusBadRequest)
			return
		}
		eventTypes, err := parseTypes(r.URL.Query().Get(QueryParamTypes))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ctx := logger.WithHiveID(r.Context(), hiveID)
		log := logger.FromContext(ctx)

		client := hub.Register(hiveID, eventTypes)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "filters", eventTypes)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		hello := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			HiveID:    hiveID,
			Timestamp: time.Now().Unix(),
			Retry:     ClientRetryInterval,
			Payload: map[string]interface{}{
				"client_id": client.ID,
				"filters":   eventTypes,
			},
		}
		if !write(w, flusher, hello) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub stopped
					return
				}
				if !write(w, flusher, event) {
					return
				}

			case <-ticker.C:
				if !write(w, flusher, Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

// parseTypes splits the ?types= filter. An empty filter means every type.
func parseTypes(param string) ([]string, error) {
	if strings.TrimSpace(param) == "" {
		return nil, nil
	}
	var types []string
	for _, t := range strings.Split(param, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !filterableTypes[t] {
			known := make([]string, 0, len(filterableTypes))
			for k := range filterableTypes {
				known = append(known, k)
			}
			sort.Strings(known)
			return nil, fmt.Errorf("unknown event type %q, expected one of %s", t, strings.Join(known, ", "))
		}
		types = append(types, t)
	}
	return types, nil
}

// write sends one event and reports whether the connection is still usable
func write(w http.ResponseWriter, flusher http.Flusher, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		logger.Error(LogMsgWriteError, "error", err, "event_type", event.Type)
		return true
	}
	if _, err := w.Write(msg); err != nil {
		logger.Warn(LogMsgWriteError, "error", err)
		return false
	}
	flusher.Flush()
	return true
}
