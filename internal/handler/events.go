package handler

import (
	"net/http"

	"github.com/osse101/BuzzHive_Go/internal/logger"
	"github.com/osse101/BuzzHive_Go/internal/sse"
)

// HandleHiveEvents streams a hive's notifications and state changes over
// SSE. The hive's session is held open for the life of the stream so it keeps
// ticking while someone watches.
// @Summary Hive event stream
// @Description Server-Sent Events for one hive. Filter with ?types=notification,state
// @Tags hives
// @Produce text/event-stream
// @Param hiveID path string true "Hive ID"
// @Param types query string false "Comma separated event types"
// @Success 200 {string} string "event stream"
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/hives/{hiveID}/events [get]
func HandleHiveEvents(hives HiveService, hub *sse.Hub) http.HandlerFunc {
	stream := sse.Handler(hub, HiveIDParam)

	return func(w http.ResponseWriter, r *http.Request) {
		id := HiveIDParam(r)
		release, err := hives.Watch(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, LogMsgEventStreamStart, err)
			return
		}
		defer release()

		logger.FromContext(r.Context()).Debug(LogMsgEventStreamStart, logger.AttrKeyHiveID, id)
		stream(w, r)
	}
}
