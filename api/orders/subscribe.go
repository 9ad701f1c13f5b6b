package orders

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// SubscribeOrders streams order change events for a store over SSE. Each feed
// event becomes one SSE message named after its event type; clients reconnect
// themselves and re-fetch the vendor view to resync after a gap.
func (om *OrderRoutesManager) SubscribeOrders(w http.ResponseWriter, r *http.Request) {
	rawId := r.URL.Query().Get("store_id")
	storeId, err := uuid.Parse(rawId)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid store id"), gecho.Send())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		gecho.InternalServerError(w, gecho.WithMessage("Streaming unsupported"), gecho.Send())
		return
	}

	events, stop, err := om.services.FeedService.Subscribe(r.Context(), storeId)
	if err != nil {
		om.logger.Error("Failed to subscribe to order feed",
			gecho.Field("store_id", storeId),
			gecho.Field("error", err),
		)
		gecho.ServiceUnavailable(w, gecho.WithMessage("Order feed unavailable"), gecho.Send())
		return
	}
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				om.logger.Error("Failed to encode feed event", gecho.Field("error", err))
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.EventType, payload)
			flusher.Flush()
		}
	}
}
