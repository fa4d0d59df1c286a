package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gama-center/ponto-backend-go/internal/handler/http/response"
	"github.com/gama-center/ponto-backend-go/internal/pkg/sse"
	justificationService "github.com/gama-center/ponto-backend-go/internal/service/justification"
	"github.com/go-chi/jwtauth/v5"
)

type StreamHandler interface {
	JustificationStream(w http.ResponseWriter, r *http.Request)
}

type streamHandlerImpl struct {
	hub     *sse.Hub
	watcher *justificationService.Watcher
}

func NewStreamHandler(hub *sse.Hub, watcher *justificationService.Watcher) StreamHandler {
	return &streamHandlerImpl{
		hub:     hub,
		watcher: watcher,
	}
}

// JustificationStream implements StreamHandler. While the stream is open the
// watcher polls the user's latest justification; the decision arrives here as
// a server-sent event.
func (h *streamHandlerImpl) JustificationStream(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()
	slog.Debug("justification stream opened", "user_id", userID, "active_streams", h.hub.TotalSubscribers())

	h.watcher.Watch(userID)
	defer func() {
		if h.hub.SubscriberCount(userID) <= 1 {
			h.watcher.Unwatch(userID)
		}
	}()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
