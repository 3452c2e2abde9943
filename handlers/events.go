// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/danielhkuo/civic-pulse/middleware"
	"github.com/danielhkuo/civic-pulse/store"
)

// DefaultHeartbeat keeps idle event streams open through proxies
const DefaultHeartbeat = 25 * time.Second

type EventsHandler struct {
	store     *store.Store
	heartbeat time.Duration
	log       *zap.Logger
}

func NewEventsHandler(st *store.Store, heartbeat time.Duration, log *zap.Logger) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EventsHandler{store: st, heartbeat: heartbeat, log: log}
}

// Stream handles GET /events
// Server-Sent Events: one "storage-update" event per store change. Events
// carry no payload; clients re-fetch /stats. Bursts of changes that arrive
// while a write is pending collapse into one event.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	events := make(chan string, 1)
	cancel := h.store.Subscribe(func(ev store.Event) {
		select {
		case events <- ev.Name:
		default:
		}
	})
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case name := <-events:
			if _, err := fmt.Fprintf(w, "event: %s\ndata: {}\n\n", name); err != nil {
				h.log.Debug("event stream closed", zap.Error(err))
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
