package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/notifications"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const (
	sseRetryMillis   = 3000
	defaultHeartbeat = 25 * time.Second
)

// NotificationEvents streams live admin events as server-sent events until the
// client disconnects. Comment frames keep idle proxies from closing the stream.
func NotificationEvents(hub *notifications.Hub, heartbeat time.Duration, logg *logger.Logger) http.HandlerFunc {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rc := http.NewResponseController(w)
		// The server write timeout would otherwise cut long-lived streams.
		if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
			logg.WarnErr(ctx, "events.clear_deadline_failed", err)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		if _, err := fmt.Fprintf(w, "retry: %d\n\n", sseRetryMillis); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			logg.WarnErr(ctx, "events.flush_unsupported", err)
			return
		}

		sub := hub.Subscribe()
		defer hub.Unsubscribe(sub)
		logg.Debug(logg.WithField(ctx, "clients", hub.Clients()), "events.client_connected")

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logg.Debug(ctx, "events.client_disconnected")
				return
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
			case evt, ok := <-sub.Events():
				if !ok {
					return
				}
				payload, err := json.Marshal(evt)
				if err != nil {
					logg.Error(ctx, "events.encode_failed", err)
					continue
				}
				if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", evt.NotificationID, evt.Type, payload); err != nil {
					return
				}
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
