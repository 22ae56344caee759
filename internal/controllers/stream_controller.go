package controllers

import (
	"bytes"
	"fmt"
	"memento/internal/providers"
	"memento/internal/stream"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

const keepAliveInterval = 15 * time.Second

type StreamController struct {
	logger providers.Logger
	hub    *stream.Hub
}

func NewStreamController(logger providers.Logger, hub *stream.Hub) *StreamController {
	return &StreamController{logger: logger, hub: hub}
}

func (sc *StreamController) Events(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// The server write timeout would cut long-lived streams.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write([]byte(": ok\n\n"))
	if err := rc.Flush(); err != nil {
		sc.logger.Errorf(providers.TypeGet, "SSE unsupported by response writer: %s", err)
		return
	}

	replay, events, unsubscribe := sc.hub.Subscribe()
	defer unsubscribe()
	sc.logger.Debugf(providers.TypeGet, "SSE subscriber connected, %d active", sc.hub.Subscribers())

	for _, ev := range replay {
		if err := writeSSEData(w, ev); err != nil {
			return
		}
	}
	_ = rc.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			_ = rc.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeSSEData(w, ev); err != nil {
				return
			}
			_ = rc.Flush()
		}
	}
}

func writeSSEData(w http.ResponseWriter, ev stream.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if bytes.Contains(payload, []byte("\n")) {
		return fmt.Errorf("SSE payload must be single-line JSON")
	}

	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}
