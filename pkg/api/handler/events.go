package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dskvich/assistant-chat/pkg/logger"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPongWait   = 60 * time.Second
	eventsPingPeriod = eventsPongWait * 9 / 10
)

type events struct {
	hub      EventSubscriber
	upgrader websocket.Upgrader
}

func NewEvents(hub EventSubscriber) *events {
	return &events{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Stream pushes the run events of the session over a websocket until the
// client goes away.
func (e *events) Stream(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "Upgrading events connection", logger.Err(err))
		return
	}
	defer conn.Close()

	ch, unsubscribe := e.hub.Subscribe(sess.ID)
	defer unsubscribe()

	slog.DebugContext(r.Context(), "Events stream opened")

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		_ = conn.SetReadDeadline(time.Now().Add(eventsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(eventsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			slog.DebugContext(r.Context(), "Events stream closed")
			return
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				slog.DebugContext(r.Context(), "Writing run event", logger.Err(err))
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
