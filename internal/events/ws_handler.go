package events

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// WSHandler upgrades /ws/catalog requests and registers them on the hub.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewWSHandler builds the catalog feed handler. checkOrigin may be nil to allow all origins.
func NewWSHandler(hub *ws.Hub, checkOrigin func(r *http.Request) bool, logger zerolog.Logger) *WSHandler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With().Str("component", "catalog_ws").Logger(),
	}
}

// ServeHTTP upgrades the connection and pumps messages until the peer leaves.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.New()
	logger := h.logger.With().Str("subscriber_id", id.String()).Logger()
	wsConn := ws.NewConnection(conn, logger)
	h.hub.Register(id, wsConn)
	defer h.hub.Unregister(id)

	go wsConn.WritePump()

	wsConn.ReadPump(func(msg ws.Message) error {
		switch msg.Type {
		case ws.TypePing:
			return wsConn.Send(ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
		default:
			errMsg, err := ws.NewMessage(ws.TypeError, ws.ErrorPayload{
				Code:    "unsupported_message",
				Message: "the catalog feed is read-only",
			})
			if err != nil {
				return err
			}
			errMsg.RequestID = msg.RequestID
			return wsConn.Send(errMsg)
		}
	})
}
