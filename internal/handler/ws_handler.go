package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/onthi-app/onthi-backend/internal/middleware"
	ws "github.com/onthi-app/onthi-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the live notification stream.
type WSHandler struct {
	hub      *ws.Hub
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:      hub,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// NotificationStream godoc
// WS /ws/v1/notifications?token=...
// Upgrades to WebSocket. The client explicitly joins and leaves its
// notification room as the notification screen mounts and unmounts; the
// connection itself may outlive the room membership.
func (h *WSHandler) NotificationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	userID := claims.UserID
	client := ws.NewClient(conn)
	joined := false
	defer func() {
		if joined {
			h.hub.Leave(userID, client)
		}
	}()

	h.log.Debug().Str("user_id", userID.String()).Msg("Notification stream opened")

	for {
		var req ws.RoomRequest
		if err := ws.ReadJSON(conn, &req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Str("user_id", userID.String()).Msg("Notification stream read error")
			}
			return
		}

		switch req.Action {
		case ws.ActionJoinRoom:
			// The room is always the authenticated user's own; a spoofed
			// user field is rejected.
			if req.UserID != userID {
				client.WriteError("cannot join another user's room")
				continue
			}
			if !joined {
				h.hub.Join(userID, client)
				joined = true
			}
			client.WriteTyped(ws.AckEvent{Event: ws.EventJoined})

		case ws.ActionLeaveRoom:
			if joined {
				h.hub.Leave(userID, client)
				joined = false
			}
			client.WriteTyped(ws.AckEvent{Event: ws.EventLeft})

		case ws.ActionPing:
			client.WriteTyped(ws.AckEvent{Event: ws.EventPong})

		default:
			client.WriteError("unknown action")
		}
	}
}
