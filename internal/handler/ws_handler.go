package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/emberfall/server/internal/auth"
	"github.com/emberfall/server/internal/match"
	"github.com/emberfall/server/internal/room"
	"github.com/emberfall/server/pkg/hexgame"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second // Must be less than pongWait
	maxMsgSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS handled by middleware; tighten in production
	},
}

// WSHandler upgrades a seat's connection and bridges it to the match
// actor: reads become commands, the actor's outbox becomes writes.
type WSHandler struct {
	rooms  *room.Manager
	jwtMgr *auth.JWTManager
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(rooms *room.Manager, jwtMgr *auth.JWTManager) *WSHandler {
	return &WSHandler{rooms: rooms, jwtMgr: jwtMgr}
}

// ServeWS handles GET /api/v1/rooms/{id}/ws — upgrades to WebSocket.
// Auth via ?token= query parameter (WebSocket can't send headers); the
// token names both the room and the seat.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, `{"error":"missing token parameter"}`, http.StatusUnauthorized)
		return
	}
	claims, err := h.jwtMgr.ValidateToken(tokenStr)
	if err != nil {
		http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
		return
	}
	if roomID := r.PathValue("id"); roomID != "" && roomID != claims.RoomID {
		http.Error(w, `{"error":"token is for a different room"}`, http.StatusForbidden)
		return
	}

	rm, err := h.rooms.Get(claims.RoomID)
	if err != nil {
		http.Error(w, `{"error":"room not found"}`, http.StatusNotFound)
		return
	}
	m := rm.Match()
	if m == nil {
		http.Error(w, `{"error":"waiting for an opponent"}`, http.StatusConflict)
		return
	}
	seat := hexgame.Seat(claims.Seat)
	if !seat.Valid() {
		http.Error(w, `{"error":"invalid seat claim"}`, http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	outbox, err := m.Attach(context.Background(), seat)
	if err != nil {
		conn.Close()
		return
	}
	log.Info().Str("roomId", claims.RoomID).Str("seat", claims.Seat).Msg("WebSocket seat connected")

	go h.writePump(conn, outbox)
	h.readPump(conn, m, seat, claims.RoomID)
}

// readPump turns inbound frames into match commands. It blocks until
// the connection drops, then detaches the seat.
func (h *WSHandler) readPump(conn *websocket.Conn, m *match.Match, seat hexgame.Seat, roomID string) {
	defer func() {
		m.Detach(seat)
		conn.Close()
		log.Info().Str("roomId", roomID).Str("seat", string(seat)).Msg("WebSocket seat disconnected")
	}()

	conn.SetReadLimit(maxMsgSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("seat", string(seat)).Msg("WebSocket unexpected close")
			}
			return
		}

		cmd, err := hexgame.DecodeCommand(message)
		if err != nil {
			// Protocol garbage is dropped, not answered.
			log.Debug().Err(err).Str("seat", string(seat)).Msg("undecodable command dropped")
			continue
		}
		m.Submit(seat, cmd)
	}
}

// writePump drains the actor's outbox onto the wire. It exits when the
// outbox closes (detach or match shutdown).
func (h *WSHandler) writePump(conn *websocket.Conn, outbox <-chan match.Event) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-outbox:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				log.Error().Err(err).Str("type", ev.Type).Msg("Failed to marshal event")
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
