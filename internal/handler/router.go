package handler

import (
	"net/http"

	"github.com/emberfall/server/internal/auth"
	"github.com/emberfall/server/internal/room"
)

// NewRouter wires the API surface: room lifecycle over REST, gameplay
// over the per-room WebSocket.
func NewRouter(rooms *room.Manager, jwtMgr *auth.JWTManager) *http.ServeMux {
	roomHandler := NewRoomHandler(rooms)
	wsHandler := NewWSHandler(rooms, jwtMgr)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("POST /api/v1/rooms", roomHandler.CreateRoom)
	mux.HandleFunc("GET /api/v1/rooms/{id}", roomHandler.GetRoom)
	mux.HandleFunc("POST /api/v1/rooms/{id}/join", roomHandler.JoinRoom)

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/rooms/{id}/ws", wsHandler.ServeWS)

	return mux
}
