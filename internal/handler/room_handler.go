package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/emberfall/server/internal/room"
)

const maxPlayerName = 32

// RoomHandler exposes the room lifecycle over HTTP: create, join, and
// inspect. Gameplay itself happens over the WebSocket.
type RoomHandler struct {
	rooms *room.Manager
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(rooms *room.Manager) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

type roomRequest struct {
	Name string `json:"name"`
}

// CreateRoom handles POST /api/v1/rooms — opens a room and grants the
// caller the first seat.
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, ok := playerName(req.Name)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid player name")
		return
	}

	grant, err := h.rooms.Create(name)
	if err != nil {
		log.Error().Err(err).Msg("Room creation failed")
		writeError(w, http.StatusInternalServerError, "could not create room")
		return
	}
	writeJSON(w, http.StatusCreated, grant)
}

// JoinRoom handles POST /api/v1/rooms/{id}/join — grants the second
// seat and starts the match.
func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, ok := playerName(req.Name)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid player name")
		return
	}

	grant, err := h.rooms.Join(r.PathValue("id"), name)
	switch {
	case errors.Is(err, room.ErrNotFound):
		writeError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, room.ErrRoomFull):
		writeError(w, http.StatusConflict, "room is full")
	case err != nil:
		log.Error().Err(err).Str("roomId", r.PathValue("id")).Msg("Room join failed")
		writeError(w, http.StatusInternalServerError, "could not join room")
	default:
		writeJSON(w, http.StatusOK, grant)
	}
}

type roomStatusResponse struct {
	RoomID  string            `json:"roomId"`
	Status  room.Status       `json:"status"`
	Players map[string]string `json:"players"`
}

// GetRoom handles GET /api/v1/rooms/{id}.
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := h.rooms.Get(r.PathValue("id"))
	if errors.Is(err, room.ErrNotFound) {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	host, guest := rm.PlayerNames()
	writeJSON(w, http.StatusOK, roomStatusResponse{
		RoomID:  rm.ID,
		Status:  rm.Status(),
		Players: map[string]string{"p1": host, "p2": guest},
	})
}

func playerName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" || len(name) > maxPlayerName {
		return "", false
	}
	return name, true
}
