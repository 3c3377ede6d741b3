package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emberfall/server/internal/auth"
	"github.com/emberfall/server/internal/match"
	"github.com/emberfall/server/pkg/hexgame"
)

var (
	ErrNotFound = errors.New("room not found")
	ErrRoomFull = errors.New("room already has two players")
)

// How long an unjoined room waits for a second player.
const waitingTTL = time.Hour

// Status of a room's lifecycle.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Room pairs two players with their running match.
type Room struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	hostName  string
	guestName string
	m         *match.Match
	cancel    context.CancelFunc
}

// Match returns the running match, or nil while waiting for a guest.
func (r *Room) Match() *match.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m
}

// Status reports where the room is in its lifecycle.
func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		return StatusWaiting
	}
	if r.m.Finished() {
		return StatusFinished
	}
	return StatusActive
}

// PlayerNames returns the host and guest names; guest is empty while
// waiting.
func (r *Room) PlayerNames() (string, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostName, r.guestName
}

// SeatGrant is what a player gets back from create or join: the seat
// and the token that authenticates it.
type SeatGrant struct {
	RoomID string       `json:"roomId"`
	Seat   hexgame.Seat `json:"seat"`
	Token  string       `json:"token"`
}

// Manager owns all live rooms. Matches run under the manager's
// context; Shutdown stops them all.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	cfg    match.Config
	jwtMgr *auth.JWTManager
	log    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager creates a room manager.
func NewManager(cfg match.Config, jwtMgr *auth.JWTManager, log zerolog.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		rooms:  make(map[string]*Room),
		cfg:    cfg,
		jwtMgr: jwtMgr,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Create opens a room with the caller as host in the first seat.
func (m *Manager) Create(hostName string) (*SeatGrant, error) {
	id := uuid.NewString()
	token, err := m.jwtMgr.GenerateSeatToken(id, string(hexgame.SeatP1))
	if err != nil {
		return nil, err
	}

	r := &Room{ID: id, CreatedAt: time.Now(), hostName: hostName}
	m.mu.Lock()
	m.rooms[id] = r
	m.mu.Unlock()

	m.log.Info().Str("roomId", id).Str("host", hostName).Msg("room created")
	return &SeatGrant{RoomID: id, Seat: hexgame.SeatP1, Token: token}, nil
}

// Join seats the guest and starts the match.
func (m *Manager) Join(roomID, guestName string) (*SeatGrant, error) {
	r, err := m.Get(roomID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m != nil {
		return nil, ErrRoomFull
	}
	token, err := m.jwtMgr.GenerateSeatToken(roomID, string(hexgame.SeatP2))
	if err != nil {
		return nil, err
	}

	r.guestName = guestName
	ctx, cancel := context.WithCancel(m.ctx)
	r.cancel = cancel
	r.m = match.New(roomID, r.hostName, guestName, m.cfg, m.log)
	go r.m.Run(ctx)

	m.log.Info().Str("roomId", roomID).Str("guest", guestName).Msg("room joined, match running")
	return &SeatGrant{RoomID: roomID, Seat: hexgame.SeatP2, Token: token}, nil
}

// Get looks a room up by id.
func (m *Manager) Get(roomID string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Reap periodically removes finished matches and rooms nobody joined.
func (m *Manager) Reap(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.log.Info().Dur("interval", interval).Msg("room reaper started")
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("room reaper stopped")
			return
		case <-ticker.C:
			m.reapOnce()
		}
	}
}

func (m *Manager) reapOnce() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		switch r.Status() {
		case StatusFinished:
			if r.cancel != nil {
				r.cancel()
			}
			delete(m.rooms, id)
			m.log.Info().Str("roomId", id).Msg("finished room reaped")
		case StatusWaiting:
			if time.Since(r.CreatedAt) > waitingTTL {
				delete(m.rooms, id)
				m.log.Info().Str("roomId", id).Msg("unjoined room reaped")
			}
		}
	}
}

// Shutdown stops every running match.
func (m *Manager) Shutdown() {
	m.cancel()
}
