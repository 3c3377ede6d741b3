package room

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emberfall/server/internal/auth"
	"github.com/emberfall/server/internal/match"
	"github.com/emberfall/server/pkg/hexgame"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	cfg := match.Config{
		TurnTimer:       time.Minute,
		ReconnectWindow: time.Minute,
		IdleTimeout:     time.Minute,
	}
	m := NewManager(cfg, auth.NewJWTManager("test-secret"), zerolog.Nop())
	t.Cleanup(m.Shutdown)
	return m
}

func TestCreateAndJoin(t *testing.T) {
	mgr := newManager(t)

	grant, err := mgr.Create("alice")
	if err != nil {
		t.Fatal(err)
	}
	if grant.Seat != hexgame.SeatP1 || grant.RoomID == "" || grant.Token == "" {
		t.Fatalf("host grant = %+v", grant)
	}

	r, err := mgr.Get(grant.RoomID)
	if err != nil {
		t.Fatal(err)
	}
	if r.Status() != StatusWaiting || r.Match() != nil {
		t.Fatalf("pre-join status = %s", r.Status())
	}

	guest, err := mgr.Join(grant.RoomID, "bob")
	if err != nil {
		t.Fatal(err)
	}
	if guest.Seat != hexgame.SeatP2 {
		t.Errorf("guest seat = %s", guest.Seat)
	}
	if r.Status() != StatusActive || r.Match() == nil {
		t.Errorf("post-join status = %s", r.Status())
	}
	host, guestName := r.PlayerNames()
	if host != "alice" || guestName != "bob" {
		t.Errorf("names = %q, %q", host, guestName)
	}

	// Third player bounces.
	if _, err := mgr.Join(grant.RoomID, "carol"); err != ErrRoomFull {
		t.Errorf("third join err = %v, want ErrRoomFull", err)
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	mgr := newManager(t)
	if _, err := mgr.Join("nope", "bob"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSeatTokensRoundTrip(t *testing.T) {
	jwtMgr := auth.NewJWTManager("test-secret")
	mgr := NewManager(match.Config{IdleTimeout: time.Minute}, jwtMgr, zerolog.Nop())
	defer mgr.Shutdown()

	grant, err := mgr.Create("alice")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := jwtMgr.ValidateToken(grant.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.RoomID != grant.RoomID || claims.Seat != string(hexgame.SeatP1) {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := jwtMgr.ValidateToken(grant.Token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
	if _, err := auth.NewJWTManager("other-secret").ValidateToken(grant.Token); err == nil {
		t.Error("token accepted under a different secret")
	}
}

func TestReapRemovesFinishedRooms(t *testing.T) {
	mgr := newManager(t)
	grant, _ := mgr.Create("alice")
	mgr.Join(grant.RoomID, "bob")

	r, _ := mgr.Get(grant.RoomID)
	// Concede to finish the match, then wait for the actor to settle.
	r.Match().Submit(hexgame.SeatP1, hexgame.Command{Type: hexgame.CmdConcede})
	deadline := time.Now().Add(2 * time.Second)
	for r.Status() != StatusFinished {
		if time.Now().After(deadline) {
			t.Fatal("match never finished")
		}
		time.Sleep(5 * time.Millisecond)
	}

	mgr.reapOnce()
	if _, err := mgr.Get(grant.RoomID); err != ErrNotFound {
		t.Errorf("finished room still present: %v", err)
	}
	if mgr.Count() != 0 {
		t.Errorf("rooms = %d, want 0", mgr.Count())
	}
}
