package match

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emberfall/server/pkg/hexgame"
)

func waitEvent(t *testing.T, ch <-chan Event, typ string) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed while waiting for %s", typ)
			}
			if ev.Type == typ {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", typ)
		}
	}
}

func startMatch(t *testing.T, cfg Config) (*Match, context.CancelFunc) {
	t.Helper()
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = time.Minute
	}
	if cfg.ReconnectWindow == 0 {
		cfg.ReconnectWindow = time.Minute
	}
	m := New("m-test", "alice", "bob", cfg, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go m.Run(ctx)
	return m, cancel
}

func TestActorStartsWhenBothSeatsAttach(t *testing.T) {
	m, cancel := startMatch(t, Config{})
	defer cancel()

	ctx := context.Background()
	ch1, err := m.Attach(ctx, hexgame.SeatP1)
	if err != nil {
		t.Fatal(err)
	}
	ch2, err := m.Attach(ctx, hexgame.SeatP2)
	if err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, ch1, EventGameStart)
	view := ev.Data.(StateView)
	if view.Seat != hexgame.SeatP1 || view.Phase != hexgame.PhaseSetupTiles {
		t.Errorf("p1 game_start view = seat %s phase %s", view.Seat, view.Phase)
	}
	waitEvent(t, ch2, EventGameStart)

	m.Submit(hexgame.SeatP1, hexgame.Command{
		Type: hexgame.CmdPlaceTile, TileID: "r0c0", TileType: hexgame.Neutral,
	})
	waitEvent(t, ch1, EventStateUpdate)
	waitEvent(t, ch2, EventStateUpdate)
}

func TestActorReconnectReplaysSnapshot(t *testing.T) {
	m, cancel := startMatch(t, Config{ReconnectWindow: time.Minute})
	defer cancel()

	ctx := context.Background()
	ch1, _ := m.Attach(ctx, hexgame.SeatP1)
	ch2, _ := m.Attach(ctx, hexgame.SeatP2)
	waitEvent(t, ch1, EventGameStart)
	waitEvent(t, ch2, EventGameStart)

	m.Detach(hexgame.SeatP2)
	waitEvent(t, ch1, EventPlayerLeft)

	ch2b, err := m.Attach(ctx, hexgame.SeatP2)
	if err != nil {
		t.Fatal(err)
	}
	ev := waitEvent(t, ch2b, EventStateUpdate)
	if ev.Data.(StateView).Seat != hexgame.SeatP2 {
		t.Error("reconnect snapshot built for the wrong seat")
	}
	if m.Finished() {
		t.Error("reconnect within the window still forfeited")
	}
}

func TestActorForfeitsAfterReconnectWindow(t *testing.T) {
	m, cancel := startMatch(t, Config{ReconnectWindow: 30 * time.Millisecond})
	defer cancel()

	ctx := context.Background()
	ch1, _ := m.Attach(ctx, hexgame.SeatP1)
	ch2, _ := m.Attach(ctx, hexgame.SeatP2)
	waitEvent(t, ch1, EventGameStart)
	waitEvent(t, ch2, EventGameStart)

	m.Detach(hexgame.SeatP2)
	ev := waitEvent(t, ch1, EventGameOver)
	over := ev.Data.(gameOverData)
	if over.Winner != hexgame.SeatP1 || over.Reason != hexgame.ReasonForfeit {
		t.Errorf("game_over = %+v, want p1 by forfeit", over)
	}
}

func TestActorFinishedAfterConcede(t *testing.T) {
	m, cancel := startMatch(t, Config{})
	defer cancel()

	ctx := context.Background()
	ch1, _ := m.Attach(ctx, hexgame.SeatP1)
	ch2, _ := m.Attach(ctx, hexgame.SeatP2)
	waitEvent(t, ch1, EventGameStart)
	waitEvent(t, ch2, EventGameStart)

	if m.Finished() {
		t.Fatal("finished before anyone conceded")
	}
	m.Submit(hexgame.SeatP2, hexgame.Command{Type: hexgame.CmdConcede})
	waitEvent(t, ch1, EventGameOver)

	// Finished is read from other goroutines (the room manager); it
	// must flip once the concede has been dispatched.
	deadline := time.Now().Add(2 * time.Second)
	for !m.Finished() {
		if time.Now().After(deadline) {
			t.Fatal("Finished never reported the conceded match")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestResetTimerDrainsStaleTick(t *testing.T) {
	tm := time.NewTimer(time.Millisecond)
	time.Sleep(10 * time.Millisecond) // let the tick buffer in tm.C

	resetTimer(tm, time.Hour)
	select {
	case <-tm.C:
		t.Fatal("stale tick survived the reset and would fire the timer case early")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStopTimerDrainsStaleTick(t *testing.T) {
	tm := time.NewTimer(time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	stopTimer(tm)
	select {
	case <-tm.C:
		t.Fatal("stale tick survived the stop")
	default:
	}
}

func TestActorAttachAfterStopFails(t *testing.T) {
	m, cancel := startMatch(t, Config{})
	cancel()
	<-m.Done()

	if _, err := m.Attach(context.Background(), hexgame.SeatP1); err == nil {
		t.Error("attach succeeded on a stopped match")
	}
}
