package match

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/emberfall/server/pkg/hexgame"
)

const outboxSize = 256

// Config carries the per-match timing knobs.
type Config struct {
	// TurnTimer bounds one seat's turn; expiry force-ends it.
	TurnTimer time.Duration
	// ReconnectWindow is how long a disconnected seat may return before
	// forfeiting.
	ReconnectWindow time.Duration
	// IdleTimeout ends a match nobody is playing.
	IdleTimeout time.Duration
}

type inboundKind int

const (
	inboundCommand inboundKind = iota
	inboundAttach
	inboundDetach
)

type inbound struct {
	kind   inboundKind
	seat   hexgame.Seat
	cmd    hexgame.Command
	outbox chan Event
}

// Match is the actor owning one game: a single goroutine consumes the
// command queue, drives the dispatcher, and fans events out to the two
// seat outboxes. All state access happens on that goroutine.
type Match struct {
	ID  string
	cfg Config

	d     *Dispatcher
	queue chan inbound
	done  chan struct{}
	log   zerolog.Logger

	outboxes map[hexgame.Seat]chan Event
	started  bool
	finished atomic.Bool

	turnTimer *time.Timer
	idleTimer *time.Timer
	reconnect map[hexgame.Seat]*time.Timer
	lastTurn  turnKey
}

type turnKey struct {
	seat  hexgame.Seat
	round int
}

// New builds a match actor with fresh state and its own randomness.
// Call Run to start it.
func New(id, p1Name, p2Name string, cfg Config, log zerolog.Logger) *Match {
	m := &Match{
		ID:       id,
		cfg:      cfg,
		queue:    make(chan inbound, 64),
		done:     make(chan struct{}),
		log:      log.With().Str("matchId", id).Logger(),
		outboxes: make(map[hexgame.Seat]chan Event, 2),
		reconnect: map[hexgame.Seat]*time.Timer{
			hexgame.SeatP1: newStoppedTimer(),
			hexgame.SeatP2: newStoppedTimer(),
		},
		turnTimer: newStoppedTimer(),
		idleTimer: newStoppedTimer(),
	}
	rnd := hexgame.NewRand(time.Now().UnixNano())
	m.d = NewDispatcher(hexgame.NewMatchState(p1Name, p2Name), rnd, m, m.log)
	return m
}

// Run is the actor loop. It exits when the context is canceled; the
// done channel closes on the way out.
func (m *Match) Run(ctx context.Context) {
	defer close(m.done)
	defer m.stopTimers()

	resetTimer(m.idleTimer, m.cfg.IdleTimeout)
	m.log.Info().Msg("match started")

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("match stopped")
			return
		case in := <-m.queue:
			m.handleInbound(in)
		case <-m.turnTimer.C:
			m.log.Info().Msg("turn timer expired")
			m.d.ForceEndTurn()
			m.afterDispatch()
		case <-m.idleTimer.C:
			m.log.Info().Msg("idle timeout")
			m.d.Forfeit(m.d.State().ActiveSeat, hexgame.ReasonTimeout)
			m.afterDispatch()
		case <-m.reconnect[hexgame.SeatP1].C:
			m.d.Forfeit(hexgame.SeatP1, hexgame.ReasonForfeit)
			m.afterDispatch()
		case <-m.reconnect[hexgame.SeatP2].C:
			m.d.Forfeit(hexgame.SeatP2, hexgame.ReasonForfeit)
			m.afterDispatch()
		}
	}
}

// Done closes when the actor loop has exited.
func (m *Match) Done() <-chan struct{} {
	return m.done
}

// Attach connects a seat and returns its event outbox. The first
// snapshot arrives on the channel; the channel closes on detach or
// when the match stops.
func (m *Match) Attach(ctx context.Context, seat hexgame.Seat) (<-chan Event, error) {
	outbox := make(chan Event, outboxSize)
	select {
	case m.queue <- inbound{kind: inboundAttach, seat: seat, outbox: outbox}:
		return outbox, nil
	case <-m.done:
		return nil, context.Canceled
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Detach disconnects a seat; its reconnect window starts.
func (m *Match) Detach(seat hexgame.Seat) {
	select {
	case m.queue <- inbound{kind: inboundDetach, seat: seat}:
	case <-m.done:
	}
}

// Submit queues one decoded command. The seat is stamped here; the
// wire value is never trusted.
func (m *Match) Submit(seat hexgame.Seat, cmd hexgame.Command) {
	cmd.Seat = seat
	select {
	case m.queue <- inbound{kind: inboundCommand, seat: seat, cmd: cmd}:
	case <-m.done:
	}
}

// Finished reports whether the game has resolved or the actor has
// stopped. Callable from any goroutine.
func (m *Match) Finished() bool {
	select {
	case <-m.done:
		return true
	default:
	}
	return m.finished.Load()
}

func (m *Match) handleInbound(in inbound) {
	switch in.kind {
	case inboundCommand:
		resetTimer(m.idleTimer, m.cfg.IdleTimeout)
		m.d.Handle(in.cmd)
		m.afterDispatch()
	case inboundAttach:
		m.attach(in.seat, in.outbox)
	case inboundDetach:
		m.detach(in.seat)
	}
}

func (m *Match) attach(seat hexgame.Seat, outbox chan Event) {
	if old := m.outboxes[seat]; old != nil {
		close(old)
	}
	m.outboxes[seat] = outbox
	stopTimer(m.reconnect[seat])
	m.log.Info().Str("seat", string(seat)).Msg("seat attached")

	if !m.started {
		if m.outboxes[hexgame.SeatP1] != nil && m.outboxes[hexgame.SeatP2] != nil {
			m.started = true
			m.d.Start()
			resetTimer(m.idleTimer, m.cfg.IdleTimeout)
			m.resetTurnTimer()
		}
		return
	}
	// Reconnect: replay the current snapshot.
	m.SendTo(seat, EventStateUpdate, BuildView(m.d.State(), seat))
}

func (m *Match) detach(seat hexgame.Seat) {
	if ch := m.outboxes[seat]; ch != nil {
		close(ch)
		m.outboxes[seat] = nil
	}
	m.log.Info().Str("seat", string(seat)).Msg("seat detached")

	if !m.started || m.d.State().Finished() {
		return
	}
	resetTimer(m.reconnect[seat], m.cfg.ReconnectWindow)
	m.SendTo(seat.Opponent(), EventPlayerLeft, playerLeftData{
		Seat:            seat,
		ReconnectWindow: int(m.cfg.ReconnectWindow.Seconds()),
	})
}

// afterDispatch settles the timers once a command has been handled.
func (m *Match) afterDispatch() {
	st := m.d.State()
	if st.Finished() {
		m.finished.Store(true)
		m.stopTimers()
		return
	}
	key := turnKey{seat: st.ActiveSeat, round: st.Round}
	if m.started && key != m.lastTurn {
		m.lastTurn = key
		m.resetTurnTimer()
	}
}

func (m *Match) resetTurnTimer() {
	if m.cfg.TurnTimer > 0 {
		resetTimer(m.turnTimer, m.cfg.TurnTimer)
	}
}

func (m *Match) stopTimers() {
	stopTimer(m.turnTimer)
	stopTimer(m.idleTimer)
	for _, t := range m.reconnect {
		stopTimer(t)
	}
}

// Broadcast implements Emitter.
func (m *Match) Broadcast(evType string, data any) {
	for _, seat := range hexgame.Seats {
		m.send(seat, Event{Type: evType, Data: data})
	}
}

// SendTo implements Emitter.
func (m *Match) SendTo(seat hexgame.Seat, evType string, data any) {
	m.send(seat, Event{Type: evType, Data: data})
}

// BroadcastState implements Emitter: each seat gets its own filtered
// snapshot.
func (m *Match) BroadcastState() {
	st := m.d.State()
	for _, seat := range hexgame.Seats {
		m.send(seat, Event{Type: EventStateUpdate, Data: BuildView(st, seat)})
	}
}

func (m *Match) send(seat hexgame.Seat, ev Event) {
	ch := m.outboxes[seat]
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	default:
		m.log.Warn().Str("seat", string(seat)).Str("type", ev.Type).
			Msg("dropping event, outbox full")
	}
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		<-t.C
	}
	return t
}

// stopTimer halts t and drains a tick that fired before Stop landed.
// Safe only on the goroutine that receives from t.C, which is the
// actor loop for every timer here.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

// resetTimer rearms t without leaving a stale expiry buffered; a tick
// from the previous arming would otherwise fire the timer case on the
// next loop iteration.
func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}
