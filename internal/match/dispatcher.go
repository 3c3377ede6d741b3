package match

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/emberfall/server/pkg/hexgame"
)

const maxChatLen = 500

// Dispatcher is the single writer of match state. Every command passes
// the same gates in order: seat legitimacy, the reaction window, info
// requests, the phase gate, then the engine's rule validation. Only the
// match actor goroutine calls into it.
type Dispatcher struct {
	state  *hexgame.MatchState
	rand   *hexgame.Rand
	roller hexgame.Roller
	em     Emitter
	log    zerolog.Logger

	lastSiege map[hexgame.Seat]int
}

// NewDispatcher wires a dispatcher around fresh or restored state.
func NewDispatcher(state *hexgame.MatchState, rnd *hexgame.Rand, em Emitter, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		state:     state,
		rand:      rnd,
		roller:    rnd,
		em:        em,
		log:       log,
		lastSiege: make(map[hexgame.Seat]int, 2),
	}
}

// State exposes the live state to the actor for snapshots. Read-only
// from the caller's side.
func (d *Dispatcher) State() *hexgame.MatchState {
	return d.state
}

// Start announces the match to both seats with their filtered opening
// snapshot.
func (d *Dispatcher) Start() {
	for _, seat := range hexgame.Seats {
		d.em.SendTo(seat, EventGameStart, BuildView(d.state, seat))
	}
}

// Handle runs one command through the full gate chain.
func (d *Dispatcher) Handle(cmd hexgame.Command) {
	st := d.state
	if !cmd.Seat.Valid() {
		d.log.Warn().Str("type", string(cmd.Type)).Msg("command without a seat dropped")
		return
	}
	if st.Finished() {
		if cmd.Type == hexgame.CmdChat {
			d.handleChat(cmd)
		}
		return
	}

	if st.Reaction.Open {
		switch cmd.Type {
		case hexgame.CmdReactBlitz:
			d.handleReactBlitz(cmd)
		case hexgame.CmdPassReaction:
			d.handlePassReaction(cmd)
		default:
			// Anything else during a reaction window is dropped without
			// a reply; the window state is already on both clients.
			d.log.Debug().Str("type", string(cmd.Type)).Str("seat", string(cmd.Seat)).
				Msg("command ignored during reaction window")
		}
		return
	}

	switch cmd.Type {
	case hexgame.CmdRequestValidMoves:
		d.handleValidMoves(cmd)
		return
	case hexgame.CmdRequestValidTargets:
		d.handleValidTargets(cmd)
		return
	case hexgame.CmdChat:
		d.handleChat(cmd)
		return
	case hexgame.CmdConcede:
		d.handleConcede(cmd)
		return
	case hexgame.CmdReactBlitz, hexgame.CmdPassReaction:
		d.sendError(cmd.Seat, hexgame.CodeBadTiming, "no reaction window is open")
		return
	}

	if !d.phaseGate(cmd) {
		return
	}

	switch cmd.Type {
	case hexgame.CmdPlaceTile:
		d.handlePlaceTile(cmd)
	case hexgame.CmdEndTilePlacement:
		d.handleEndTilePlacement(cmd)
	case hexgame.CmdPlaceEmpire:
		d.handlePlaceEmpire(cmd)
	case hexgame.CmdDrawCard:
		d.handleDrawCard(cmd)
	case hexgame.CmdMoveUnit:
		d.handleMoveUnit(cmd)
	case hexgame.CmdMeleeAttack:
		d.handleAttack(cmd, hexgame.AttackMelee)
	case hexgame.CmdRangedAttack:
		d.handleAttack(cmd, hexgame.AttackRanged)
	case hexgame.CmdPlayUnit:
		d.handlePlayUnit(cmd)
	case hexgame.CmdPlayStructure:
		d.handlePlayStructure(cmd)
	case hexgame.CmdPlaceBuilder:
		d.handlePlaceBuilder(cmd)
	case hexgame.CmdUseTerraform:
		d.handleUseTerraform(cmd)
	case hexgame.CmdPlayBlitz:
		d.handlePlayBlitz(cmd)
	case hexgame.CmdEndTurn:
		d.endTurn(cmd.Seat)
	}
}

// phaseGate rejects commands that do not belong to the current phase or
// come from the wrong seat. Standby and end are engine-immediate; no
// command ever lands in them.
func (d *Dispatcher) phaseGate(cmd hexgame.Command) bool {
	st := d.state
	allowed := map[hexgame.Phase][]hexgame.CommandType{
		hexgame.PhaseSetupTiles:  {hexgame.CmdPlaceTile, hexgame.CmdEndTilePlacement},
		hexgame.PhaseSetupEmpire: {hexgame.CmdPlaceEmpire},
		hexgame.PhaseDraw:        {hexgame.CmdDrawCard},
		hexgame.PhaseMain: {
			hexgame.CmdMoveUnit, hexgame.CmdMeleeAttack, hexgame.CmdRangedAttack,
			hexgame.CmdPlayUnit, hexgame.CmdPlayBlitz, hexgame.CmdPlayStructure,
			hexgame.CmdPlaceBuilder, hexgame.CmdUseTerraform, hexgame.CmdEndTurn,
		},
	}

	ok := false
	for _, t := range allowed[st.Phase] {
		if t == cmd.Type {
			ok = true
			break
		}
	}
	if !ok {
		// Silent drop: replying to every stale command would spam a
		// client that raced a phase change.
		d.log.Debug().Str("type", string(cmd.Type)).Str("phase", string(st.Phase)).
			Str("seat", string(cmd.Seat)).Msg("command out of phase, dropped")
		return false
	}
	// Empire placement is simultaneous; everything else belongs to the
	// active seat.
	if st.Phase != hexgame.PhaseSetupEmpire && cmd.Seat != st.ActiveSeat {
		d.log.Debug().Str("type", string(cmd.Type)).Str("seat", string(cmd.Seat)).
			Msg("command from inactive seat, dropped")
		return false
	}
	return true
}

func (d *Dispatcher) handlePlaceTile(cmd hexgame.Command) {
	if err := hexgame.PlaceSetupTile(d.state, cmd.Seat, cmd.TileID, cmd.TileType); err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	d.state.AppendLog(cmd.Seat, "place_tile", cmd.TileID)
	d.em.BroadcastState()
}

func (d *Dispatcher) handleEndTilePlacement(cmd hexgame.Command) {
	st := d.state
	st.Players[cmd.Seat].TilePlacementDone = true
	st.AppendLog(cmd.Seat, "end_tile_placement", "")

	other := cmd.Seat.Opponent()
	if !st.Players[other].TilePlacementDone {
		st.ActiveSeat = other
	} else {
		st.Phase = hexgame.PhaseSetupEmpire
	}
	d.emitPhase()
	d.em.BroadcastState()
}

func (d *Dispatcher) handlePlaceEmpire(cmd hexgame.Command) {
	st := d.state
	if err := hexgame.PlaceEmpire(st, cmd.Seat, cmd.TileID); err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	st.AppendLog(cmd.Seat, "place_empire", cmd.TileID)
	d.em.Broadcast(EventFogReveal, fogRevealData{TileID: cmd.TileID, Type: st.Tiles[cmd.TileID].Type})

	if st.Empires[hexgame.SeatP1].Placed && st.Empires[hexgame.SeatP2].Placed {
		hexgame.InitDecks(st, d.rand)
		d.beginTurn(hexgame.SeatP1, false)
	}
	d.em.BroadcastState()
}

// beginTurn runs the engine-immediate standby step and leaves the seat
// in its draw phase.
func (d *Dispatcher) beginTurn(seat hexgame.Seat, newRound bool) {
	st := d.state
	st.ActiveSeat = seat
	if newRound {
		st.Round++
	}
	st.Phase = hexgame.PhaseStandby
	d.emitPhase()

	hexgame.RunStandby(st, seat)
	d.em.Broadcast(EventEssenceUpdate, essenceUpdateData{Seat: seat, Essence: st.Players[seat].Essence})

	st.Phase = hexgame.PhaseDraw
	d.emitPhase()
}

func (d *Dispatcher) handleDrawCard(cmd hexgame.Command) {
	st := d.state
	card, err := hexgame.DrawCard(st, cmd.Seat, cmd.Deck)
	if err != nil {
		p := st.Players[cmd.Seat]
		// With both decks exhausted the draw phase cannot complete;
		// report the empty draw and let the turn proceed without a card.
		if len(p.UnitDeck) == 0 && len(p.BlitzDeck) == 0 {
			d.em.SendTo(cmd.Seat, EventDrawResult, drawResultData{Deck: cmd.Deck})
			st.Phase = hexgame.PhaseMain
			d.emitPhase()
			d.em.BroadcastState()
			return
		}
		d.sendRuleError(cmd.Seat, err)
		return
	}
	st.AppendLog(cmd.Seat, "draw_card", cmd.Deck)
	d.em.SendTo(cmd.Seat, EventDrawResult, drawResultData{Deck: cmd.Deck, CardID: card})

	st.Phase = hexgame.PhaseMain
	d.emitPhase()
	d.em.BroadcastState()
}

func (d *Dispatcher) handleMoveUnit(cmd hexgame.Command) {
	st := d.state
	u, ok := st.Units[cmd.UnitID]
	if !ok {
		d.sendError(cmd.Seat, hexgame.CodeNoSuchInstance, "unknown unit "+cmd.UnitID)
		return
	}
	if u.Owner != cmd.Seat {
		d.sendError(cmd.Seat, hexgame.CodeNotOwner, cmd.UnitID+" is not your unit")
		return
	}
	moves, err := hexgame.ValidMoves(st, cmd.UnitID)
	if err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	if !containsTile(moves, cmd.TargetTileID) {
		switch {
		case u.DevelopmentRest:
			d.sendError(cmd.Seat, hexgame.CodeDevelopmentRest, cmd.UnitID+" is in development rest")
		case u.HasMoved:
			d.sendError(cmd.Seat, hexgame.CodeAlreadyMoved, cmd.UnitID+" has already moved")
		default:
			d.sendError(cmd.Seat, hexgame.CodeInvalidTarget, cmd.TargetTileID+" is not a legal destination")
		}
		return
	}

	st.MoveUnit(u, cmd.TargetTileID)
	u.HasMoved = true
	st.AppendLog(cmd.Seat, "move_unit", cmd.UnitID+" to "+cmd.TargetTileID)
	if st.Reveal(cmd.TargetTileID) {
		d.em.Broadcast(EventFogReveal, fogRevealData{TileID: cmd.TargetTileID, Type: st.Tiles[cmd.TargetTileID].Type})
	}

	captures := hexgame.CaptureTick(st, cmd.Seat)
	d.em.BroadcastState()
	for _, c := range captures {
		d.em.Broadcast(EventCaptureUpdate, c)
	}
	d.checkEnd()
}

func (d *Dispatcher) handleAttack(cmd hexgame.Command, kind hexgame.AttackKind) {
	st := d.state
	attacker, ok := st.Units[cmd.AttackerUnitID]
	if !ok {
		d.sendError(cmd.Seat, hexgame.CodeNoSuchInstance, "unknown unit "+cmd.AttackerUnitID)
		return
	}
	if attacker.Owner != cmd.Seat {
		d.sendError(cmd.Seat, hexgame.CodeNotOwner, cmd.AttackerUnitID+" is not your unit")
		return
	}
	res, err := hexgame.ResolveAttack(st, cmd.AttackerUnitID, cmd.TargetID, kind, d.roller)
	if err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	st.AppendLog(cmd.Seat, string(cmd.Type), cmd.AttackerUnitID+" vs "+cmd.TargetID)
	d.em.Broadcast(EventCombatResult, res)
	d.em.BroadcastState()
	d.checkEnd()
}

func (d *Dispatcher) handlePlayUnit(cmd hexgame.Command) {
	st := d.state
	wasRevealed := tileVisibleToAll(st, cmd.SpawnTileID)
	u, err := hexgame.DeployUnit(st, cmd.Seat, cmd.CardID, cmd.SpawnTileID)
	if err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	st.AppendLog(cmd.Seat, "play_unit", cmd.CardID+" at "+cmd.SpawnTileID)
	if !wasRevealed {
		d.em.Broadcast(EventFogReveal, fogRevealData{TileID: u.TileID, Type: st.Tiles[u.TileID].Type})
	}
	d.em.Broadcast(EventEssenceUpdate, essenceUpdateData{Seat: cmd.Seat, Essence: st.Players[cmd.Seat].Essence})
	d.em.BroadcastState()
	d.checkEnd()
}

func (d *Dispatcher) handlePlayStructure(cmd hexgame.Command) {
	st := d.state
	wasRevealed := tileVisibleToAll(st, cmd.TileID)
	s, err := hexgame.DeployStructure(st, cmd.Seat, cmd.CardID, cmd.TileID)
	if err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	st.AppendLog(cmd.Seat, "play_structure", cmd.CardID+" at "+cmd.TileID)
	if !wasRevealed {
		d.em.Broadcast(EventFogReveal, fogRevealData{TileID: s.TileID, Type: st.Tiles[s.TileID].Type})
	}
	for _, id := range hexgame.StructureReveals(st, s) {
		d.em.Broadcast(EventFogReveal, fogRevealData{TileID: id, Type: st.Tiles[id].Type})
	}
	d.em.Broadcast(EventEssenceUpdate, essenceUpdateData{Seat: cmd.Seat, Essence: st.Players[cmd.Seat].Essence})
	d.em.BroadcastState()
	d.checkEnd()
}

func (d *Dispatcher) handlePlaceBuilder(cmd hexgame.Command) {
	st := d.state
	wasRevealed := tileVisibleToAll(st, cmd.TileID)
	b, err := hexgame.PlaceBuilderAt(st, cmd.Seat, cmd.TileID)
	if err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	st.AppendLog(cmd.Seat, "place_builder", b.TileID)
	if !wasRevealed {
		d.em.Broadcast(EventFogReveal, fogRevealData{TileID: b.TileID, Type: st.Tiles[b.TileID].Type})
	}
	d.em.BroadcastState()
}

func (d *Dispatcher) handleUseTerraform(cmd hexgame.Command) {
	st := d.state
	retype, err := hexgame.UseTerraform(st, cmd.Seat, cmd.UnitID)
	if err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	st.AppendLog(cmd.Seat, "use_terraform", retype.TileID)
	d.em.BroadcastState()
}

// handlePlayBlitz announces a slow or instant blitz. The cost is paid
// now; the effect waits behind the opponent's reaction window.
func (d *Dispatcher) handlePlayBlitz(cmd hexgame.Command) {
	st := d.state
	card, ok := hexgame.Lookup(cmd.CardID)
	if !ok || card.Kind != hexgame.KindBlitz {
		d.sendError(cmd.Seat, hexgame.CodeUnknownCard, "no blitz card "+cmd.CardID)
		return
	}
	if card.Blitz.Timing == hexgame.TimingReaction {
		d.sendError(cmd.Seat, hexgame.CodeBadTiming, cmd.CardID+" can only be played in a reaction window")
		return
	}
	if err := hexgame.CheckBlitz(st, cmd.Seat, cmd.CardID, cmd.TargetID); err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	if err := hexgame.PayBlitz(st, cmd.Seat, cmd.CardID); err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	st.Reaction = hexgame.ReactionWindow{
		Open:          true,
		ReactingSeat:  cmd.Seat.Opponent(),
		PendingSeat:   cmd.Seat,
		PendingCard:   cmd.CardID,
		PendingTarget: cmd.TargetID,
	}
	st.AppendLog(cmd.Seat, "play_blitz", cmd.CardID)
	d.em.Broadcast(EventBlitzPlayed, blitzAnnouncedData{
		Seat: cmd.Seat, CardID: cmd.CardID, TargetID: cmd.TargetID, Pending: true,
	})
	d.em.Broadcast(EventEssenceUpdate, essenceUpdateData{Seat: cmd.Seat, Essence: st.Players[cmd.Seat].Essence})
	d.em.BroadcastState()
}

func (d *Dispatcher) handleReactBlitz(cmd hexgame.Command) {
	st := d.state
	if cmd.Seat != st.Reaction.ReactingSeat {
		d.log.Debug().Str("seat", string(cmd.Seat)).Msg("react from non-reacting seat dropped")
		return
	}
	card, ok := hexgame.Lookup(cmd.CardID)
	if !ok || card.Kind != hexgame.KindBlitz {
		d.sendError(cmd.Seat, hexgame.CodeUnknownCard, "no blitz card "+cmd.CardID)
		return
	}
	if card.Blitz.Timing != hexgame.TimingReaction {
		d.sendError(cmd.Seat, hexgame.CodeBadTiming, cmd.CardID+" is not a reaction card")
		return
	}
	if err := hexgame.CheckBlitz(st, cmd.Seat, cmd.CardID, cmd.TargetID); err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	if err := hexgame.PayBlitz(st, cmd.Seat, cmd.CardID); err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}

	st.AppendLog(cmd.Seat, "react_blitz", cmd.CardID)
	d.em.Broadcast(EventBlitzPlayed, blitzAnnouncedData{
		Seat: cmd.Seat, CardID: cmd.CardID, TargetID: cmd.TargetID,
	})
	reaction := hexgame.ApplyBlitz(st, cmd.Seat, cmd.CardID, cmd.TargetID)
	d.em.Broadcast(EventEssenceUpdate, essenceUpdateData{Seat: cmd.Seat, Essence: st.Players[cmd.Seat].Essence})

	if reaction.BehaviorID == hexgame.BehaviorNegate {
		// The pending blitz is discarded; its cost stays paid.
		st.Reaction = hexgame.ReactionWindow{}
		st.AppendLog(cmd.Seat, "negate", "")
		d.em.Broadcast(EventBlitzPlayed, blitzResolvedData{Negated: true})
		d.em.BroadcastState()
		return
	}
	d.resolvePending()
}

func (d *Dispatcher) handlePassReaction(cmd hexgame.Command) {
	if cmd.Seat != d.state.Reaction.ReactingSeat {
		d.log.Debug().Str("seat", string(cmd.Seat)).Msg("pass from non-reacting seat dropped")
		return
	}
	d.state.AppendLog(cmd.Seat, "pass_reaction", "")
	d.resolvePending()
}

// resolvePending closes the reaction window and applies the announced
// blitz that survived it.
func (d *Dispatcher) resolvePending() {
	st := d.state
	w := st.Reaction
	st.Reaction = hexgame.ReactionWindow{}

	res := hexgame.ApplyBlitz(st, w.PendingSeat, w.PendingCard, w.PendingTarget)
	d.em.Broadcast(EventBlitzPlayed, blitzResolvedData{Result: &res})

	if len(res.RetypedTiles) > 0 {
		d.em.Broadcast(EventStormUpdate, stormUpdateData{CardID: res.CardID, RetypedTiles: res.RetypedTiles})
	}
	for _, id := range res.RevealedTiles {
		d.em.Broadcast(EventFogReveal, fogRevealData{TileID: id, Type: st.Tiles[id].Type})
	}
	if res.EssenceGained > 0 {
		d.em.Broadcast(EventEssenceUpdate, essenceUpdateData{
			Seat: w.PendingSeat, Essence: st.Players[w.PendingSeat].Essence,
		})
	}
	d.em.BroadcastState()
	d.checkEnd()
}

// endTurn closes the active seat's turn and starts the opponent's.
func (d *Dispatcher) endTurn(seat hexgame.Seat) {
	st := d.state
	st.Phase = hexgame.PhaseEnd
	d.emitPhase()
	st.AppendLog(seat, "end_turn", "")

	captures := hexgame.CaptureTick(st, seat)
	d.em.BroadcastState()
	for _, c := range captures {
		d.em.Broadcast(EventCaptureUpdate, c)
	}
	if d.checkEnd() {
		return
	}

	next := seat.Opponent()
	d.beginTurn(next, next == hexgame.SeatP1)
	d.em.BroadcastState()
}

func (d *Dispatcher) handleConcede(cmd hexgame.Command) {
	d.finish(&hexgame.Result{Winner: cmd.Seat.Opponent(), Reason: hexgame.ReasonConcede})
}

func (d *Dispatcher) handleChat(cmd hexgame.Command) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return
	}
	if len(text) > maxChatLen {
		text = text[:maxChatLen]
	}
	d.em.Broadcast(EventChatMessage, chatMessageData{
		Seat: cmd.Seat,
		Name: d.state.Players[cmd.Seat].Name,
		Text: text,
	})
}

func (d *Dispatcher) handleValidMoves(cmd hexgame.Command) {
	u, ok := d.state.Units[cmd.UnitID]
	if !ok || u.Owner != cmd.Seat {
		d.sendError(cmd.Seat, hexgame.CodeNoSuchInstance, "no unit "+cmd.UnitID+" under your control")
		return
	}
	moves, err := hexgame.ValidMoves(d.state, cmd.UnitID)
	if err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	d.em.SendTo(cmd.Seat, EventValidMoves, validMovesData{UnitID: cmd.UnitID, Tiles: moves})
}

func (d *Dispatcher) handleValidTargets(cmd hexgame.Command) {
	u, ok := d.state.Units[cmd.UnitID]
	if !ok || u.Owner != cmd.Seat {
		d.sendError(cmd.Seat, hexgame.CodeNoSuchInstance, "no unit "+cmd.UnitID+" under your control")
		return
	}
	var targets []hexgame.TargetRef
	var err error
	if cmd.AttackType == string(hexgame.AttackRanged) {
		targets, err = hexgame.ValidRangedTargets(d.state, cmd.UnitID)
	} else {
		targets, err = hexgame.ValidMeleeTargets(d.state, cmd.UnitID)
	}
	if err != nil {
		d.sendRuleError(cmd.Seat, err)
		return
	}
	d.em.SendTo(cmd.Seat, EventValidTargets, validTargetsData{
		UnitID: cmd.UnitID, AttackType: cmd.AttackType, Targets: targets,
	})
}

// ForceEndTurn is the turn-timer expiry path. A dangling reaction
// window resolves as a pass first.
func (d *Dispatcher) ForceEndTurn() {
	st := d.state
	if st.Finished() {
		return
	}
	if st.Reaction.Open {
		st.AppendLog(st.Reaction.ReactingSeat, "pass_reaction", "timer")
		d.resolvePending()
		if st.Finished() {
			return
		}
	}
	switch st.Phase {
	case hexgame.PhaseDraw, hexgame.PhaseMain:
		d.endTurn(st.ActiveSeat)
	case hexgame.PhaseSetupTiles:
		d.Handle(hexgame.Command{Type: hexgame.CmdEndTilePlacement, Seat: st.ActiveSeat})
	}
}

// Forfeit ends the match against a seat, for disconnects and idle
// timeouts.
func (d *Dispatcher) Forfeit(seat hexgame.Seat, reason string) {
	if d.state.Finished() {
		return
	}
	d.finish(&hexgame.Result{Winner: seat.Opponent(), Reason: reason})
}

// checkEnd emits siege status changes and settles the match when a win
// condition holds. Returns true once the match is over.
func (d *Dispatcher) checkEnd() bool {
	st := d.state
	for _, seat := range hexgame.Seats {
		count := hexgame.SiegeCount(st, seat)
		if count != d.lastSiege[seat] && (count > 0 || d.lastSiege[seat] > 0) {
			d.em.Broadcast(EventSiegeUpdate, hexgame.SiegeStatus{
				Seat: seat, EnemyUnits: count, Threshold: hexgame.SiegeUnitCount,
			})
		}
		d.lastSiege[seat] = count
	}
	if res := hexgame.CheckWin(st); res != nil {
		d.finish(res)
		return true
	}
	return false
}

func (d *Dispatcher) finish(res *hexgame.Result) {
	st := d.state
	st.Result = res
	st.AppendLog(res.Winner, "game_over", res.Reason)
	d.log.Info().Str("winner", string(res.Winner)).Str("reason", res.Reason).Msg("match finished")
	d.em.Broadcast(EventGameOver, gameOverData{Winner: res.Winner, Reason: res.Reason})
	d.em.BroadcastState()
}

func (d *Dispatcher) emitPhase() {
	st := d.state
	d.em.Broadcast(EventPhaseChange, phaseChangeData{
		Phase: st.Phase, ActiveSeat: st.ActiveSeat, Round: st.Round,
	})
}

func (d *Dispatcher) sendRuleError(seat hexgame.Seat, err error) {
	if re, ok := err.(*hexgame.RuleError); ok {
		d.em.SendTo(seat, EventError, errorData{Code: re.Code, Message: re.Message})
		return
	}
	d.em.SendTo(seat, EventError, errorData{Code: "internal", Message: err.Error()})
}

func (d *Dispatcher) sendError(seat hexgame.Seat, code, message string) {
	d.em.SendTo(seat, EventError, errorData{Code: code, Message: message})
}

// tileVisibleToAll reports whether the tile is already globally
// revealed; used to decide whether a fog_reveal is due.
func tileVisibleToAll(st *hexgame.MatchState, tileID string) bool {
	t := st.Tiles[tileID]
	return t != nil && t.Revealed
}

func containsTile(tiles []string, id string) bool {
	for _, t := range tiles {
		if t == id {
			return true
		}
	}
	return false
}
