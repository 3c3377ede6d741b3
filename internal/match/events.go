package match

import (
	"github.com/emberfall/server/pkg/hexgame"
)

// Event types sent to clients. The fan-out layer delivers them per
// seat, in emission order.
const (
	EventGameStart     = "game_start"
	EventStateUpdate   = "state_update"
	EventValidMoves    = "valid_moves"
	EventValidTargets  = "valid_targets"
	EventCombatResult  = "combat_result"
	EventBlitzPlayed   = "blitz_played"
	EventStormUpdate   = "storm_update"
	EventFogReveal     = "fog_reveal"
	EventDrawResult    = "draw_result"
	EventPhaseChange   = "phase_change"
	EventEssenceUpdate = "essence_update"
	EventCaptureUpdate = "capture_update"
	EventSiegeUpdate   = "siege_update"
	EventChatMessage   = "chat_message"
	EventPlayerLeft    = "player_left"
	EventError         = "error"
	EventGameOver      = "game_over"
)

// Event is the envelope for all server-to-client messages.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Emitter is how the dispatcher pushes events out. Implemented by the
// match actor; a no-op version backs the dispatcher tests.
type Emitter interface {
	// Broadcast delivers the same event to both seats.
	Broadcast(evType string, data any)
	// SendTo delivers a private event to one seat.
	SendTo(seat hexgame.Seat, evType string, data any)
	// BroadcastState delivers a per-seat filtered state_update.
	BroadcastState()
}

// TileView is a tile as one seat sees it. The element of an
// unrevealed tile the viewer did not place is withheld.
type TileView struct {
	ID         string          `json:"id"`
	Type       hexgame.Element `json:"type,omitempty"`
	Revealed   bool            `json:"revealed"`
	OccupiedBy []string        `json:"occupiedBy,omitempty"`
}

// SelfView is the viewer's own player state, hidden fields included.
type SelfView struct {
	Seat               hexgame.Seat        `json:"seat"`
	Name               string              `json:"name"`
	Hand               []string            `json:"hand"`
	UnitDeckSize       int                 `json:"unitDeckSize"`
	BlitzDeckSize      int                 `json:"blitzDeckSize"`
	ExtraDeck          []string            `json:"extraDeck"`
	Discard            []string            `json:"discard"`
	Essence            hexgame.EssencePool `json:"essence"`
	NeutralTilesLeft   int                 `json:"neutralTilesLeft"`
	ElementalTilesLeft int                 `json:"elementalTilesLeft"`
	TilePlacementDone  bool                `json:"tilePlacementDone"`
}

// OpponentView is the opponent as the viewer sees them: sizes only,
// never card identities.
type OpponentView struct {
	Seat          hexgame.Seat        `json:"seat"`
	Name          string              `json:"name"`
	HandSize      int                 `json:"handSize"`
	UnitDeckSize  int                 `json:"unitDeckSize"`
	BlitzDeckSize int                 `json:"blitzDeckSize"`
	ExtraDeckSize int                 `json:"extraDeckSize"`
	DiscardSize   int                 `json:"discardSize"`
	Essence       hexgame.EssencePool `json:"essence"`
}

// StateView is the full per-seat snapshot carried by state_update and
// game_start events.
type StateView struct {
	Seat       hexgame.Seat    `json:"seat"`
	Phase      hexgame.Phase   `json:"phase"`
	ActiveSeat hexgame.Seat    `json:"activeSeat"`
	Round      int             `json:"round"`
	Result     *hexgame.Result `json:"result,omitempty"`

	You      SelfView     `json:"you"`
	Opponent OpponentView `json:"opponent"`

	Tiles      map[string]TileView             `json:"tiles"`
	Units      map[string]*hexgame.Unit        `json:"units"`
	Structures map[string]*hexgame.Structure   `json:"structures"`
	Builders   map[string]*hexgame.Builder     `json:"builders"`
	Empires    map[hexgame.Seat]*hexgame.Empire `json:"empires"`

	Reaction hexgame.ReactionWindow `json:"reaction"`
}

// BuildView renders the state for one seat, stripping hidden
// information: the opponent's hand, and anything sitting on tiles the
// viewer has no sight of.
func BuildView(st *hexgame.MatchState, seat hexgame.Seat) StateView {
	me := st.Players[seat]
	opp := st.Players[seat.Opponent()]

	view := StateView{
		Seat:       seat,
		Phase:      st.Phase,
		ActiveSeat: st.ActiveSeat,
		Round:      st.Round,
		Result:     st.Result,
		Reaction:   st.Reaction,
		You: SelfView{
			Seat:               me.Seat,
			Name:               me.Name,
			Hand:               append([]string{}, me.Hand...),
			UnitDeckSize:       len(me.UnitDeck),
			BlitzDeckSize:      len(me.BlitzDeck),
			ExtraDeck:          append([]string{}, me.ExtraDeck...),
			Discard:            append([]string{}, me.Discard...),
			Essence:            me.Essence,
			NeutralTilesLeft:   me.NeutralTilesLeft,
			ElementalTilesLeft: me.ElementalTilesLeft,
			TilePlacementDone:  me.TilePlacementDone,
		},
		Opponent: OpponentView{
			Seat:          opp.Seat,
			Name:          opp.Name,
			HandSize:      len(opp.Hand),
			UnitDeckSize:  len(opp.UnitDeck),
			BlitzDeckSize: len(opp.BlitzDeck),
			ExtraDeckSize: len(opp.ExtraDeck),
			DiscardSize:   len(opp.Discard),
			Essence:       opp.Essence,
		},
		Tiles:      make(map[string]TileView, len(st.Tiles)),
		Units:      make(map[string]*hexgame.Unit),
		Structures: make(map[string]*hexgame.Structure),
		Builders:   make(map[string]*hexgame.Builder),
		Empires:    make(map[hexgame.Seat]*hexgame.Empire),
	}

	for id, t := range st.Tiles {
		visible := t.Revealed || t.PlacedBy == seat
		tv := TileView{ID: id, Revealed: t.Revealed}
		if visible {
			tv.Type = t.Type
			tv.OccupiedBy = append([]string{}, t.OccupiedBy...)
		}
		view.Tiles[id] = tv
	}

	for id, u := range st.Units {
		if u.Owner == seat || tileVisible(st, seat, u.TileID) {
			cu := *u
			view.Units[id] = &cu
		}
	}
	for id, s := range st.Structures {
		if s.Owner == seat || tileVisible(st, seat, s.TileID) {
			cs := *s
			view.Structures[id] = &cs
		}
	}
	for id, b := range st.Builders {
		if b.Owner == seat || tileVisible(st, seat, b.TileID) {
			cb := *b
			view.Builders[id] = &cb
		}
	}
	for owner, e := range st.Empires {
		if !e.Placed {
			continue
		}
		if owner == seat || tileVisible(st, seat, e.TileID) {
			ce := *e
			view.Empires[owner] = &ce
		}
	}
	return view
}

func tileVisible(st *hexgame.MatchState, seat hexgame.Seat, tileID string) bool {
	t := st.Tiles[tileID]
	return t != nil && (t.Revealed || t.PlacedBy == seat)
}

// Payload shapes for the smaller events.

type fogRevealData struct {
	TileID string          `json:"tileId"`
	Type   hexgame.Element `json:"type"`
}

type phaseChangeData struct {
	Phase      hexgame.Phase `json:"phase"`
	ActiveSeat hexgame.Seat  `json:"activeSeat"`
	Round      int           `json:"round"`
}

type essenceUpdateData struct {
	Seat    hexgame.Seat        `json:"seat"`
	Essence hexgame.EssencePool `json:"essence"`
}

type drawResultData struct {
	Deck   string `json:"deck"`
	CardID string `json:"cardId"`
}

type validMovesData struct {
	UnitID string   `json:"unitId"`
	Tiles  []string `json:"tiles"`
}

type validTargetsData struct {
	UnitID     string              `json:"unitId"`
	AttackType string              `json:"attackType"`
	Targets    []hexgame.TargetRef `json:"targets"`
}

type blitzAnnouncedData struct {
	Seat     hexgame.Seat `json:"seat"`
	CardID   string       `json:"cardId"`
	TargetID string       `json:"targetId,omitempty"`
	Pending  bool         `json:"pending"`
}

type blitzResolvedData struct {
	Negated bool                 `json:"negated"`
	Result  *hexgame.BlitzResult `json:"result,omitempty"`
}

type stormUpdateData struct {
	CardID       string               `json:"cardId"`
	RetypedTiles []hexgame.TileRetype `json:"retypedTiles"`
}

type chatMessageData struct {
	Seat hexgame.Seat `json:"seat"`
	Name string       `json:"name"`
	Text string       `json:"text"`
}

type playerLeftData struct {
	Seat            hexgame.Seat `json:"seat"`
	ReconnectWindow int          `json:"reconnectWindowSeconds"`
}

type errorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type gameOverData struct {
	Winner hexgame.Seat `json:"winner"`
	Reason string       `json:"reason"`
}
