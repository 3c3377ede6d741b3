package hexgame

import (
	"fmt"
	"strings"
	"time"
)

// Seat identifies one of the two player slots.
type Seat string

const (
	SeatP1 Seat = "p1"
	SeatP2 Seat = "p2"
)

// Seats lists both seats in acting order.
var Seats = []Seat{SeatP1, SeatP2}

// Opponent returns the other seat.
func (s Seat) Opponent() Seat {
	if s == SeatP1 {
		return SeatP2
	}
	return SeatP1
}

// Valid reports whether s is one of the two seats.
func (s Seat) Valid() bool {
	return s == SeatP1 || s == SeatP2
}

// Phase is the per-turn state machine position.
type Phase string

const (
	PhaseSetupTiles  Phase = "setup_tiles"
	PhaseSetupEmpire Phase = "setup_empire"
	PhaseStandby     Phase = "standby"
	PhaseDraw        Phase = "draw"
	PhaseMain        Phase = "main"
	PhaseEnd         Phase = "end"
)

// Game constants.
const (
	EmpireMaxHP      = 20
	StructureMaxHP   = 10
	CaptureThreshold = 2
	SiegeUnitCount   = 5

	// Units deployed while the round counter is at or below this value
	// skip development rest.
	NoDevRestRounds = 2

	// Per-seat tile placement budget during setup.
	SetupNeutralTiles   = 10
	SetupElementalTiles = 3

	// Opening hand dealt when setup completes.
	OpeningUnitCards  = 3
	OpeningBlitzCards = 2
)

// EmpireToken returns the target token for a seat's empire marker.
func EmpireToken(seat Seat) string {
	return "empire:" + string(seat)
}

// ParseEmpireToken extracts the seat from an "empire:{seat}" token.
func ParseEmpireToken(token string) (Seat, bool) {
	rest, ok := strings.CutPrefix(token, "empire:")
	if !ok {
		return "", false
	}
	seat := Seat(rest)
	return seat, seat.Valid()
}

// Tile is one board hex. Tiles are never destroyed, only re-typed.
type Tile struct {
	ID       string  `json:"id"`
	Type     Element `json:"type"`
	Revealed bool    `json:"revealed"`
	PlacedBy Seat    `json:"placedBy"`
	// OccupiedBy holds the instance ids (or empire token) on this tile.
	// At most one occupant, except a tiny unit may share with one other
	// unit.
	OccupiedBy []string `json:"occupiedBy,omitempty"`
}

// Unit is a live unit instance on the board.
type Unit struct {
	ID     string `json:"id"`
	CardID string `json:"cardId"`
	Owner  Seat   `json:"owner"`
	TileID string `json:"tileId"`
	HP     int    `json:"hp"`

	DevelopmentRest bool `json:"developmentRest"`
	HasMoved        bool `json:"hasMoved"`
	HasAttacked     bool `json:"hasAttacked"`

	CannotBeRangedTargeted bool `json:"cannotBeRangedTargeted"`

	// Per-turn bonuses, cleared at the owner's standby.
	SpeedBonus   int `json:"speedBonus,omitempty"`
	DefenseBonus int `json:"defenseBonus,omitempty"`
	MeleeBonus   int `json:"meleeBonus,omitempty"`

	// Once-per-game flags persist across turns.
	TerraformUsed bool `json:"terraformUsed,omitempty"`
}

// Structure is a placed, capturable board piece.
type Structure struct {
	ID              string `json:"id"`
	CardID          string `json:"cardId"`
	Owner           Seat   `json:"owner"`
	TileID          string `json:"tileId"`
	HP              int    `json:"hp"`
	CaptureProgress int    `json:"captureProgress"`
}

// Builder is a seat-owned marker on an elemental tile; grants +1
// essence of the tile's element each standby.
type Builder struct {
	ID     string `json:"id"`
	Owner  Seat   `json:"owner"`
	TileID string `json:"tileId"`
}

// Empire is a seat's primary piece and principal win target.
type Empire struct {
	Owner  Seat   `json:"owner"`
	TileID string `json:"tileId"`
	HP     int    `json:"hp"`
	Placed bool   `json:"placed"`
}

// EssencePool holds the three spendable buckets.
type EssencePool struct {
	Neutral int `json:"neutral"`
	Fire    int `json:"fire"`
	Water   int `json:"water"`
}

// Total returns the sum of all buckets.
func (p EssencePool) Total() int {
	return p.Neutral + p.Fire + p.Water
}

// Player is one seat's non-board state.
type Player struct {
	Seat Seat   `json:"seat"`
	Name string `json:"name"`

	UnitDeck  []string `json:"unitDeck"`
	BlitzDeck []string `json:"blitzDeck"`
	ExtraDeck []string `json:"extraDeck"`
	Hand      []string `json:"hand"`
	Discard   []string `json:"discard"`

	Essence EssencePool `json:"essence"`

	// Setup bookkeeping.
	NeutralTilesLeft   int  `json:"neutralTilesLeft"`
	ElementalTilesLeft int  `json:"elementalTilesLeft"`
	TilePlacementDone  bool `json:"tilePlacementDone"`
}

// ReactionWindow is the dispatcher state while a blitz is pending.
type ReactionWindow struct {
	Open          bool   `json:"open"`
	ReactingSeat  Seat   `json:"reactingSeat,omitempty"`
	PendingSeat   Seat   `json:"pendingSeat,omitempty"`
	PendingCard   string `json:"pendingCard,omitempty"`
	PendingTarget string `json:"pendingTarget,omitempty"`
}

// LogEntry is one line of the append-only match log.
type LogEntry struct {
	Round  int       `json:"round"`
	Seat   Seat      `json:"seat"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// Result records how the match ended.
type Result struct {
	Winner Seat   `json:"winner"`
	Reason string `json:"reason"` // empire_destroyed, siege, forfeit, timeout, concede
}

// Win reasons.
const (
	ReasonEmpireDestroyed = "empire_destroyed"
	ReasonSiege           = "siege"
	ReasonForfeit         = "forfeit"
	ReasonTimeout         = "timeout"
	ReasonConcede         = "concede"
)

// MatchState is the full authoritative snapshot. It owns every
// instance; entities reference each other by id only. Only the match
// dispatcher writes it.
type MatchState struct {
	Players    map[Seat]*Player      `json:"players"`
	Tiles      map[string]*Tile      `json:"tiles"`
	Units      map[string]*Unit      `json:"units"`
	Structures map[string]*Structure `json:"structures"`
	Builders   map[string]*Builder   `json:"builders"`
	Empires    map[Seat]*Empire      `json:"empires"`

	Phase      Phase   `json:"phase"`
	ActiveSeat Seat    `json:"activeSeat"`
	Round      int     `json:"round"`
	Result     *Result `json:"result,omitempty"`

	Reaction ReactionWindow `json:"reaction"`
	Log      []LogEntry     `json:"log"`

	NextID int `json:"nextId"`
}

// NewMatchState returns the empty pre-setup state with the first seat
// active for tile placement.
func NewMatchState(p1Name, p2Name string) *MatchState {
	st := &MatchState{
		Players:    make(map[Seat]*Player, 2),
		Tiles:      make(map[string]*Tile),
		Units:      make(map[string]*Unit),
		Structures: make(map[string]*Structure),
		Builders:   make(map[string]*Builder),
		Empires:    make(map[Seat]*Empire, 2),
		Phase:      PhaseSetupTiles,
		ActiveSeat: SeatP1,
		Round:      1,
		NextID:     1,
	}
	names := map[Seat]string{SeatP1: p1Name, SeatP2: p2Name}
	for _, seat := range Seats {
		st.Players[seat] = &Player{
			Seat:               seat,
			Name:               names[seat],
			NeutralTilesLeft:   SetupNeutralTiles,
			ElementalTilesLeft: SetupElementalTiles,
		}
		st.Empires[seat] = &Empire{Owner: seat, HP: EmpireMaxHP}
	}
	return st
}

// MintID returns a fresh instance id, monotonic within the match.
func (st *MatchState) MintID(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, st.NextID)
	st.NextID++
	return id
}

// Finished reports whether the match has resolved.
func (st *MatchState) Finished() bool {
	return st.Result != nil
}

// UnitsAt returns the units standing on a tile.
func (st *MatchState) UnitsAt(tileID string) []*Unit {
	var out []*Unit
	for _, u := range st.Units {
		if u.TileID == tileID {
			out = append(out, u)
		}
	}
	return out
}

// StructureAt returns the structure on a tile, or nil.
func (st *MatchState) StructureAt(tileID string) *Structure {
	for _, s := range st.Structures {
		if s.TileID == tileID {
			return s
		}
	}
	return nil
}

// BuilderAt returns the builder on a tile, or nil.
func (st *MatchState) BuilderAt(tileID string) *Builder {
	for _, b := range st.Builders {
		if b.TileID == tileID {
			return b
		}
	}
	return nil
}

// EmpireAt returns the empire whose marker sits on a tile, or nil.
func (st *MatchState) EmpireAt(tileID string) *Empire {
	for _, e := range st.Empires {
		if e.Placed && e.TileID == tileID {
			return e
		}
	}
	return nil
}

// Occupied reports whether anything sits on the tile.
func (st *MatchState) Occupied(tileID string) bool {
	t := st.Tiles[tileID]
	return t != nil && len(t.OccupiedBy) > 0
}

// addOccupant and removeOccupant keep the tile back-pointer side of
// every placement consistent. All placement and movement goes through
// these two.

func (st *MatchState) addOccupant(tileID, id string) {
	t := st.Tiles[tileID]
	if t == nil {
		return
	}
	t.OccupiedBy = append(t.OccupiedBy, id)
}

func (st *MatchState) removeOccupant(tileID, id string) {
	t := st.Tiles[tileID]
	if t == nil {
		return
	}
	for i, occ := range t.OccupiedBy {
		if occ == id {
			t.OccupiedBy = append(t.OccupiedBy[:i], t.OccupiedBy[i+1:]...)
			return
		}
	}
}

// PlaceUnit inserts a unit and wires the tile back-pointer.
func (st *MatchState) PlaceUnit(u *Unit) {
	st.Units[u.ID] = u
	st.addOccupant(u.TileID, u.ID)
}

// MoveUnit relocates a unit, keeping both tiles consistent.
func (st *MatchState) MoveUnit(u *Unit, toTileID string) {
	st.removeOccupant(u.TileID, u.ID)
	u.TileID = toTileID
	st.addOccupant(toTileID, u.ID)
}

// RemoveUnit deletes a destroyed unit and clears its tile slot.
func (st *MatchState) RemoveUnit(id string) {
	u, ok := st.Units[id]
	if !ok {
		return
	}
	st.removeOccupant(u.TileID, id)
	delete(st.Units, id)
}

// PlaceStructure inserts a structure and wires the tile back-pointer.
func (st *MatchState) PlaceStructure(s *Structure) {
	st.Structures[s.ID] = s
	st.addOccupant(s.TileID, s.ID)
}

// RemoveStructure deletes a destroyed structure.
func (st *MatchState) RemoveStructure(id string) {
	s, ok := st.Structures[id]
	if !ok {
		return
	}
	st.removeOccupant(s.TileID, id)
	delete(st.Structures, id)
}

// PlaceBuilder inserts a builder and wires the tile back-pointer.
func (st *MatchState) PlaceBuilder(b *Builder) {
	st.Builders[b.ID] = b
	st.addOccupant(b.TileID, b.ID)
}

// PlaceEmpireMarker puts a seat's empire on a tile.
func (st *MatchState) PlaceEmpireMarker(seat Seat, tileID string) {
	e := st.Empires[seat]
	e.TileID = tileID
	e.Placed = true
	st.addOccupant(tileID, EmpireToken(seat))
}

// Reveal marks a tile revealed. Returns true if it was hidden before.
func (st *MatchState) Reveal(tileID string) bool {
	t := st.Tiles[tileID]
	if t == nil || t.Revealed {
		return false
	}
	t.Revealed = true
	return true
}

// AppendLog adds an entry to the append-only match log.
func (st *MatchState) AppendLog(seat Seat, action, detail string) {
	st.Log = append(st.Log, LogEntry{
		Round:  st.Round,
		Seat:   seat,
		Action: action,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}

// Clone returns a deep copy. Mutations to the clone do not affect the
// original; tests use this to diff before/after states.
func (st *MatchState) Clone() *MatchState {
	c := &MatchState{
		Players:    make(map[Seat]*Player, len(st.Players)),
		Tiles:      make(map[string]*Tile, len(st.Tiles)),
		Units:      make(map[string]*Unit, len(st.Units)),
		Structures: make(map[string]*Structure, len(st.Structures)),
		Builders:   make(map[string]*Builder, len(st.Builders)),
		Empires:    make(map[Seat]*Empire, len(st.Empires)),
		Phase:      st.Phase,
		ActiveSeat: st.ActiveSeat,
		Round:      st.Round,
		Reaction:   st.Reaction,
		NextID:     st.NextID,
	}
	for seat, p := range st.Players {
		cp := *p
		cp.UnitDeck = append([]string(nil), p.UnitDeck...)
		cp.BlitzDeck = append([]string(nil), p.BlitzDeck...)
		cp.ExtraDeck = append([]string(nil), p.ExtraDeck...)
		cp.Hand = append([]string(nil), p.Hand...)
		cp.Discard = append([]string(nil), p.Discard...)
		c.Players[seat] = &cp
	}
	for id, t := range st.Tiles {
		ct := *t
		ct.OccupiedBy = append([]string(nil), t.OccupiedBy...)
		c.Tiles[id] = &ct
	}
	for id, u := range st.Units {
		cu := *u
		c.Units[id] = &cu
	}
	for id, s := range st.Structures {
		cs := *s
		c.Structures[id] = &cs
	}
	for id, b := range st.Builders {
		cb := *b
		c.Builders[id] = &cb
	}
	for seat, e := range st.Empires {
		ce := *e
		c.Empires[seat] = &ce
	}
	if st.Result != nil {
		r := *st.Result
		c.Result = &r
	}
	c.Log = append([]LogEntry(nil), st.Log...)
	return c
}
