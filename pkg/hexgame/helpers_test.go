package hexgame

import "testing"

// scriptRoller returns a fixed sequence of rolls, repeating the last.
type scriptRoller struct {
	rolls []int
	i     int
}

func (r *scriptRoller) Roll() int {
	if r.i >= len(r.rolls) {
		return r.rolls[len(r.rolls)-1]
	}
	v := r.rolls[r.i]
	r.i++
	return v
}

// newTestState builds a rows x cols all-neutral board in the main
// phase with p1 active. No empires placed, no decks dealt.
func newTestState(t *testing.T, rows, cols int) *MatchState {
	t.Helper()
	st := NewMatchState("alice", "bob")
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := TileID(r, c)
			st.Tiles[id] = &Tile{ID: id, Type: Neutral}
		}
	}
	st.Phase = PhaseMain
	st.ActiveSeat = SeatP1
	st.Round = 3
	return st
}

// addUnit places a unit instance directly, bypassing deploy rules.
func addUnit(t *testing.T, st *MatchState, owner Seat, cardID, tileID string) *Unit {
	t.Helper()
	card, ok := Lookup(cardID)
	if !ok || card.Kind != KindUnit {
		t.Fatalf("bad test card %s", cardID)
	}
	u := &Unit{
		ID:     st.MintID("u"),
		CardID: cardID,
		Owner:  owner,
		TileID: tileID,
		HP:     card.Unit.HP,
	}
	st.PlaceUnit(u)
	return u
}

// addStructure places a structure instance directly.
func addStructure(t *testing.T, st *MatchState, owner Seat, cardID, tileID string) *Structure {
	t.Helper()
	s := &Structure{
		ID:     st.MintID("s"),
		CardID: cardID,
		Owner:  owner,
		TileID: tileID,
		HP:     StructureMaxHP,
	}
	st.PlaceStructure(s)
	return s
}

func containsString(set []string, want string) bool {
	for _, s := range set {
		if s == want {
			return true
		}
	}
	return false
}

func containsTarget(set []TargetRef, id string) bool {
	for _, t := range set {
		if t.ID == id {
			return true
		}
	}
	return false
}

// checkOccupancy asserts invariant: every tile occupant id points to
// an instance whose TileID is that tile, and every instance appears on
// its own tile.
func checkOccupancy(t *testing.T, st *MatchState) {
	t.Helper()
	for tileID, tile := range st.Tiles {
		for _, id := range tile.OccupiedBy {
			if seat, ok := ParseEmpireToken(id); ok {
				if e := st.Empires[seat]; e == nil || !e.Placed || e.TileID != tileID {
					t.Errorf("tile %s lists empire %s but empire is elsewhere", tileID, id)
				}
				continue
			}
			if u, ok := st.Units[id]; ok {
				if u.TileID != tileID {
					t.Errorf("tile %s lists unit %s but unit is on %s", tileID, id, u.TileID)
				}
				continue
			}
			if s, ok := st.Structures[id]; ok {
				if s.TileID != tileID {
					t.Errorf("tile %s lists structure %s but structure is on %s", tileID, id, s.TileID)
				}
				continue
			}
			if b, ok := st.Builders[id]; ok {
				if b.TileID != tileID {
					t.Errorf("tile %s lists builder %s but builder is on %s", tileID, id, b.TileID)
				}
				continue
			}
			t.Errorf("tile %s lists unknown occupant %s", tileID, id)
		}
	}
	for id, u := range st.Units {
		if u.HP <= 0 {
			t.Errorf("dead unit %s still present", id)
		}
		if tile := st.Tiles[u.TileID]; tile == nil || !containsString(tile.OccupiedBy, id) {
			t.Errorf("unit %s not listed on its tile %s", id, u.TileID)
		}
	}
}
