package match

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/emberfall/server/pkg/hexgame"
)

func newFoggyState(t *testing.T) *hexgame.MatchState {
	t.Helper()
	st := hexgame.NewMatchState("alice", "bob")
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			id := tid(r, c)
			st.Tiles[id] = &hexgame.Tile{ID: id, Type: hexgame.Neutral, PlacedBy: hexgame.SeatP1}
		}
	}
	st.Phase = hexgame.PhaseMain
	st.ActiveSeat = hexgame.SeatP1
	st.Round = 2
	return st
}

func TestViewHidesOpponentHand(t *testing.T) {
	st := newFoggyState(t)
	st.Players[hexgame.SeatP1].Hand = []string{"u_militia", "b_firebolt"}
	st.Players[hexgame.SeatP2].Hand = []string{"u_golem"}

	view := BuildView(st, hexgame.SeatP2)
	if len(view.You.Hand) != 1 || view.You.Hand[0] != "u_golem" {
		t.Errorf("own hand = %v", view.You.Hand)
	}
	if view.Opponent.HandSize != 2 {
		t.Errorf("opponent hand size = %d, want 2", view.Opponent.HandSize)
	}

	data, err := json.Marshal(view)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("u_militia")) || bytes.Contains(data, []byte("b_firebolt")) {
		t.Error("opponent card ids leaked into the serialized view")
	}
}

func TestViewHidesUnrevealedTileTypesFromNonPlacer(t *testing.T) {
	st := newFoggyState(t)
	st.Tiles["r1c1"].Type = hexgame.Fire // placed by p1, unrevealed

	placer := BuildView(st, hexgame.SeatP1)
	if placer.Tiles["r1c1"].Type != hexgame.Fire {
		t.Error("placer cannot see its own tile type")
	}

	other := BuildView(st, hexgame.SeatP2)
	if other.Tiles["r1c1"].Type != "" {
		t.Errorf("unrevealed tile type %q leaked to the opponent", other.Tiles["r1c1"].Type)
	}

	st.Reveal("r1c1")
	other = BuildView(st, hexgame.SeatP2)
	if other.Tiles["r1c1"].Type != hexgame.Fire {
		t.Error("revealed tile type still hidden")
	}
}

func TestViewHidesPiecesOnUnseenTiles(t *testing.T) {
	st := newFoggyState(t)
	// p2's scout sits on a tile p1 placed but never revealed: p1 sees
	// the tile, p2 sees its own unit, p1 must not see the unit.
	// Flip placement so the tile belongs to p2's half of the fog.
	st.Tiles["r2c2"].PlacedBy = hexgame.SeatP2
	u := &hexgame.Unit{ID: "u-9", CardID: "u_scout", Owner: hexgame.SeatP2, TileID: "r2c2", HP: 2}
	st.PlaceUnit(u)

	mine := BuildView(st, hexgame.SeatP2)
	if _, ok := mine.Units["u-9"]; !ok {
		t.Fatal("owner cannot see its own unit")
	}

	theirs := BuildView(st, hexgame.SeatP1)
	if _, ok := theirs.Units["u-9"]; ok {
		t.Error("unit on an unseen tile leaked to the opponent")
	}
	if theirs.Tiles["r2c2"].OccupiedBy != nil {
		t.Error("occupancy of an unseen tile leaked")
	}

	st.Reveal("r2c2")
	theirs = BuildView(st, hexgame.SeatP1)
	if _, ok := theirs.Units["u-9"]; !ok {
		t.Error("unit on a revealed tile still hidden")
	}
}

func TestViewShowsDeckAndDiscardSizes(t *testing.T) {
	st := newFoggyState(t)
	p2 := st.Players[hexgame.SeatP2]
	p2.UnitDeck = []string{"u_golem", "u_militia"}
	p2.BlitzDeck = []string{"b_scry"}
	p2.Discard = []string{"b_firebolt"}

	view := BuildView(st, hexgame.SeatP1)
	if view.Opponent.UnitDeckSize != 2 || view.Opponent.BlitzDeckSize != 1 || view.Opponent.DiscardSize != 1 {
		t.Errorf("opponent sizes = %+v", view.Opponent)
	}
}

// A serialized view survives a decode/encode round trip unchanged, so
// a client can rebuild its whole picture from any single state_update.
func TestViewJSONRoundTrip(t *testing.T) {
	st := newFoggyState(t)
	st.PlaceEmpireMarker(hexgame.SeatP1, "r0c0")
	st.Reveal("r0c0")
	placeUnit(st, hexgame.SeatP1, "u_militia", "r1c1")
	st.Players[hexgame.SeatP1].Hand = []string{"b_scry"}
	st.Players[hexgame.SeatP1].Essence = hexgame.EssencePool{Neutral: 2, Fire: 1}

	for _, seat := range hexgame.Seats {
		first, err := json.Marshal(BuildView(st, seat))
		if err != nil {
			t.Fatal(err)
		}
		var decoded StateView
		if err := json.Unmarshal(first, &decoded); err != nil {
			t.Fatal(err)
		}
		second, err := json.Marshal(decoded)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("%s view round trip diverged:\n%s\n%s", seat, first, second)
		}
	}
}
