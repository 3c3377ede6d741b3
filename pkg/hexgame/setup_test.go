package hexgame

import "testing"

func TestPlaceSetupTileBudgets(t *testing.T) {
	st := NewMatchState("alice", "bob")
	p := st.Players[SeatP1]
	p.NeutralTilesLeft = 1
	p.ElementalTilesLeft = 1

	if err := PlaceSetupTile(st, SeatP1, "r0c0", Neutral); err != nil {
		t.Fatalf("PlaceSetupTile: %v", err)
	}
	if err := PlaceSetupTile(st, SeatP1, "r0c1", Neutral); err == nil {
		t.Error("neutral tile accepted past the budget")
	}
	if err := PlaceSetupTile(st, SeatP1, "r0c1", Fire); err != nil {
		t.Fatalf("PlaceSetupTile: %v", err)
	}
	if err := PlaceSetupTile(st, SeatP1, "r0c2", Water); err == nil {
		t.Error("elemental tile accepted past the budget")
	}
}

func TestPlaceSetupTileConnectivity(t *testing.T) {
	st := NewMatchState("alice", "bob")
	if err := PlaceSetupTile(st, SeatP1, "r2c2", Neutral); err != nil {
		t.Fatalf("first tile: %v", err)
	}
	if err := PlaceSetupTile(st, SeatP1, "r0c0", Neutral); err == nil {
		t.Error("disconnected tile accepted")
	}
	if err := PlaceSetupTile(st, SeatP1, "r2c3", Fire); err != nil {
		t.Errorf("adjacent tile rejected: %v", err)
	}
	if err := PlaceSetupTile(st, SeatP1, "r2c3", Neutral); err == nil {
		t.Error("duplicate tile accepted")
	}
	if err := PlaceSetupTile(st, SeatP1, "xyz", Neutral); err == nil {
		t.Error("malformed tile id accepted")
	}
	if err := PlaceSetupTile(st, SeatP1, "r2c4", "lava"); err == nil {
		t.Error("unknown tile type accepted")
	}
}

func TestPlaceEmpire(t *testing.T) {
	st := newTestState(t, 4, 4)
	if err := PlaceEmpire(st, SeatP1, "r9c9"); err == nil {
		t.Error("empire placed on missing tile")
	}
	if err := PlaceEmpire(st, SeatP1, "r1c1"); err != nil {
		t.Fatalf("PlaceEmpire: %v", err)
	}
	if !st.Tiles["r1c1"].Revealed {
		t.Error("empire tile not revealed")
	}
	if err := PlaceEmpire(st, SeatP1, "r2c2"); err == nil {
		t.Error("second empire placement accepted")
	}
	if err := PlaceEmpire(st, SeatP2, "r1c1"); err == nil {
		t.Error("empire placed on occupied tile")
	}
	checkOccupancy(t, st)
}

func TestPlaceBuilderRequiresElementalTile(t *testing.T) {
	st := newTestState(t, 4, 4)
	st.PlaceEmpireMarker(SeatP1, "r1c1")

	if _, err := PlaceBuilderAt(st, SeatP1, "r1c2"); err == nil {
		t.Error("builder placed on neutral tile")
	}
	st.Tiles["r1c2"].Type = Fire
	b, err := PlaceBuilderAt(st, SeatP1, "r1c2")
	if err != nil {
		t.Fatalf("PlaceBuilderAt: %v", err)
	}
	if b.TileID != "r1c2" || !st.Tiles["r1c2"].Revealed {
		t.Errorf("builder = %+v, tile revealed = %v", b, st.Tiles["r1c2"].Revealed)
	}

	// Out of spawn reach.
	st.Tiles["r3c3"].Type = Water
	if _, err := PlaceBuilderAt(st, SeatP1, "r3c3"); err == nil {
		t.Error("builder placed outside spawn reach")
	}
}

func TestInitDecksAndOpeningHand(t *testing.T) {
	st := NewMatchState("alice", "bob")
	InitDecks(st, NewRand(42))

	for _, seat := range Seats {
		p := st.Players[seat]
		if got := len(p.Hand); got != OpeningUnitCards+OpeningBlitzCards {
			t.Errorf("%s hand = %d cards, want %d", seat, got, OpeningUnitCards+OpeningBlitzCards)
		}
		if got := len(p.UnitDeck); got != len(defaultUnitDeck)-OpeningUnitCards {
			t.Errorf("%s unit deck = %d, want %d", seat, got, len(defaultUnitDeck)-OpeningUnitCards)
		}
		for _, id := range p.Hand {
			if _, ok := Lookup(id); !ok {
				t.Errorf("hand card %s not in catalog", id)
			}
		}
	}
}

func TestInitDecksDeterministicBySeed(t *testing.T) {
	a := NewMatchState("alice", "bob")
	b := NewMatchState("alice", "bob")
	InitDecks(a, NewRand(7))
	InitDecks(b, NewRand(7))

	for _, seat := range Seats {
		ah, bh := a.Players[seat].Hand, b.Players[seat].Hand
		for i := range ah {
			if ah[i] != bh[i] {
				t.Fatalf("%s hands differ under same seed: %v vs %v", seat, ah, bh)
			}
		}
	}
}

func TestDrawCard(t *testing.T) {
	st := NewMatchState("alice", "bob")
	p := st.Players[SeatP1]
	p.UnitDeck = []string{"u_militia", "u_scout"}
	p.BlitzDeck = []string{"b_firebolt"}

	card, err := DrawCard(st, SeatP1, "unit")
	if err != nil || card != "u_militia" {
		t.Fatalf("DrawCard = %q, %v", card, err)
	}
	if len(p.Hand) != 1 || len(p.UnitDeck) != 1 {
		t.Errorf("hand=%v deck=%v after draw", p.Hand, p.UnitDeck)
	}

	if _, err := DrawCard(st, SeatP1, "extra"); err == nil {
		t.Error("unknown deck accepted")
	}

	DrawCard(st, SeatP1, "blitz")
	if _, err := DrawCard(st, SeatP1, "blitz"); err == nil {
		t.Error("draw from empty deck accepted")
	}
}
