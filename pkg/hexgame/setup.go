package hexgame

// Setup-time operations: tile placement, empire placement, deck
// preparation. Phase gating lives in the dispatcher; these enforce the
// board rules only.

// PlaceSetupTile adds one tile during the tile-placement sub-phase.
// The tile budget is per seat; elemental tiles draw from a smaller
// allowance. After the first tile, new tiles must touch the board.
func PlaceSetupTile(st *MatchState, seat Seat, tileID string, tileType Element) error {
	if _, _, ok := ParseTileID(tileID); !ok {
		return ruleErr(CodeInvalidTile, "malformed tile id %s", tileID)
	}
	if _, exists := st.Tiles[tileID]; exists {
		return ruleErr(CodeTileOccupied, "tile %s already placed", tileID)
	}
	switch tileType {
	case Neutral, Fire, Water:
	default:
		return ruleErr(CodeInvalidPlacement, "unknown tile type %q", tileType)
	}

	p := st.Players[seat]
	if tileType == Neutral {
		if p.NeutralTilesLeft <= 0 {
			return ruleErr(CodeNoTilesLeft, "no neutral tiles left")
		}
	} else if p.ElementalTilesLeft <= 0 {
		return ruleErr(CodeNoTilesLeft, "no elemental tiles left")
	}

	if len(st.Tiles) > 0 && !touchesBoard(st, tileID) {
		return ruleErr(CodeInvalidPlacement, "tile %s does not touch the board", tileID)
	}

	st.Tiles[tileID] = &Tile{ID: tileID, Type: tileType, PlacedBy: seat}
	if tileType == Neutral {
		p.NeutralTilesLeft--
	} else {
		p.ElementalTilesLeft--
	}
	return nil
}

func touchesBoard(st *MatchState, tileID string) bool {
	for _, adj := range Adjacent(tileID) {
		if _, ok := st.Tiles[adj]; ok {
			return true
		}
	}
	return false
}

// PlaceEmpire puts a seat's empire marker during the empire sub-phase.
// Placing reveals the tile.
func PlaceEmpire(st *MatchState, seat Seat, tileID string) error {
	e := st.Empires[seat]
	if e.Placed {
		return ruleErr(CodeInvalidPlacement, "empire already placed")
	}
	if _, exists := st.Tiles[tileID]; !exists {
		return ruleErr(CodeInvalidTile, "no tile %s", tileID)
	}
	if st.Occupied(tileID) {
		return ruleErr(CodeTileOccupied, "tile %s is occupied", tileID)
	}
	st.PlaceEmpireMarker(seat, tileID)
	st.Reveal(tileID)
	return nil
}

// PlaceBuilderAt puts a builder on an elemental tile the seat can
// spawn on.
func PlaceBuilderAt(st *MatchState, seat Seat, tileID string) (*Builder, error) {
	t, exists := st.Tiles[tileID]
	if !exists {
		return nil, ruleErr(CodeInvalidTile, "no tile %s", tileID)
	}
	if t.Type == Neutral {
		return nil, ruleErr(CodeInvalidPlacement, "builders require an elemental tile")
	}
	if st.Occupied(tileID) {
		return nil, ruleErr(CodeTileOccupied, "tile %s is occupied", tileID)
	}
	if !nearSpawnSource(st, seat, tileID) {
		return nil, ruleErr(CodeInvalidSpawn, "tile %s is not near your empire or structures", tileID)
	}
	b := &Builder{ID: st.MintID("b"), Owner: seat, TileID: tileID}
	st.PlaceBuilder(b)
	st.Reveal(tileID)
	return b, nil
}

// InitDecks deals both seats the stock decks, shuffled with the match
// randomness, and draws the opening hand. Called once when setup
// completes.
func InitDecks(st *MatchState, r *Rand) {
	for _, seat := range Seats {
		p := st.Players[seat]
		p.UnitDeck = append([]string(nil), defaultUnitDeck...)
		p.BlitzDeck = append([]string(nil), defaultBlitzDeck...)
		p.ExtraDeck = append([]string(nil), defaultExtraDeck...)
		r.Shuffle(p.UnitDeck)
		r.Shuffle(p.BlitzDeck)

		for i := 0; i < OpeningUnitCards; i++ {
			drawFrom(&p.UnitDeck, &p.Hand)
		}
		for i := 0; i < OpeningBlitzCards; i++ {
			drawFrom(&p.BlitzDeck, &p.Hand)
		}
	}
}

// DrawCard moves the top card of the named deck into the seat's hand.
func DrawCard(st *MatchState, seat Seat, deck string) (string, error) {
	p := st.Players[seat]
	var src *[]string
	switch deck {
	case "unit":
		src = &p.UnitDeck
	case "blitz":
		src = &p.BlitzDeck
	default:
		return "", ruleErr(CodeInvalidPlacement, "unknown deck %q", deck)
	}
	if len(*src) == 0 {
		return "", ruleErr(CodeDeckEmpty, "%s deck is empty", deck)
	}
	return drawFrom(src, &p.Hand), nil
}

func drawFrom(deck, hand *[]string) string {
	if len(*deck) == 0 {
		return ""
	}
	card := (*deck)[0]
	*deck = (*deck)[1:]
	*hand = append(*hand, card)
	return card
}
