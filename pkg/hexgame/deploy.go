package hexgame

// DeployUnit plays a unit card from hand onto a spawn tile. Units
// deployed after the opening rounds enter play under development rest.
func DeployUnit(st *MatchState, seat Seat, cardID, spawnTileID string) (*Unit, error) {
	card, ok := Lookup(cardID)
	if !ok || card.Kind != KindUnit {
		return nil, ruleErr(CodeUnknownCard, "no unit card %s", cardID)
	}
	p := st.Players[seat]
	if !inHand(p, cardID) {
		return nil, ruleErr(CodeNotInHand, "%s is not in hand", cardID)
	}
	if !CanAfford(p.Essence, card.Cost, card.Element) {
		return nil, ruleErr(CodeInsufficientEssence, "need %d %s essence", card.Cost, card.Element)
	}
	if err := CanSpawnAt(st, seat, spawnTileID); err != nil {
		return nil, err
	}

	if err := Spend(&p.Essence, card.Cost, card.Element); err != nil {
		return nil, err
	}
	removeFromHand(p, cardID)

	u := &Unit{
		ID:                     st.MintID("u"),
		CardID:                 cardID,
		Owner:                  seat,
		TileID:                 spawnTileID,
		HP:                     card.Unit.HP,
		DevelopmentRest:        st.Round > NoDevRestRounds,
		CannotBeRangedTargeted: card.Unit.AbilityID == AbilityStealth,
	}
	st.PlaceUnit(u)
	st.Reveal(spawnTileID)
	return u, nil
}

// DeployStructure plays a structure card from hand. The tile's element
// must match the card's placement restriction, and the tile must be in
// the seat's spawn reach.
func DeployStructure(st *MatchState, seat Seat, cardID, tileID string) (*Structure, error) {
	card, ok := Lookup(cardID)
	if !ok || card.Kind != KindStructure {
		return nil, ruleErr(CodeUnknownCard, "no structure card %s", cardID)
	}
	p := st.Players[seat]
	if !inHand(p, cardID) {
		return nil, ruleErr(CodeNotInHand, "%s is not in hand", cardID)
	}
	if !CanAfford(p.Essence, card.Cost, card.Element) {
		return nil, ruleErr(CodeInsufficientEssence, "need %d %s essence", card.Cost, card.Element)
	}
	t, exists := st.Tiles[tileID]
	if !exists {
		return nil, ruleErr(CodeInvalidTile, "no tile %s", tileID)
	}
	if t.Type != card.Structure.Placement {
		return nil, ruleErr(CodeInvalidPlacement, "%s requires a %s tile", cardID, card.Structure.Placement)
	}
	if st.Occupied(tileID) {
		return nil, ruleErr(CodeTileOccupied, "tile %s is occupied", tileID)
	}
	if !nearSpawnSource(st, seat, tileID) {
		return nil, ruleErr(CodeInvalidSpawn, "tile %s is not near your empire or structures", tileID)
	}

	if err := Spend(&p.Essence, card.Cost, card.Element); err != nil {
		return nil, err
	}
	removeFromHand(p, cardID)

	s := &Structure{
		ID:     st.MintID("s"),
		CardID: cardID,
		Owner:  seat,
		TileID: tileID,
		HP:     StructureMaxHP,
	}
	st.PlaceStructure(s)
	st.Reveal(tileID)
	return s, nil
}

// StructureReveals returns the tiles newly revealed by a structure's
// effect, if it has one.
func StructureReveals(st *MatchState, s *Structure) []string {
	card := MustLookup(s.CardID)
	if card.Structure.EffectID != EffectRevealAdjacent {
		return nil
	}
	var revealed []string
	for _, adj := range Adjacent(s.TileID) {
		if st.Reveal(adj) {
			revealed = append(revealed, adj)
		}
	}
	return revealed
}

// UseTerraform strips the unit's own tile back to neutral. Once per
// game per unit.
func UseTerraform(st *MatchState, seat Seat, unitID string) (TileRetype, error) {
	u, ok := st.Units[unitID]
	if !ok {
		return TileRetype{}, ruleErr(CodeNoSuchInstance, "unknown unit %s", unitID)
	}
	if u.Owner != seat {
		return TileRetype{}, ruleErr(CodeNotOwner, "%s is not your unit", unitID)
	}
	card := MustLookup(u.CardID)
	if card.Unit.AbilityID != AbilityTerraform {
		return TileRetype{}, ruleErr(CodeAbilityUnavailable, "%s cannot terraform", unitID)
	}
	if u.TerraformUsed {
		return TileRetype{}, ruleErr(CodeAbilityUnavailable, "terraform already used")
	}
	t := st.Tiles[u.TileID]
	if t == nil || t.Type == Neutral {
		return TileRetype{}, ruleErr(CodeInvalidTarget, "tile is already neutral")
	}
	t.Type = Neutral
	u.TerraformUsed = true
	return TileRetype{TileID: t.ID, Type: Neutral}, nil
}

// RunStandby is the engine-immediate standby step for a seat: rebuild
// the essence pool, clear per-turn flags and bonuses, and age out
// development rest on the seat's units.
func RunStandby(st *MatchState, seat Seat) {
	Recalculate(st, seat)
	for _, u := range st.Units {
		if u.Owner != seat {
			continue
		}
		u.HasMoved = false
		u.HasAttacked = false
		u.SpeedBonus = 0
		u.DefenseBonus = 0
		u.MeleeBonus = 0
		u.DevelopmentRest = false
	}
}
