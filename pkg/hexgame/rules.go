package hexgame

// TargetRef identifies an attackable thing and where it stands.
// Empire targets use the "empire:{seat}" token as their id.
type TargetRef struct {
	ID     string `json:"targetId"`
	TileID string `json:"tileId"`
	Kind   string `json:"kind"` // unit, structure, empire
}

// ValidMoves returns the tile ids the unit may move to this turn.
// A unit that has attacked, or is in development rest, cannot move.
func ValidMoves(st *MatchState, unitID string) ([]string, error) {
	u, ok := st.Units[unitID]
	if !ok {
		return nil, ruleErr(CodeNoSuchInstance, "unknown unit %s", unitID)
	}
	if u.DevelopmentRest || u.HasAttacked || u.HasMoved {
		return nil, nil
	}
	card := MustLookup(u.CardID)
	speed := card.Unit.Speed + u.SpeedBonus
	tiny := card.Unit.Size == SizeTiny

	var out []string
	for _, id := range Neighbors(u.TileID, speed) {
		if _, exists := st.Tiles[id]; !exists {
			continue
		}
		if !tileEnterable(st, id, tiny) {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

// tileEnterable applies the occupancy rules for a move or spawn
// destination. Structures, builders and empire markers always block;
// units block unless the mover is tiny.
func tileEnterable(st *MatchState, tileID string, moverTiny bool) bool {
	if st.StructureAt(tileID) != nil || st.BuilderAt(tileID) != nil || st.EmpireAt(tileID) != nil {
		return false
	}
	if len(st.UnitsAt(tileID)) > 0 {
		return moverTiny
	}
	return true
}

// ValidMeleeTargets returns the enemy pieces on tiles adjacent to the
// unit. Empty for units in development rest or that already attacked.
func ValidMeleeTargets(st *MatchState, unitID string) ([]TargetRef, error) {
	u, ok := st.Units[unitID]
	if !ok {
		return nil, ruleErr(CodeNoSuchInstance, "unknown unit %s", unitID)
	}
	if u.DevelopmentRest || u.HasAttacked {
		return nil, nil
	}
	return enemiesOn(st, u.Owner, Adjacent(u.TileID), false), nil
}

// ValidRangedTargets returns enemy pieces within the unit's ranged
// range, excluding units flagged cannotBeRangedTargeted. Units without
// a ranged attack have none.
func ValidRangedTargets(st *MatchState, unitID string) ([]TargetRef, error) {
	u, ok := st.Units[unitID]
	if !ok {
		return nil, ruleErr(CodeNoSuchInstance, "unknown unit %s", unitID)
	}
	if u.DevelopmentRest || u.HasAttacked {
		return nil, nil
	}
	card := MustLookup(u.CardID)
	if card.Unit.RangedRange <= 0 {
		return nil, nil
	}
	return enemiesOn(st, u.Owner, Neighbors(u.TileID, card.Unit.RangedRange), true), nil
}

func enemiesOn(st *MatchState, attacker Seat, tileIDs []string, ranged bool) []TargetRef {
	var out []TargetRef
	for _, id := range tileIDs {
		if _, exists := st.Tiles[id]; !exists {
			continue
		}
		for _, eu := range st.UnitsAt(id) {
			if eu.Owner == attacker {
				continue
			}
			if ranged && eu.CannotBeRangedTargeted {
				continue
			}
			out = append(out, TargetRef{ID: eu.ID, TileID: id, Kind: "unit"})
		}
		if s := st.StructureAt(id); s != nil && s.Owner != attacker {
			out = append(out, TargetRef{ID: s.ID, TileID: id, Kind: "structure"})
		}
		if e := st.EmpireAt(id); e != nil && e.Owner != attacker {
			out = append(out, TargetRef{ID: EmpireToken(e.Owner), TileID: id, Kind: "empire"})
		}
	}
	return out
}

// CanSpawnAt reports whether a seat may deploy onto the tile: it must
// be the seat's empire tile or adjacent to it, or an owned structure's
// tile or adjacent to one, and unoccupied.
func CanSpawnAt(st *MatchState, seat Seat, tileID string) error {
	if _, exists := st.Tiles[tileID]; !exists {
		return ruleErr(CodeInvalidTile, "no tile %s", tileID)
	}
	if st.Occupied(tileID) {
		return ruleErr(CodeTileOccupied, "tile %s is occupied", tileID)
	}
	if !nearSpawnSource(st, seat, tileID) {
		return ruleErr(CodeInvalidSpawn, "tile %s is not near your empire or structures", tileID)
	}
	return nil
}

func nearSpawnSource(st *MatchState, seat Seat, tileID string) bool {
	e := st.Empires[seat]
	if e != nil && e.Placed && withinOne(e.TileID, tileID) {
		return true
	}
	for _, s := range st.Structures {
		if s.Owner == seat && withinOne(s.TileID, tileID) {
			return true
		}
	}
	return false
}

func withinOne(center, tileID string) bool {
	if center == tileID {
		return true
	}
	for _, adj := range Adjacent(center) {
		if adj == tileID {
			return true
		}
	}
	return false
}

// FindTarget resolves a target id token against the live state.
func FindTarget(st *MatchState, targetID string) (TargetRef, bool) {
	if seat, ok := ParseEmpireToken(targetID); ok {
		e := st.Empires[seat]
		if e == nil || !e.Placed {
			return TargetRef{}, false
		}
		return TargetRef{ID: targetID, TileID: e.TileID, Kind: "empire"}, true
	}
	if u, ok := st.Units[targetID]; ok {
		return TargetRef{ID: targetID, TileID: u.TileID, Kind: "unit"}, true
	}
	if s, ok := st.Structures[targetID]; ok {
		return TargetRef{ID: targetID, TileID: s.TileID, Kind: "structure"}, true
	}
	return TargetRef{}, false
}
