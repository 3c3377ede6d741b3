package hexgame

// TileRetype records a tile whose element changed.
type TileRetype struct {
	TileID string  `json:"tileId"`
	Type   Element `json:"type"`
}

// BlitzResult describes what a resolved blitz did. Only the fields
// relevant to the behavior are populated.
type BlitzResult struct {
	Seat       Seat   `json:"seat"`
	CardID     string `json:"cardId"`
	BehaviorID string `json:"behaviorId"`
	TargetID   string `json:"targetId,omitempty"`

	DamagedID     string       `json:"damagedId,omitempty"`
	Damage        int          `json:"damage,omitempty"`
	Killed        bool         `json:"killed,omitempty"`
	HealedID      string       `json:"healedId,omitempty"`
	Healed        int          `json:"healed,omitempty"`
	BuffedUnitID  string       `json:"buffedUnitId,omitempty"`
	RetypedTiles  []TileRetype `json:"retypedTiles,omitempty"`
	RevealedTiles []string     `json:"revealedTiles,omitempty"`
	EssenceGained int          `json:"essenceGained,omitempty"`
}

// CheckBlitz validates that a seat can legally play a blitz card right
// now: hand membership, affordability, and the behavior's target
// requirements. It does not spend or apply anything.
func CheckBlitz(st *MatchState, seat Seat, cardID, targetID string) error {
	card, ok := Lookup(cardID)
	if !ok || card.Kind != KindBlitz {
		return ruleErr(CodeUnknownCard, "no blitz card %s", cardID)
	}
	p := st.Players[seat]
	if !inHand(p, cardID) {
		return ruleErr(CodeNotInHand, "%s is not in hand", cardID)
	}
	if !CanAfford(p.Essence, card.Cost, card.Element) {
		return ruleErr(CodeInsufficientEssence, "need %d %s essence", card.Cost, card.Element)
	}
	return checkBlitzTarget(st, seat, card.Blitz.BehaviorID, targetID)
}

func checkBlitzTarget(st *MatchState, seat Seat, behavior, targetID string) error {
	switch behavior {
	case BehaviorFirebolt:
		return requireEnemyPiece(st, seat, targetID)
	case BehaviorTidalSurge:
		return requireEnemyUnit(st, seat, targetID)
	case BehaviorMend, BehaviorQuicken, BehaviorStoneskin:
		return requireOwnUnit(st, seat, targetID)
	case BehaviorHurricane, BehaviorScry:
		if _, ok := st.Tiles[targetID]; !ok {
			return ruleErr(CodeInvalidTile, "no tile %s", targetID)
		}
		return nil
	case BehaviorScorch:
		t, ok := st.Tiles[targetID]
		if !ok {
			return ruleErr(CodeInvalidTile, "no tile %s", targetID)
		}
		if t.Type == Neutral {
			return ruleErr(CodeInvalidTarget, "tile %s is already neutral", targetID)
		}
		return nil
	case BehaviorEssenceSurge, BehaviorNegate:
		return nil
	default:
		return ruleErr(CodeUnknownCard, "unknown blitz behavior %s", behavior)
	}
}

// PayBlitz spends the card's cost and moves it from hand to discard.
// Payment happens when the card is announced; a later negation does
// not refund it.
func PayBlitz(st *MatchState, seat Seat, cardID string) error {
	card := MustLookup(cardID)
	p := st.Players[seat]
	if err := Spend(&p.Essence, card.Cost, card.Element); err != nil {
		return err
	}
	removeFromHand(p, cardID)
	p.Discard = append(p.Discard, cardID)
	return nil
}

// ApplyBlitz resolves a blitz effect against the state. Callers have
// already validated with CheckBlitz and paid with PayBlitz.
func ApplyBlitz(st *MatchState, seat Seat, cardID, targetID string) BlitzResult {
	card := MustLookup(cardID)
	res := BlitzResult{
		Seat:       seat,
		CardID:     cardID,
		BehaviorID: card.Blitz.BehaviorID,
		TargetID:   targetID,
	}

	switch card.Blitz.BehaviorID {
	case BehaviorFirebolt:
		applyBlitzDamage(st, &res, targetID, 3)
	case BehaviorTidalSurge:
		applyBlitzDamage(st, &res, targetID, 2)
	case BehaviorMend:
		if u, ok := st.Units[targetID]; ok {
			maxHP := MustLookup(u.CardID).Unit.HP
			healed := min(3, maxHP-u.HP)
			u.HP += healed
			res.HealedID = targetID
			res.Healed = healed
		}
	case BehaviorHurricane:
		region := append([]string{targetID}, Adjacent(targetID)...)
		for _, id := range region {
			t, ok := st.Tiles[id]
			if !ok || t.Type == Water {
				continue
			}
			t.Type = Water
			res.RetypedTiles = append(res.RetypedTiles, TileRetype{TileID: id, Type: Water})
		}
	case BehaviorScorch:
		if t, ok := st.Tiles[targetID]; ok && t.Type != Neutral {
			t.Type = Neutral
			res.RetypedTiles = append(res.RetypedTiles, TileRetype{TileID: targetID, Type: Neutral})
		}
	case BehaviorQuicken:
		if u, ok := st.Units[targetID]; ok {
			u.SpeedBonus += 2
			res.BuffedUnitID = targetID
		}
	case BehaviorStoneskin:
		if u, ok := st.Units[targetID]; ok {
			u.DefenseBonus += 3
			res.BuffedUnitID = targetID
		}
	case BehaviorScry:
		for _, id := range append([]string{targetID}, Adjacent(targetID)...) {
			if st.Reveal(id) {
				res.RevealedTiles = append(res.RevealedTiles, id)
			}
		}
	case BehaviorEssenceSurge:
		GainNeutral(st, seat, 2)
		res.EssenceGained = 2
	case BehaviorNegate:
		// Only meaningful as a reaction; the dispatcher drops the
		// pending blitz when it sees this behavior.
	}
	return res
}

func applyBlitzDamage(st *MatchState, res *BlitzResult, targetID string, damage int) {
	res.DamagedID = targetID
	res.Damage = damage
	if u, ok := st.Units[targetID]; ok {
		u.HP -= damage
		if u.HP <= 0 {
			owner := u.Owner
			st.RemoveUnit(targetID)
			GainNeutral(st, owner.Opponent(), 1)
			res.Killed = true
		}
		return
	}
	if s, ok := st.Structures[targetID]; ok {
		s.HP -= damage
		if s.HP <= 0 {
			st.RemoveStructure(targetID)
			res.Killed = true
		}
		return
	}
	if seat, ok := ParseEmpireToken(targetID); ok {
		st.Empires[seat].HP -= damage
	}
}

func requireEnemyUnit(st *MatchState, seat Seat, targetID string) error {
	u, ok := st.Units[targetID]
	if !ok || u.Owner == seat {
		return ruleErr(CodeInvalidTarget, "%s is not an enemy unit", targetID)
	}
	return nil
}

func requireEnemyPiece(st *MatchState, seat Seat, targetID string) error {
	ref, ok := FindTarget(st, targetID)
	if !ok {
		return ruleErr(CodeInvalidTarget, "no such target %s", targetID)
	}
	switch ref.Kind {
	case "unit":
		if st.Units[targetID].Owner == seat {
			return ruleErr(CodeInvalidTarget, "%s is your own unit", targetID)
		}
	case "structure":
		if st.Structures[targetID].Owner == seat {
			return ruleErr(CodeInvalidTarget, "%s is your own structure", targetID)
		}
	case "empire":
		if s, _ := ParseEmpireToken(targetID); s == seat {
			return ruleErr(CodeInvalidTarget, "cannot target your own empire")
		}
	}
	return nil
}

func requireOwnUnit(st *MatchState, seat Seat, targetID string) error {
	u, ok := st.Units[targetID]
	if !ok || u.Owner != seat {
		return ruleErr(CodeInvalidTarget, "%s is not one of your units", targetID)
	}
	return nil
}

func inHand(p *Player, cardID string) bool {
	for _, id := range p.Hand {
		if id == cardID {
			return true
		}
	}
	return false
}

func removeFromHand(p *Player, cardID string) bool {
	for i, id := range p.Hand {
		if id == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}
