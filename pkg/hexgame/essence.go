package hexgame

// CanAfford reports whether the pool covers a cost. Neutral costs may
// be paid from any bucket; elemental costs only from their own.
func CanAfford(p EssencePool, cost int, element Element) bool {
	if cost <= 0 {
		return true
	}
	switch element {
	case Fire:
		return p.Fire >= cost
	case Water:
		return p.Water >= cost
	default:
		return p.Total() >= cost
	}
}

// Spend deducts a cost from the pool. Neutral costs drain neutral
// first, then fire, then water. Returns a rule error when the pool
// cannot cover it; the pool is untouched on failure.
func Spend(p *EssencePool, cost int, element Element) error {
	if !CanAfford(*p, cost, element) {
		return ruleErr(CodeInsufficientEssence, "need %d %s essence", cost, element)
	}
	switch element {
	case Fire:
		p.Fire -= cost
	case Water:
		p.Water -= cost
	default:
		take := min(p.Neutral, cost)
		p.Neutral -= take
		cost -= take
		take = min(p.Fire, cost)
		p.Fire -= take
		cost -= take
		p.Water -= cost
	}
	return nil
}

// Recalculate rebuilds a seat's pool from scratch: +2 of the empire
// tile's element, +1 per owned structure, +1 per owned builder (each
// of its tile's element). Idempotent for a fixed board.
func Recalculate(st *MatchState, seat Seat) {
	pool := EssencePool{}

	if e := st.Empires[seat]; e != nil && e.Placed {
		addEssence(&pool, st.tileElement(e.TileID), 2)
	}
	for _, s := range st.Structures {
		if s.Owner == seat {
			addEssence(&pool, st.tileElement(s.TileID), 1)
		}
	}
	for _, b := range st.Builders {
		if b.Owner == seat {
			addEssence(&pool, st.tileElement(b.TileID), 1)
		}
	}

	st.Players[seat].Essence = pool
}

// GainNeutral credits a seat with neutral essence (kill rewards,
// essence surge).
func GainNeutral(st *MatchState, seat Seat, n int) {
	st.Players[seat].Essence.Neutral += n
}

func addEssence(p *EssencePool, element Element, n int) {
	switch element {
	case Fire:
		p.Fire += n
	case Water:
		p.Water += n
	default:
		p.Neutral += n
	}
}

func (st *MatchState) tileElement(tileID string) Element {
	if t := st.Tiles[tileID]; t != nil {
		return t.Type
	}
	return Neutral
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
