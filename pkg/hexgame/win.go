package hexgame

// SiegeStatus reports how many enemy units surround a seat's empire.
type SiegeStatus struct {
	Seat       Seat `json:"seat"`
	EnemyUnits int  `json:"enemyUnits"`
	Threshold  int  `json:"threshold"`
}

// SiegeCount returns the number of enemy units on the empire tile and
// its six neighbors.
func SiegeCount(st *MatchState, seat Seat) int {
	e := st.Empires[seat]
	if e == nil || !e.Placed {
		return 0
	}
	tiles := append([]string{e.TileID}, Adjacent(e.TileID)...)
	count := 0
	for _, id := range tiles {
		for _, u := range st.UnitsAt(id) {
			if u.Owner != seat {
				count++
			}
		}
	}
	return count
}

// CheckWin evaluates the win conditions after a mutating command.
// Empire destruction takes precedence over siege. Returns nil while
// the game continues.
func CheckWin(st *MatchState) *Result {
	for _, seat := range Seats {
		if e := st.Empires[seat]; e != nil && e.Placed && e.HP <= 0 {
			return &Result{Winner: seat.Opponent(), Reason: ReasonEmpireDestroyed}
		}
	}
	for _, seat := range Seats {
		if SiegeCount(st, seat) >= SiegeUnitCount {
			return &Result{Winner: seat.Opponent(), Reason: ReasonSiege}
		}
	}
	return nil
}
