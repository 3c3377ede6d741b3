package hexgame

// CaptureUpdate reports the new capture status of one structure.
type CaptureUpdate struct {
	StructureID string `json:"structureId"`
	Progress    int    `json:"progress"`
	Captured    bool   `json:"captured"`
	NewOwner    Seat   `json:"newOwner,omitempty"`
}

// CaptureTick advances capture progress from the moving seat's point
// of view: for each enemy structure, adjacent defenders reset progress;
// otherwise two or more adjacent attackers add 2, exactly one adds 1.
// At the threshold the structure changes owner and progress resets.
func CaptureTick(st *MatchState, mover Seat) []CaptureUpdate {
	var updates []CaptureUpdate
	for _, s := range st.Structures {
		if s.Owner == mover {
			continue
		}
		attackers, defenders := 0, 0
		for _, adj := range Adjacent(s.TileID) {
			for _, u := range st.UnitsAt(adj) {
				switch u.Owner {
				case mover:
					attackers++
				case s.Owner:
					defenders++
				}
			}
		}

		before := s.CaptureProgress
		switch {
		case defenders > 0:
			s.CaptureProgress = 0
		case attackers >= 2:
			s.CaptureProgress += 2
		case attackers == 1:
			s.CaptureProgress++
		}

		update := CaptureUpdate{StructureID: s.ID, Progress: s.CaptureProgress}
		if s.CaptureProgress >= CaptureThreshold {
			s.Owner = mover
			s.CaptureProgress = 0
			update.Progress = s.CaptureProgress
			update.Captured = true
			update.NewOwner = mover
		}
		if update.Captured || s.CaptureProgress != before {
			updates = append(updates, update)
		}
	}
	return updates
}
