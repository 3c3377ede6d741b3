package hexgame

import (
	"sort"
	"testing"
)

func TestParseTileID(t *testing.T) {
	tests := []struct {
		id       string
		row, col int
		ok       bool
	}{
		{"r0c0", 0, 0, true},
		{"r3c7", 3, 7, true},
		{"r-2c5", -2, 5, true},
		{"r1c-4", 1, -4, true},
		{"c1r1", 0, 0, false},
		{"r1", 0, 0, false},
		{"", 0, 0, false},
		{"tile", 0, 0, false},
	}
	for _, tt := range tests {
		row, col, ok := ParseTileID(tt.id)
		if ok != tt.ok || row != tt.row || col != tt.col {
			t.Errorf("ParseTileID(%q) = (%d,%d,%v), want (%d,%d,%v)",
				tt.id, row, col, ok, tt.row, tt.col, tt.ok)
		}
	}
}

func TestAdjacentParity(t *testing.T) {
	tests := []struct {
		id   string
		want []string
	}{
		// even row
		{"r2c3", []string{"r1c2", "r1c3", "r2c2", "r2c4", "r3c2", "r3c3"}},
		// odd row
		{"r3c3", []string{"r2c3", "r2c4", "r3c2", "r3c4", "r4c3", "r4c4"}},
	}
	for _, tt := range tests {
		got := Adjacent(tt.id)
		sort.Strings(got)
		want := append([]string(nil), tt.want...)
		sort.Strings(want)
		if len(got) != len(want) {
			t.Fatalf("Adjacent(%s) = %v, want %v", tt.id, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Adjacent(%s) = %v, want %v", tt.id, got, want)
				break
			}
		}
	}
}

func TestAdjacentAreDistanceOne(t *testing.T) {
	for _, origin := range []string{"r0c0", "r1c0", "r4c5", "r-3c2", "r-2c-2"} {
		for _, adj := range Adjacent(origin) {
			if d := Distance(origin, adj); d != 1 {
				t.Errorf("Distance(%s, %s) = %d, want 1", origin, adj, d)
			}
		}
	}
}

func TestNeighborsExcludesOrigin(t *testing.T) {
	for rng := 0; rng <= 3; rng++ {
		got := Neighbors("r2c2", rng)
		if containsString(got, "r2c2") {
			t.Errorf("Neighbors range %d contains the origin", rng)
		}
	}
	if got := Neighbors("r2c2", 0); got != nil {
		t.Errorf("Neighbors range 0 = %v, want nil", got)
	}
}

func TestNeighborsCounts(t *testing.T) {
	// On an unbounded hex grid the ring sizes are 6, 12, 18...
	tests := []struct {
		rng  int
		want int
	}{
		{1, 6},
		{2, 18},
		{3, 36},
	}
	for _, tt := range tests {
		got := Neighbors("r0c0", tt.rng)
		if len(got) != tt.want {
			t.Errorf("len(Neighbors(r0c0, %d)) = %d, want %d", tt.rng, len(got), tt.want)
		}
		for _, id := range got {
			if d := Distance("r0c0", id); d < 1 || d > tt.rng {
				t.Errorf("Neighbors(%d) returned %s at distance %d", tt.rng, id, d)
			}
		}
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"r0c0", "r0c0", 0},
		{"r0c0", "r0c3", 3},
		{"r0c0", "r3c0", 3},
		{"r1c1", "r1c1", 0},
		{"r0c0", "r1c0", 1},
		{"r2c3", "r3c4", 2},
		{"r3c3", "r4c4", 1},
		{"bogus", "r0c0", -1},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if tt.want >= 0 {
			if got := Distance(tt.b, tt.a); got != tt.want {
				t.Errorf("Distance(%s, %s) = %d, want %d (symmetry)", tt.b, tt.a, got, tt.want)
			}
		}
	}
}
