package hexgame

import (
	"fmt"
	"strings"
)

// The board uses pointy-top hexes addressed by offset coordinates
// encoded as "r{row}c{col}". Odd rows are shifted half a hex to the
// right, so the two parities use different neighbor offset tables.
// This is the single place the parity convention is defined; everything
// else goes through Adjacent/Neighbors/Distance.

var (
	evenRowOffsets = [6][2]int{{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 0}}
	oddRowOffsets  = [6][2]int{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}, {1, 1}}
)

// TileID builds the canonical id for a row/col pair.
func TileID(row, col int) string {
	return fmt.Sprintf("r%dc%d", row, col)
}

// ParseTileID splits a tile id back into row and col.
// Returns false for anything that is not of the form "r{row}c{col}".
func ParseTileID(id string) (row, col int, ok bool) {
	if !strings.HasPrefix(id, "r") {
		return 0, 0, false
	}
	c := strings.IndexByte(id, 'c')
	if c < 1 {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(id, "r%dc%d", &row, &col); err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// Adjacent returns the six immediate neighbor ids of a tile. The ids
// are generated unconditionally; callers filter against the tile map.
func Adjacent(id string) []string {
	row, col, ok := ParseTileID(id)
	if !ok {
		return nil
	}
	offsets := &evenRowOffsets
	if row&1 == 1 {
		offsets = &oddRowOffsets
	}
	out := make([]string, 0, 6)
	for _, o := range offsets {
		out = append(out, TileID(row+o[0], col+o[1]))
	}
	return out
}

// Neighbors returns all tile ids within rng hex steps of the origin,
// excluding the origin itself. BFS over the infinite grid; ordering is
// not specified.
func Neighbors(id string, rng int) []string {
	if rng <= 0 {
		return nil
	}
	if _, _, ok := ParseTileID(id); !ok {
		return nil
	}
	visited := map[string]bool{id: true}
	frontier := []string{id}
	var out []string
	for step := 0; step < rng; step++ {
		var next []string
		for _, cur := range frontier {
			for _, adj := range Adjacent(cur) {
				if visited[adj] {
					continue
				}
				visited[adj] = true
				next = append(next, adj)
				out = append(out, adj)
			}
		}
		frontier = next
	}
	return out
}

// Distance returns the hex distance between two tiles (Chebyshev
// distance in cube coordinates). Returns -1 if either id is malformed.
func Distance(a, b string) int {
	aq, ar, ok := toCube(a)
	if !ok {
		return -1
	}
	bq, br, ok := toCube(b)
	if !ok {
		return -1
	}
	dq := abs(aq - bq)
	dr := abs(ar - br)
	ds := abs((-aq - ar) - (-bq - br))
	return max(dq, max(dr, ds))
}

// toCube converts an offset tile id to axial/cube coordinates.
// row - (row&1) is always even, so integer division is exact.
func toCube(id string) (q, r int, ok bool) {
	row, col, ok := ParseTileID(id)
	if !ok {
		return 0, 0, false
	}
	return col - (row-(row&1))/2, row, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
