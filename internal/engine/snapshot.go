package engine

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Snapshot captures every observable part of a game for rendering,
// determinism testing and replay checks.
type Snapshot struct {
	Size    int       `json:"size"`
	Board   [][]Color `json:"board"`
	Empty   int       `json:"empty"`
	Score   int       `json:"score"`
	Moves   int       `json:"moves"`
	Pending []Color   `json:"pending"`
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Size:    g.grid.Size(),
		Board:   g.grid.Rows(),
		Empty:   g.grid.EmptyCount(),
		Score:   g.score,
		Moves:   g.moves,
		Pending: g.Pending(),
	}
}

// Occupied returns the number of balls on the board.
func (s Snapshot) Occupied() int {
	return s.Size*s.Size - s.Empty
}

// Hash returns an FNV-64a digest of the snapshot.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "N:%d;B:", s.Size)
	for _, row := range s.Board {
		for _, c := range row {
			fmt.Fprintf(h, "%d,", c)
		}
	}
	fmt.Fprintf(h, ";S:%d;M:%d;P:", s.Score, s.Moves)
	for _, c := range s.Pending {
		fmt.Fprintf(h, "%d,", c)
	}

	return h.Sum64()
}

// RenderASCII draws the snapshot as text, used for debugging and golden
// test output. Empty cells are '.', balls are their color digit.
//
// Format:
//
//	Score: 0 | Moves: 0 | Occ: 3/81 | Next: 4 1 7
//	. . . . . . . . .
//	...
func RenderASCII(s Snapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score: %d | Moves: %d | Occ: %d/%d | Next:",
		s.Score, s.Moves, s.Occupied(), s.Size*s.Size))
	for _, c := range s.Pending {
		sb.WriteString(fmt.Sprintf(" %d", c))
	}
	sb.WriteString("\n")

	for _, row := range s.Board {
		for x, c := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if c == NoColor {
				sb.WriteByte('.')
			} else {
				sb.WriteString(fmt.Sprintf("%d", c))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
