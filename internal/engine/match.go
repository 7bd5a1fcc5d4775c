package engine

import "sort"

// axis is a pair of opposite scan directions through a seed cell.
type axis [2]Delta

var canonicalAxes = []axis{
	{{DR: 0, DC: 1}, {DR: 0, DC: -1}},  // horizontal
	{{DR: 1, DC: 0}, {DR: -1, DC: 0}},  // vertical
	{{DR: 1, DC: 1}, {DR: -1, DC: -1}}, // main diagonal
	{{DR: 1, DC: -1}, {DR: -1, DC: 1}}, // anti-diagonal
}

var legacyAxes = []axis{
	{{DR: 1, DC: 0}, {DR: -1, DC: 0}},
	{{DR: 0, DC: 1}, {DR: -1, DC: -1}},
	{{DR: 1, DC: -1}, {DR: -1, DC: 1}},
}

// Matcher finds same-color lines through recently changed cells.
type Matcher struct {
	length int
	axes   []axis
}

// NewMatcher creates a matcher for the rules' line length and axis mode.
func NewMatcher(rules Rules) *Matcher {
	axes := canonicalAxes
	if rules.Axes == AxesLegacy {
		axes = legacyAxes
	}
	return &Matcher{length: rules.LineLength, axes: axes}
}

// Find returns every cell on a run of at least the line length that passes
// through one of the seeds. Runs are scanned outward from each seed in both
// directions of every axis. Each cell appears once, in row-major order.
// Empty seeds are skipped. The grid is not modified.
func (m *Matcher) Find(g *Grid, seeds []Cell) ([]Cell, error) {
	hit := make(map[Cell]struct{})
	for _, seed := range seeds {
		if !g.InBounds(seed) {
			return nil, cellErr("match", seed, ErrInvalidCell)
		}
		color := g.color(seed)
		if color == NoColor {
			continue
		}

		for _, ax := range m.axes {
			line := []Cell{seed}
			for _, d := range ax {
				for c := seed.Step(d); g.InBounds(c) && g.color(c) == color; c = c.Step(d) {
					line = append(line, c)
				}
			}
			if len(line) >= m.length {
				for _, c := range line {
					hit[c] = struct{}{}
				}
			}
		}
	}

	out := make([]Cell, 0, len(hit))
	for c := range hit {
		out = append(out, c)
	}
	sortCells(out)
	return out, nil
}

// sortCells orders cells row-major.
func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}
