package engine

// Validate classifies moving the ball at start to end.
//
// Occupancy is checked first, so the connectivity search only runs for an
// occupied start and an empty end. The search is a breadth-first walk over
// empty cells with 4-neighbour adjacency; balls block it.
func Validate(g *Grid, start, end Cell) (Validity, error) {
	if !g.InBounds(start) {
		return ValidityOK, cellErr("validate", start, ErrInvalidCell)
	}
	if !g.InBounds(end) {
		return ValidityOK, cellErr("validate", end, ErrInvalidCell)
	}

	startEmpty := g.color(start) == NoColor
	endEmpty := g.color(end) == NoColor
	switch {
	case !startEmpty && !endEmpty:
		return ValidityBothOccupied, nil
	case startEmpty && endEmpty:
		return ValidityBothEmpty, nil
	case startEmpty && !endEmpty:
		return ValidityStartEmpty, nil
	}

	if _, ok := search(g, start, end, false); !ok {
		return ValidityNoPath, nil
	}
	return ValidityOK, nil
}

// FindPath returns the shortest empty-cell path from start to end,
// inclusive of both ends. Returns nil when end is occupied or unreachable.
func FindPath(g *Grid, start, end Cell) ([]Cell, error) {
	if !g.InBounds(start) {
		return nil, cellErr("path", start, ErrInvalidCell)
	}
	if !g.InBounds(end) {
		return nil, cellErr("path", end, ErrInvalidCell)
	}
	if g.color(end) != NoColor {
		return nil, nil
	}
	path, ok := search(g, start, end, true)
	if !ok {
		return nil, nil
	}
	return path, nil
}

// search runs the breadth-first walk from start. The start cell itself may
// be occupied (it holds the ball being moved); every other visited cell must
// be empty. When trace is set the path is rebuilt from parent links.
func search(g *Grid, start, end Cell, trace bool) ([]Cell, bool) {
	n := g.size * g.size
	visited := make([]bool, n)
	var parent []int
	if trace {
		parent = make([]int, n)
	}

	queue := make([]Cell, 0, n)
	queue = append(queue, start)
	visited[g.index(start)] = true
	if trace {
		parent[g.index(start)] = -1
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == end {
			if !trace {
				return nil, true
			}
			return tracePath(g, parent, end), true
		}
		for _, d := range orthogonal {
			next := cur.Step(d)
			if !g.InBounds(next) {
				continue
			}
			i := g.index(next)
			if visited[i] || g.cells[i] != NoColor {
				continue
			}
			visited[i] = true
			if trace {
				parent[i] = g.index(cur)
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

// tracePath walks parent links back from end and returns the path in
// start-to-end order.
func tracePath(g *Grid, parent []int, end Cell) []Cell {
	var rev []Cell
	for i := g.index(end); i != -1; i = parent[i] {
		rev = append(rev, At(i/g.size, i%g.size))
	}
	path := make([]Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}
