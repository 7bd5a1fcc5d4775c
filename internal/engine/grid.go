package engine

// Grid is the grid store: the color matrix plus the set of empty cells.
// Cells are stored in row-major order: index = row*size + col.
//
// The empty set is kept as a dense slice with a reverse index so that
// membership updates are O(1) and uniform sampling needs no scan. Every
// mutation goes through Place, Clear or Move, which update both structures
// in the same step.
type Grid struct {
	size    int
	cells   []Color
	empties []Cell // Dense list of empty cells
	slot    []int  // slot[index(c)] is c's position in empties, or -1
}

// NewGrid creates an empty size x size grid.
func NewGrid(size int) *Grid {
	n := size * size
	g := &Grid{
		size:    size,
		cells:   make([]Color, n),
		empties: make([]Cell, 0, n),
		slot:    make([]int, n),
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			g.slot[g.index(At(r, c))] = len(g.empties)
			g.empties = append(g.empties, At(r, c))
		}
	}
	return g
}

// index converts a cell to a flat array index.
func (g *Grid) index(c Cell) int {
	return c.Row*g.size + c.Col
}

// Size returns the grid dimension.
func (g *Grid) Size() int {
	return g.size
}

// InBounds returns true if the cell is within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// Get returns the color at c.
func (g *Grid) Get(c Cell) (Color, error) {
	if !g.InBounds(c) {
		return NoColor, cellErr("get", c, ErrInvalidCell)
	}
	return g.cells[g.index(c)], nil
}

// color returns the color at an in-bounds cell without checking.
func (g *Grid) color(c Cell) Color {
	return g.cells[g.index(c)]
}

// IsEmpty reports whether c is in bounds and empty.
func (g *Grid) IsEmpty(c Cell) bool {
	return g.InBounds(c) && g.cells[g.index(c)] == NoColor
}

// Place puts a ball of the given color into an empty cell.
func (g *Grid) Place(c Cell, color Color) error {
	if !g.InBounds(c) {
		return cellErr("place", c, ErrInvalidCell)
	}
	if color == NoColor {
		return cellErr("place", c, ErrInvalidColor)
	}
	i := g.index(c)
	if g.cells[i] != NoColor {
		return cellErr("place", c, ErrCellOccupied)
	}
	g.cells[i] = color
	g.removeEmpty(c)
	return nil
}

// Clear empties an occupied cell.
func (g *Grid) Clear(c Cell) error {
	if !g.InBounds(c) {
		return cellErr("clear", c, ErrInvalidCell)
	}
	i := g.index(c)
	if g.cells[i] == NoColor {
		return cellErr("clear", c, ErrCellAlreadyEmpty)
	}
	g.cells[i] = NoColor
	g.addEmpty(c)
	return nil
}

// Move relocates the ball at from into the empty cell to.
// Connectivity is not checked here; that is the validator's job.
func (g *Grid) Move(from, to Cell) error {
	if !g.InBounds(from) {
		return cellErr("move", from, ErrInvalidCell)
	}
	if !g.InBounds(to) {
		return cellErr("move", to, ErrInvalidCell)
	}
	fi, ti := g.index(from), g.index(to)
	if g.cells[fi] == NoColor {
		return cellErr("move", from, ErrCellAlreadyEmpty)
	}
	if g.cells[ti] != NoColor {
		return cellErr("move", to, ErrCellOccupied)
	}
	g.cells[ti] = g.cells[fi]
	g.cells[fi] = NoColor
	g.removeEmpty(to)
	g.addEmpty(from)
	return nil
}

// addEmpty appends c to the empty set.
func (g *Grid) addEmpty(c Cell) {
	g.slot[g.index(c)] = len(g.empties)
	g.empties = append(g.empties, c)
}

// removeEmpty swap-removes c from the empty set.
func (g *Grid) removeEmpty(c Cell) {
	i := g.index(c)
	pos := g.slot[i]
	last := len(g.empties) - 1
	moved := g.empties[last]
	g.empties[pos] = moved
	g.slot[g.index(moved)] = pos
	g.empties = g.empties[:last]
	g.slot[i] = -1
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	return len(g.empties)
}

// EmptyCells returns a copy of the empty set.
// Order is the store's internal order, which is deterministic for a given
// sequence of mutations.
func (g *Grid) EmptyCells() []Cell {
	out := make([]Cell, len(g.empties))
	copy(out, g.empties)
	return out
}

// OccupiedCells returns all occupied cells in row-major order.
func (g *Grid) OccupiedCells() []Cell {
	out := make([]Cell, 0, len(g.cells)-len(g.empties))
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.cells[g.index(At(r, c))] != NoColor {
				out = append(out, At(r, c))
			}
		}
	}
	return out
}

// Rows returns a copy of the color matrix.
func (g *Grid) Rows() [][]Color {
	rows := make([][]Color, g.size)
	for r := range rows {
		rows[r] = make([]Color, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		size:    g.size,
		cells:   make([]Color, len(g.cells)),
		empties: make([]Cell, len(g.empties), cap(g.empties)),
		slot:    make([]int, len(g.slot)),
	}
	copy(clone.cells, g.cells)
	copy(clone.empties, g.empties)
	copy(clone.slot, g.slot)
	return clone
}

// Equal returns true if both grids have the same size and colors.
// The internal order of the empty set is not compared.
func (g *Grid) Equal(other *Grid) bool {
	if g.size != other.size {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}
