package engine

import (
	"fmt"
	"math/rand"
)

// Game is one play session: the grid store, score, move counter and the
// pending wave, plus the random source that feeds its spawner.
//
// A Game is not safe for concurrent use. Separate games share nothing and
// may run in parallel.
type Game struct {
	rules   Rules
	grid    *Grid
	spawner *Spawner
	matcher *Matcher
	score   int
	moves   int
	pending []Color
}

// NewGame starts a session seeded with seed: an empty grid, a freshly
// rolled pending wave, then an override spawn of rules.InitialBalls.
func NewGame(rules Rules, seed int64) (*Game, error) {
	return NewGameRand(rules, rand.New(rand.NewSource(seed)))
}

// NewGameRand is NewGame with a caller-supplied random source.
// The game takes ownership of rng.
func NewGameRand(rules Rules, rng *rand.Rand) (*Game, error) {
	g, err := newGame(rules, rng)
	if err != nil {
		return nil, err
	}
	g.pending = g.spawner.RollPending()
	if _, err := g.spawner.Override(g.grid, rules.InitialBalls); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGameWithBoard builds a session from an explicit board and pending wave
// instead of a random setup. rows must be Size x Size; zero cells are empty.
// A nil pending wave is rolled from the seed.
func NewGameWithBoard(rules Rules, seed int64, rows [][]Color, pending []Color) (*Game, error) {
	g, err := newGame(rules, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	if len(rows) != rules.Size {
		return nil, fmt.Errorf("%w: board has %d rows, want %d", ErrInvalidRules, len(rows), rules.Size)
	}
	for r, row := range rows {
		if len(row) != rules.Size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidRules, r, len(row), rules.Size)
		}
		for c, color := range row {
			if color == NoColor {
				continue
			}
			if int(color) > rules.Colors {
				return nil, cellErr("setup", At(r, c), ErrInvalidColor)
			}
			if err := g.grid.Place(At(r, c), color); err != nil {
				return nil, err
			}
		}
	}
	if pending == nil {
		g.pending = g.spawner.RollPending()
	} else {
		g.pending = append([]Color(nil), pending...)
	}
	return g, nil
}

func newGame(rules Rules, rng *rand.Rand) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Game{
		rules:   rules,
		grid:    NewGrid(rules.Size),
		spawner: NewSpawner(rng, rules),
		matcher: NewMatcher(rules),
	}, nil
}

// ApplyMove plays one turn: validate, move, clear the mover's lines or spawn
// a wave and clear the wave's lines.
//
// Out-of-bounds cells return an ErrInvalidCell error. Any other rejection is
// reported through TurnResult.Validity and leaves the game untouched.
func (g *Game) ApplyMove(start, end Cell) (TurnResult, error) {
	v, err := Validate(g.grid, start, end)
	if err != nil {
		return TurnResult{}, err
	}
	if v != ValidityOK {
		return rejected(v), nil
	}

	path, err := FindPath(g.grid, start, end)
	if err != nil {
		return TurnResult{}, err
	}
	if err := g.grid.Move(start, end); err != nil {
		return TurnResult{}, err
	}
	g.moves++

	res := TurnResult{
		Validity:   ValidityOK,
		Cleared:    []Cell{},
		Spawned:    []Cell{},
		Path:       path,
		PathLength: len(path),
	}
	if res.Path == nil {
		res.Path = []Cell{}
	}

	cleared, err := g.clearLines([]Cell{end})
	if err != nil {
		return TurnResult{}, err
	}
	if len(cleared) > 0 {
		res.Validity = ValidityCleared
		res.Cleared = cleared
		res.Points = len(cleared)
		return res, nil
	}

	spawned, next, err := g.spawner.Wave(g.grid, g.pending)
	if err != nil {
		return TurnResult{}, err
	}
	g.pending = next
	res.Spawned = spawned

	// A wave clear does not spawn again.
	cleared, err = g.clearLines(spawned)
	if err != nil {
		return TurnResult{}, err
	}
	res.Cleared = append(res.Cleared, cleared...)
	res.Points = len(cleared)
	return res, nil
}

// clearLines finds lines through seeds, empties them and scores them.
func (g *Game) clearLines(seeds []Cell) ([]Cell, error) {
	cells, err := g.matcher.Find(g.grid, seeds)
	if err != nil {
		return nil, err
	}
	for _, c := range cells {
		if err := g.grid.Clear(c); err != nil {
			return nil, err
		}
	}
	g.score += len(cells)
	return cells, nil
}

// Validate classifies a move without playing it.
func (g *Game) Validate(start, end Cell) (Validity, error) {
	return Validate(g.grid, start, end)
}

// Path returns the shortest path a move would take, or nil.
func (g *Game) Path(start, end Cell) ([]Cell, error) {
	return FindPath(g.grid, start, end)
}

// Rules returns the rules the game was built with.
func (g *Game) Rules() Rules {
	return g.rules
}

// Size returns the grid dimension.
func (g *Game) Size() int {
	return g.grid.Size()
}

// Color returns the color at c.
func (g *Game) Color(c Cell) (Color, error) {
	return g.grid.Get(c)
}

// Rows returns a copy of the color matrix.
func (g *Game) Rows() [][]Color {
	return g.grid.Rows()
}

// EmptyCells returns a copy of the empty set.
func (g *Game) EmptyCells() []Cell {
	return g.grid.EmptyCells()
}

// EmptyCount returns the number of empty cells.
func (g *Game) EmptyCount() int {
	return g.grid.EmptyCount()
}

// Score returns the number of balls cleared so far.
func (g *Game) Score() int {
	return g.score
}

// Moves returns the number of accepted moves.
func (g *Game) Moves() int {
	return g.moves
}

// Pending returns a copy of the next wave's colors.
func (g *Game) Pending() []Color {
	return append([]Color(nil), g.pending...)
}

// Full reports whether no empty cell remains.
func (g *Game) Full() bool {
	return g.grid.EmptyCount() == 0
}

// LegalStarts returns the occupied cells, the only possible move starts.
func (g *Game) LegalStarts() []Cell {
	return g.grid.OccupiedCells()
}

// LegalEnds returns the empty cells in row-major order, the only possible
// move ends.
func (g *Game) LegalEnds() []Cell {
	cells := g.grid.EmptyCells()
	sortCells(cells)
	return cells
}
