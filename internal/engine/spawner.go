package engine

import "math/rand"

// Spawner places new balls into empty cells.
// It draws every random number from the rng it was built with and touches
// the grid only through the grid store's Place.
type Spawner struct {
	rng    *rand.Rand
	colors int
	count  int
}

// NewSpawner creates a spawner for the given rules.
func NewSpawner(rng *rand.Rand, rules Rules) *Spawner {
	return &Spawner{
		rng:    rng,
		colors: rules.Colors,
		count:  rules.SpawnCount,
	}
}

// RollColor returns a uniformly random color id in 1..colors.
func (s *Spawner) RollColor() Color {
	return Color(s.rng.Intn(s.colors) + 1)
}

// RollPending returns a fresh wave of pending colors.
func (s *Spawner) RollPending() []Color {
	pending := make([]Color, s.count)
	for i := range pending {
		pending[i] = s.RollColor()
	}
	return pending
}

// Wave places the pending colors into distinct random empty cells, in order.
// When fewer empty cells than pending colors remain, only that many are
// placed and the rest of the wave is dropped. Returns the cells used and the
// next pending wave. With no empty cells nothing is placed and pending is
// returned unchanged.
func (s *Spawner) Wave(g *Grid, pending []Color) ([]Cell, []Color, error) {
	n := min(len(pending), g.EmptyCount())
	if n == 0 {
		return []Cell{}, pending, nil
	}

	cells := s.sample(g, n)
	for i, c := range cells {
		if err := g.Place(c, pending[i]); err != nil {
			return nil, pending, err
		}
	}
	return cells, s.RollPending(), nil
}

// Override places up to n balls with independently rolled colors.
// Used to seed the initial board; pending colors are not involved.
func (s *Spawner) Override(g *Grid, n int) ([]Cell, error) {
	n = min(n, g.EmptyCount())
	if n <= 0 {
		return []Cell{}, nil
	}

	cells := s.sample(g, n)
	for _, c := range cells {
		if err := g.Place(c, s.RollColor()); err != nil {
			return nil, err
		}
	}
	return cells, nil
}

// sample picks n distinct empty cells uniformly at random using a partial
// Fisher-Yates shuffle over a copy of the empty set.
func (s *Spawner) sample(g *Grid, n int) []Cell {
	pool := g.EmptyCells()
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n:n]
}
