package engine

import (
	"errors"
	"math/rand"
	"testing"
)

// checkEmptySet verifies that the empty set matches the color matrix exactly
// and that the reverse index agrees with the dense list.
func checkEmptySet(t *testing.T, g *Grid) {
	t.Helper()

	want := 0
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			cell := At(r, c)
			i := g.index(cell)
			if g.cells[i] == NoColor {
				want++
				pos := g.slot[i]
				if pos < 0 || pos >= len(g.empties) || g.empties[pos] != cell {
					t.Fatalf("empty cell %v missing from empty set (slot %d)", cell, pos)
				}
			} else if g.slot[i] != -1 {
				t.Fatalf("occupied cell %v still indexed at slot %d", cell, g.slot[i])
			}
		}
	}
	if len(g.empties) != want {
		t.Fatalf("empty set size = %d, want %d", len(g.empties), want)
	}
}

func mustPlace(t *testing.T, g *Grid, c Cell, color Color) {
	t.Helper()
	if err := g.Place(c, color); err != nil {
		t.Fatalf("Place(%v, %d) failed: %v", c, color, err)
	}
}

func TestNewGridAllEmpty(t *testing.T) {
	g := NewGrid(9)

	if g.Size() != 9 {
		t.Errorf("Size() = %d, want 9", g.Size())
	}
	if g.EmptyCount() != 81 {
		t.Errorf("EmptyCount() = %d, want 81", g.EmptyCount())
	}
	checkEmptySet(t, g)
}

func TestGridInBounds(t *testing.T) {
	g := NewGrid(9)

	tests := []struct {
		cell     Cell
		expected bool
	}{
		{At(0, 0), true},
		{At(8, 8), true},
		{At(4, 4), true},
		{At(-1, 0), false},
		{At(0, -1), false},
		{At(9, 0), false},
		{At(0, 9), false},
	}

	for _, tc := range tests {
		if got := g.InBounds(tc.cell); got != tc.expected {
			t.Errorf("InBounds(%v) = %v, want %v", tc.cell, got, tc.expected)
		}
	}
}

func TestGridPlace(t *testing.T) {
	g := NewGrid(9)

	if err := g.Place(At(2, 3), 4); err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	color, err := g.Get(At(2, 3))
	if err != nil || color != 4 {
		t.Errorf("Get(2,3) = %d, %v; want 4, nil", color, err)
	}
	if g.EmptyCount() != 80 {
		t.Errorf("EmptyCount() = %d, want 80", g.EmptyCount())
	}
	checkEmptySet(t, g)

	tests := []struct {
		name  string
		cell  Cell
		color Color
		want  error
	}{
		{"occupied", At(2, 3), 1, ErrCellOccupied},
		{"out of bounds", At(9, 0), 1, ErrInvalidCell},
		{"negative", At(0, -1), 1, ErrInvalidCell},
		{"no color", At(0, 0), NoColor, ErrInvalidColor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := g.Place(tc.cell, tc.color)
			if !errors.Is(err, tc.want) {
				t.Errorf("Place(%v, %d) error = %v, want %v", tc.cell, tc.color, err, tc.want)
			}
			checkEmptySet(t, g)
		})
	}
}

func TestGridClear(t *testing.T) {
	g := NewGrid(9)
	mustPlace(t, g, At(0, 0), 1)

	if err := g.Clear(At(0, 0)); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if !g.IsEmpty(At(0, 0)) {
		t.Error("cell should be empty after Clear")
	}
	checkEmptySet(t, g)

	if err := g.Clear(At(0, 0)); !errors.Is(err, ErrCellAlreadyEmpty) {
		t.Errorf("Clear() on empty cell error = %v, want ErrCellAlreadyEmpty", err)
	}
	if err := g.Clear(At(10, 10)); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Clear() out of bounds error = %v, want ErrInvalidCell", err)
	}

	var cellErr *CellError
	if err := g.Clear(At(10, 10)); !errors.As(err, &cellErr) || cellErr.Cell != At(10, 10) {
		t.Errorf("Clear() error should carry the cell, got %v", err)
	}
}

func TestGridMove(t *testing.T) {
	g := NewGrid(9)
	mustPlace(t, g, At(1, 1), 3)
	mustPlace(t, g, At(5, 5), 6)

	if err := g.Move(At(1, 1), At(7, 2)); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if !g.IsEmpty(At(1, 1)) {
		t.Error("source should be empty after Move")
	}
	if c, _ := g.Get(At(7, 2)); c != 3 {
		t.Errorf("destination color = %d, want 3", c)
	}
	if g.EmptyCount() != 79 {
		t.Errorf("EmptyCount() = %d, want 79", g.EmptyCount())
	}
	checkEmptySet(t, g)

	tests := []struct {
		name     string
		from, to Cell
		want     error
	}{
		{"empty source", At(0, 0), At(0, 1), ErrCellAlreadyEmpty},
		{"occupied target", At(7, 2), At(5, 5), ErrCellOccupied},
		{"source out of bounds", At(-1, 0), At(0, 1), ErrInvalidCell},
		{"target out of bounds", At(7, 2), At(0, 9), ErrInvalidCell},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := g.Clone()
			err := g.Move(tc.from, tc.to)
			if !errors.Is(err, tc.want) {
				t.Errorf("Move(%v, %v) error = %v, want %v", tc.from, tc.to, err, tc.want)
			}
			if !g.Equal(before) {
				t.Error("failed Move should not change the grid")
			}
			checkEmptySet(t, g)
		})
	}
}

func TestGridEmptySetUnderRandomOps(t *testing.T) {
	g := NewGrid(9)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		c := At(rng.Intn(9), rng.Intn(9))
		switch rng.Intn(3) {
		case 0:
			_ = g.Place(c, Color(rng.Intn(7)+1))
		case 1:
			_ = g.Clear(c)
		case 2:
			_ = g.Move(c, At(rng.Intn(9), rng.Intn(9)))
		}
		checkEmptySet(t, g)
	}
}

func TestGridClone(t *testing.T) {
	g := NewGrid(5)
	mustPlace(t, g, At(1, 1), 2)

	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("clone should equal original")
	}

	if err := g.Clear(At(1, 1)); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if clone.IsEmpty(At(1, 1)) {
		t.Error("clone should not be affected by original modification")
	}
	checkEmptySet(t, g)
	checkEmptySet(t, clone)
}

func TestGridOccupiedCellsRowMajor(t *testing.T) {
	g := NewGrid(9)
	for _, c := range []Cell{At(5, 1), At(0, 8), At(5, 0), At(2, 2)} {
		mustPlace(t, g, c, 1)
	}

	want := []Cell{At(0, 8), At(2, 2), At(5, 0), At(5, 1)}
	got := g.OccupiedCells()
	if len(got) != len(want) {
		t.Fatalf("OccupiedCells() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("OccupiedCells()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
