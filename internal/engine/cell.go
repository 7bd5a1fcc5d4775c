// Package engine implements the five-in-a-row ball matching rules: the grid
// store, wave spawner, move validation, line matching and the turn sequence
// that ties them together.
//
// The package is UI-agnostic and deterministic. All randomness flows from the
// per-game source passed to NewGame, so two games built with the same rules
// and seed replay identically.
package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Cell is a (row, col) grid coordinate.
// Row increases downward, Col increases to the right.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns the cell offset by (dr, dc).
func (c Cell) Add(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Delta) Cell {
	return c.Add(d.DR, d.DC)
}

// MarshalJSON encodes the cell as a [row, col] pair.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row, col] pair.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("engine: cell must be [row, col]: %w", err)
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// Delta is a single-step offset on the grid.
type Delta struct {
	DR int
	DC int
}

// Orthogonal moves used by path search: up, down, left, right.
var orthogonal = [4]Delta{
	{DR: -1, DC: 0},
	{DR: 1, DC: 0},
	{DR: 0, DC: -1},
	{DR: 0, DC: 1},
}

// Color is a ball color id. Zero means empty.
type Color uint8

// NoColor marks an empty cell.
const NoColor Color = 0

// Empty reports whether c is the empty marker.
func (c Color) Empty() bool {
	return c == NoColor
}

// MarshalJSON encodes the color as a number, so color slices are JSON
// arrays rather than base64 strings.
func (c Color) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(c), 10), nil
}
