package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by the grid store and game.
// Validity codes 0.5, 1, 2 and 3 are normal results, not errors.
var (
	ErrInvalidCell      = errors.New("invalid cell")
	ErrCellOccupied     = errors.New("cell occupied")
	ErrCellAlreadyEmpty = errors.New("cell already empty")
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidRules     = errors.New("invalid rules")
)

// CellError reports which cell a grid operation failed on.
type CellError struct {
	Op   string
	Cell Cell
	Err  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("engine: %s %s: %v", e.Op, e.Cell, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

func cellErr(op string, c Cell, err error) error {
	return &CellError{Op: op, Cell: c, Err: err}
}
