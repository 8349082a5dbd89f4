// Package rules implements the rule interpreter: boolean conditions over a
// position, targets that expand a position into measured selections, and
// value curves mapping measurements to centipawns.
//
// All three families are pure. A Context is an immutable value; the With*
// methods copy. Conditions and targets never mutate the position, so any
// number of evaluations may run concurrently over shared snapshots.
package rules

import "github.com/discochess/ruleval/internal/board"

// Context is the unit of evaluation state threaded through conditions,
// targets, and values: a position, a perspective color, and an optional
// square, piece type, and measurement picked up along the way.
type Context struct {
	Pos         *board.Position
	Color       board.Color
	Square      int
	PieceType   int
	Measurement float64
}

// NewContext returns the base context for one rule evaluation. The square
// is unset, the piece type empty, and the measurement defaults to 1.
func NewContext(pos *board.Position, color board.Color) Context {
	return Context{
		Pos:         pos,
		Color:       color,
		Square:      board.SquareNone,
		PieceType:   board.Empty,
		Measurement: 1,
	}
}

// WithSquare returns a copy of the context with the square set.
func (c Context) WithSquare(sq int) Context {
	c.Square = sq
	return c
}

// WithPieceType returns a copy of the context with the piece type set.
func (c Context) WithPieceType(pt int) Context {
	c.PieceType = pt
	return c
}

// WithMeasurement returns a copy of the context with the measurement set.
func (c Context) WithMeasurement(v float64) Context {
	c.Measurement = v
	return c
}

// Opponent returns the color opposing the context's perspective.
func (c Context) Opponent() board.Color {
	return c.Color.Opposite()
}
