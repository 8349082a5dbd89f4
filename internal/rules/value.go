package rules

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for formula validation failures.
var (
	// ErrEmptyFormula indicates an empty formula expression.
	ErrEmptyFormula = errors.New("rules: empty formula")

	// ErrMissingVariable indicates a formula that never references n.
	ErrMissingVariable = errors.New("rules: formula must reference n")

	// ErrNotFinite indicates a formula whose sample evaluation produced
	// NaN or an infinity.
	ErrNotFinite = errors.New("rules: formula result is not finite")
)

// formulaSample is the measurement used to probe a formula at load time.
const formulaSample = 4

// Value maps a target's measurement to a centipawn contribution.
type Value interface {
	// Compute returns the centipawn amount for measurement n.
	Compute(n float64) float64
}

// FixedValue is a constant centipawn amount, independent of measurement.
type FixedValue struct {
	Centipawns float64
}

var _ Value = FixedValue{}

// Compute returns the fixed amount.
func (v FixedValue) Compute(n float64) float64 {
	return v.Centipawns
}

// FormulaValue evaluates a restricted arithmetic expression over the
// variable n. Expressions are parsed and validated at construction; the
// hot path only walks the parsed tree.
type FormulaValue struct {
	expr string
	root exprNode
}

var _ Value = (*FormulaValue)(nil)

// NewFormula parses and validates a formula expression. It rejects any
// token outside the approved grammar, requires the variable n, and probes
// the expression at n=4 to rule out non-finite results.
func NewFormula(expr string) (*FormulaValue, error) {
	if expr == "" {
		return nil, ErrEmptyFormula
	}

	root, usesN, err := parseFormula(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing formula %q: %w", expr, err)
	}
	if !usesN {
		return nil, fmt.Errorf("%w: %q", ErrMissingVariable, expr)
	}

	if sample := root.eval(formulaSample); math.IsNaN(sample) || math.IsInf(sample, 0) {
		return nil, fmt.Errorf("%w: %q at n=%d", ErrNotFinite, expr, formulaSample)
	}

	return &FormulaValue{expr: expr, root: root}, nil
}

// Compute evaluates the formula with the measurement substituted for n.
// A non-finite result degrades to zero so a validated formula can never
// poison a score mid-game.
func (v *FormulaValue) Compute(n float64) float64 {
	result := v.root.eval(n)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// Expr returns the original expression text.
func (v *FormulaValue) Expr() string {
	return v.expr
}
