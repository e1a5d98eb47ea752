package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOperator is returned by ParseOperator for names outside the
// four supported operations.
var ErrUnknownOperator = errors.New("unknown operator")

// Operator is one of the four arithmetic operations a user can trigger.
type Operator int

const (
	OpAdd Operator = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
)

// Operators lists every operator in display order.
var Operators = []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Glyph returns the display symbol for op.
func (op Operator) Glyph() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	}
	return ""
}

// Name returns the lower-case operation name used in routes and metrics.
func (op Operator) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	}
	return "unknown"
}

func (op Operator) String() string {
	return op.Glyph()
}

// Apply evaluates op on a and b. Division follows IEEE-754, so a zero
// divisor yields ±Inf or NaN.
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	}
	return 0
}

// ParseOperator accepts a glyph ("+") or a name ("add", any case).
func ParseOperator(s string) (Operator, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, op := range Operators {
		if key == op.Glyph() || key == op.Name() {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}
