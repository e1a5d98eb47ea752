package calculator

import (
	"errors"
	"strconv"
)

// ParseOperand converts user-entered text to a number. Text that is not a
// number yields 0. Values beyond float64 range saturate to ±Inf.
func ParseOperand(text string) float64 {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v
		}
		return 0
	}
	return v
}

// FormatNumber renders v the way the display shows it: the shortest
// representation that round-trips, with "+Inf", "-Inf" and "NaN" for
// non-finite values.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Expression returns the first display line: "<first> <glyph> <second>".
// The glyph slot is empty before the first computation.
func (s State) Expression() string {
	glyph := ""
	if op, ok := s.LastOperator(); ok {
		glyph = op.Glyph()
	}
	return FormatNumber(s.First) + " " + glyph + " " + FormatNumber(s.Second)
}

// View renders the expression line followed by the result line.
func (s State) View() string {
	return s.Expression() + "\n" + FormatNumber(s.Result)
}
