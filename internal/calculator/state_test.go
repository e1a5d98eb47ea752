package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroStateIsStartState(t *testing.T) {
	var s State

	assert.Equal(t, 0.0, s.First)
	assert.Equal(t, 0.0, s.Second)
	assert.Equal(t, 0.0, s.Result)

	_, ok := s.LastOperator()
	assert.False(t, ok, "no operator before the first computation")
}

func TestComputeAppliesOperator(t *testing.T) {
	operands := []struct{ a, b float64 }{
		{4, 2},
		{-1.5, 0.25},
		{1e300, 1e10},
		{0, 0},
		{3, -7},
	}

	for _, op := range Operators {
		for _, tc := range operands {
			s := Replay(SetFirstOperand{Value: tc.a}, SetSecondOperand{Value: tc.b}, Compute{Op: op})

			want := op.Apply(tc.a, tc.b)
			if math.IsNaN(want) {
				assert.True(t, math.IsNaN(s.Result), "%v %s %v", tc.a, op, tc.b)
			} else {
				assert.Equal(t, want, s.Result, "%v %s %v", tc.a, op, tc.b)
			}

			last, ok := s.LastOperator()
			require.True(t, ok)
			assert.Equal(t, op, last)
		}
	}
}

func TestOperatorApply(t *testing.T) {
	assert.Equal(t, 6.0, OpAdd.Apply(4, 2))
	assert.Equal(t, 2.0, OpSubtract.Apply(4, 2))
	assert.Equal(t, 8.0, OpMultiply.Apply(4, 2))
	assert.Equal(t, 2.0, OpDivide.Apply(4, 2))
}

func TestDivideByZeroFollowsIEEE754(t *testing.T) {
	pos := Replay(SetFirstOperand{Value: 10}, SetSecondOperand{Value: 0}, Compute{Op: OpDivide})
	assert.True(t, math.IsInf(pos.Result, 1))

	neg := Replay(SetFirstOperand{Value: -10}, Compute{Op: OpDivide})
	assert.True(t, math.IsInf(neg.Result, -1))

	nan := Replay(Compute{Op: OpDivide})
	assert.True(t, math.IsNaN(nan.Result))
}

func TestScenarioAdd(t *testing.T) {
	s := Replay(SetFirstOperand{Value: 4}, SetSecondOperand{Value: 2}, Compute{Op: OpAdd})

	assert.Equal(t, 6.0, s.Result)
	op, ok := s.LastOperator()
	assert.True(t, ok)
	assert.Equal(t, OpAdd, op)
}

func TestScenarioMultiplyWithoutOperands(t *testing.T) {
	s := Replay(Compute{Op: OpMultiply})

	assert.Equal(t, 0.0, s.Result)
	op, _ := s.LastOperator()
	assert.Equal(t, OpMultiply, op)
}

func TestResultStaysStaleUntilNextCompute(t *testing.T) {
	var s State
	s.Update(SetFirstOperand{Value: 5})
	s.Update(SetSecondOperand{Value: 3})
	s.Update(Compute{Op: OpSubtract})
	require.Equal(t, 2.0, s.Result)

	s.Update(SetFirstOperand{Value: 100})
	assert.Equal(t, 100.0, s.First)
	assert.Equal(t, 2.0, s.Result)

	s.Update(SetSecondOperand{Value: 50})
	assert.Equal(t, 2.0, s.Result)

	op, _ := s.LastOperator()
	assert.Equal(t, OpSubtract, op, "operand edits keep the last operator")

	s.Update(Compute{Op: OpSubtract})
	assert.Equal(t, 50.0, s.Result)
}

func TestLastOperatorTracksMostRecentCompute(t *testing.T) {
	var s State
	for _, op := range []Operator{OpDivide, OpAdd, OpMultiply, OpMultiply, OpSubtract} {
		s.Update(Compute{Op: op})
		last, ok := s.LastOperator()
		require.True(t, ok)
		assert.Equal(t, op, last)
	}
}

func TestTransitionDoesNotModifyInput(t *testing.T) {
	start := Replay(SetFirstOperand{Value: 1})

	next := Transition(start, SetFirstOperand{Value: 9})

	assert.Equal(t, 1.0, start.First)
	assert.Equal(t, 9.0, next.First)
}

func TestEventKinds(t *testing.T) {
	assert.Equal(t, "set_first", SetFirstOperand{}.Kind())
	assert.Equal(t, "set_second", SetSecondOperand{}.Kind())
	assert.Equal(t, "compute", Compute{}.Kind())
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		in   string
		want Operator
	}{
		{"+", OpAdd},
		{"add", OpAdd},
		{"-", OpSubtract},
		{"Subtract", OpSubtract},
		{"*", OpMultiply},
		{" MULTIPLY ", OpMultiply},
		{"/", OpDivide},
		{"divide", OpDivide},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOperator(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseOperator("%")
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func TestOperatorGlyphsAndNames(t *testing.T) {
	glyphs := make([]string, 0, len(Operators))
	names := make([]string, 0, len(Operators))
	for _, op := range Operators {
		glyphs = append(glyphs, op.Glyph())
		names = append(names, op.Name())
	}

	assert.Equal(t, []string{"+", "-", "*", "/"}, glyphs)
	assert.Equal(t, []string{"add", "subtract", "multiply", "divide"}, names)
	assert.Equal(t, "", Operator(0).Glyph())
}
