package calculator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperand(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"4", 4},
		{"-2.5", -2.5},
		{"1e3", 1000},
		{"", 0},
		{"four", 0},
		{"4 ", 0},
		{"1,5", 0},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseOperand(tc.in))
		})
	}
}

func TestParseOperandNonFinite(t *testing.T) {
	assert.True(t, math.IsInf(ParseOperand("1e400"), 1), "overflow saturates")
	assert.True(t, math.IsInf(ParseOperand("-1e400"), -1))
	assert.True(t, math.IsInf(ParseOperand("inf"), 1))
	assert.True(t, math.IsNaN(ParseOperand("NaN")))
}

func TestMalformedTextMapsToZeroOperand(t *testing.T) {
	s := Replay(SetFirstOperand{Value: 8}, SetFirstOperand{Value: ParseOperand("not a number")})
	assert.Equal(t, 0.0, s.First)
}

func TestView(t *testing.T) {
	tests := []struct {
		name string
		s    State
		want string
	}{
		{"start", State{}, "0  0\n0"},
		{"add", Replay(SetFirstOperand{Value: 4}, SetSecondOperand{Value: 2}, Compute{Op: OpAdd}), "4 + 2\n6"},
		{"fraction", Replay(SetFirstOperand{Value: 1}, SetSecondOperand{Value: 4}, Compute{Op: OpDivide}), "1 / 4\n0.25"},
		{"infinity", Replay(SetFirstOperand{Value: 10}, Compute{Op: OpDivide}), "10 / 0\n+Inf"},
		{"nan", Replay(Compute{Op: OpDivide}), "0 / 0\nNaN"},
		{"stale", Replay(SetFirstOperand{Value: 5}, SetSecondOperand{Value: 3}, Compute{Op: OpSubtract}, SetFirstOperand{Value: 100}), "100 - 3\n2"},
		{"operands before compute", Replay(SetFirstOperand{Value: 1.5}, SetSecondOperand{Value: -2}), "1.5  -2\n0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.s.View())
		})
	}
}

func TestNumberJSON(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{6, `6`},
		{0.25, `0.25`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
		{math.NaN(), `"NaN"`},
	}

	for _, tc := range tests {
		b, err := json.Marshal(Number(tc.in))
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(b))
	}

	var n Number
	require.NoError(t, json.Unmarshal([]byte(`"+Inf"`), &n))
	assert.True(t, math.IsInf(float64(n), 1))
	require.NoError(t, json.Unmarshal([]byte(`2.5`), &n))
	assert.Equal(t, Number(2.5), n)
}

func TestOperandJSONFallsBackToZero(t *testing.T) {
	var req CalcRequest
	require.NoError(t, json.Unmarshal([]byte(`{"a":"12.5","b":true}`), &req))
	assert.Equal(t, Operand(12.5), req.A)
	assert.Equal(t, Operand(0), req.B)

	require.NoError(t, json.Unmarshal([]byte(`{"a":"twelve","b":3}`), &req))
	assert.Equal(t, Operand(0), req.A)
	assert.Equal(t, Operand(3), req.B)
}

func TestOperandJSONSaturatesOutOfRangeNumbers(t *testing.T) {
	var req CalcRequest
	require.NoError(t, json.Unmarshal([]byte(`{"a":1e400,"b":-1e400}`), &req))
	assert.True(t, math.IsInf(float64(req.A), 1))
	assert.True(t, math.IsInf(float64(req.B), -1))

	require.NoError(t, json.Unmarshal([]byte(`{"a":"1e400","b":"-1e400"}`), &req))
	assert.True(t, math.IsInf(float64(req.A), 1))
	assert.True(t, math.IsInf(float64(req.B), -1))

	var n Number
	require.NoError(t, json.Unmarshal([]byte(`1e400`), &n))
	assert.True(t, math.IsInf(float64(n), 1))
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot("id-1", Replay(SetFirstOperand{Value: 4}, SetSecondOperand{Value: 2}, Compute{Op: OpMultiply}))

	assert.Equal(t, "id-1", snap.ID)
	assert.Equal(t, "*", snap.Operator)
	assert.Equal(t, Number(8), snap.Result)
	assert.Equal(t, "4 * 2\n8", snap.Display)

	assert.Equal(t, "", NewSnapshot("", State{}).Operator)
}
