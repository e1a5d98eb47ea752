package calculator

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Number is a float64 that survives JSON encoding when it is not finite:
// finite values are written as JSON numbers, ±Inf and NaN as the strings
// "+Inf", "-Inf" and "NaN".
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return json.Marshal(FormatNumber(v))
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Number(ParseOperand(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = Number(ParseOperand(num.String()))
	return nil
}

// Operand is user input for an operand field. It accepts a JSON number or
// a string. Both go through ParseOperand, so out-of-range values saturate
// to ±Inf either way. Any other JSON value (null, bool, object) becomes 0.
type Operand float64

func (o *Operand) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = Operand(ParseOperand(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*o = Operand(ParseOperand(num.String()))
		return nil
	}
	*o = 0
	return nil
}

// CalcRequest is the JSON body for one-shot operations (add, subtract, multiply, divide).
type CalcRequest struct {
	A Operand `json:"a"`
	B Operand `json:"b"`
}

// CalcResponse is the JSON response for one-shot operations.
type CalcResponse struct {
	Operation string `json:"operation"`
	A         Number `json:"a"`
	B         Number `json:"b"`
	Result    Number `json:"result"`
	Display   string `json:"display"`
}

// OperandRequest is the JSON body for PUT /calculator/sessions/{id}/first|second.
type OperandRequest struct {
	Text string `json:"text"`
}

// EventRequest describes one event in a replay.
type EventRequest struct {
	Type  string  `json:"type"`            // "first", "second", "compute"
	Value Operand `json:"value,omitempty"` // for "first" and "second"
	Op    string  `json:"op,omitempty"`    // for "compute", glyph or name
}

// ReplayRequest is the JSON body for POST /calculator/replay.
type ReplayRequest struct {
	Events []EventRequest `json:"events"`
}

// Snapshot is the JSON view of a State.
type Snapshot struct {
	ID       string `json:"id,omitempty"`
	First    Number `json:"first"`
	Second   Number `json:"second"`
	Operator string `json:"operator"`
	Result   Number `json:"result"`
	Display  string `json:"display"`
}

// NewSnapshot captures s for a response body.
func NewSnapshot(id string, s State) Snapshot {
	glyph := ""
	if op, ok := s.LastOperator(); ok {
		glyph = op.Glyph()
	}
	return Snapshot{
		ID:       id,
		First:    Number(s.First),
		Second:   Number(s.Second),
		Operator: glyph,
		Result:   Number(s.Result),
		Display:  s.View(),
	}
}

// ReplayStep records the display after one replayed event.
type ReplayStep struct {
	Kind    string `json:"kind"`
	Display string `json:"display"`
}

// ReplayResponse is the JSON response for POST /calculator/replay.
type ReplayResponse struct {
	Steps []ReplayStep `json:"steps"`
	State Snapshot     `json:"state"`
}
