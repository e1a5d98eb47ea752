package calculator

// Event is a single user interaction. The set is closed: SetFirstOperand,
// SetSecondOperand and Compute are the only implementations.
type Event interface {
	// Kind names the event for logs and metrics.
	Kind() string
	apply(*State)
}

// SetFirstOperand replaces the first operand.
type SetFirstOperand struct {
	Value float64
}

func (SetFirstOperand) Kind() string { return "set_first" }

func (e SetFirstOperand) apply(s *State) { s.First = e.Value }

// SetSecondOperand replaces the second operand.
type SetSecondOperand struct {
	Value float64
}

func (SetSecondOperand) Kind() string { return "set_second" }

func (e SetSecondOperand) apply(s *State) { s.Second = e.Value }

// Compute evaluates Op on the current operands and records Op as the last
// operator.
type Compute struct {
	Op Operator
}

func (Compute) Kind() string { return "compute" }

func (e Compute) apply(s *State) {
	s.Result = e.Op.Apply(s.First, s.Second)
	s.last = e.Op
	s.computed = true
}
