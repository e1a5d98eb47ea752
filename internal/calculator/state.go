package calculator

// State is the calculator's display model. The zero value is the start
// state: both operands and the result are 0 and no operator has been
// applied yet.
//
// Result is only refreshed by a Compute event. Editing an operand
// afterwards leaves Result describing the previous computation until the
// next Compute.
type State struct {
	First  float64
	Second float64
	Result float64

	last     Operator
	computed bool
}

// LastOperator reports the operator of the most recent Compute event.
// ok is false until the first computation.
func (s State) LastOperator() (op Operator, ok bool) {
	return s.last, s.computed
}

// Update applies e to s in place.
func (s *State) Update(e Event) {
	e.apply(s)
}

// Transition returns the state that follows s after e. s is not modified.
func Transition(s State, e Event) State {
	s.Update(e)
	return s
}

// Replay folds events over the start state, in order.
func Replay(events ...Event) State {
	var s State
	for _, e := range events {
		s.Update(e)
	}
	return s
}
