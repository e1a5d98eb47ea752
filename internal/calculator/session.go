package calculator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownEvent    = errors.New("unknown event type")
)

// SessionStore holds one State per web-form session. Each State is only
// touched while the store lock is held, so a session sees its events one
// at a time in arrival order.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*State
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*State)}
}

// Create registers a session in the start state and returns its ID.
func (s *SessionStore) Create() (string, State) {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := &State{}
	s.sessions[id] = st
	return id, *st
}

// Get returns a copy of the session's state.
func (s *SessionStore) Get(id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return *st, nil
}

// Dispatch applies e to the session and returns the resulting state.
func (s *SessionStore) Dispatch(id string, e Event) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	st.Update(e)
	return *st, nil
}

func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Event converts a replay entry into a reducer event.
func (r EventRequest) Event() (Event, error) {
	switch strings.ToLower(r.Type) {
	case "first", "set_first":
		return SetFirstOperand{Value: float64(r.Value)}, nil
	case "second", "set_second":
		return SetSecondOperand{Value: float64(r.Value)}, nil
	case "compute":
		op, err := ParseOperator(r.Op)
		if err != nil {
			return nil, err
		}
		return Compute{Op: op}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, r.Type)
}
