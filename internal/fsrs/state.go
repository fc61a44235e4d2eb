package fsrs

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// State represents the lifecycle stage of a card.
//
// Transitions: New moves to Learning (rating < Good) or straight to Review
// (rating >= Good). Learning and Relearning graduate to Review. A lapse
// (Again while in Review) moves the card to Relearning. There is no path
// back to New.
type State int

const (
	StateNew        State = iota // Never reviewed, immediately eligible.
	StateLearning                // In initial short-interval steps.
	StateReview                  // In the long-term review cycle.
	StateRelearning              // Lapsed, relearning.
)

var (
	stateNames  = [...]string{StateNew: "new", StateLearning: "learning", StateReview: "review", StateRelearning: "relearning"}
	stateByName = map[string]State{
		"new":        StateNew,
		"learning":   StateLearning,
		"review":     StateReview,
		"relearning": StateRelearning,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = State(0)
	_ json.Marshaler           = State(0)
	_ json.Unmarshaler         = (*State)(nil)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

// IsValid reports whether s is one of the four card states.
func (s State) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

// String returns the name of the state ("new", "learning", "review",
// "relearning"). For invalid values it returns "State(n)".
func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidState, int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, ok := stateByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidState, text)
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. State serializes as a JSON string.
func (s State) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *State) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidState, data)
	}
	return s.UnmarshalText([]byte(str))
}
