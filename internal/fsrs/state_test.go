package fsrs

import (
	"encoding/json"
	"testing"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateNew, "new"},
		{StateLearning, "learning"},
		{StateReview, "review"},
		{StateRelearning, "relearning"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	for _, s := range []State{StateNew, StateLearning, StateReview, StateRelearning} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("marshal %v: %v", s, err)
		}
		var back State
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != s {
			t.Errorf("round trip %v -> %s -> %v", s, data, back)
		}
	}
}

func TestStateUnmarshalRejectsUnknown(t *testing.T) {
	var s State
	if err := s.UnmarshalText([]byte("archived")); err == nil {
		t.Error("unknown state accepted")
	}
	if err := json.Unmarshal([]byte(`5`), &s); err == nil {
		t.Error("numeric state accepted")
	}
}
