package fsrs

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRatingValues(t *testing.T) {
	if Again != 1 || Hard != 2 || Good != 3 || Easy != 4 {
		t.Errorf("rating constants = %d %d %d %d, want 1 2 3 4", Again, Hard, Good, Easy)
	}
}

func TestRatingIsValid(t *testing.T) {
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		if !r.IsValid() {
			t.Errorf("%v.IsValid() = false", r)
		}
	}
	for _, r := range []Rating{0, 5, -1} {
		if r.IsValid() {
			t.Errorf("Rating(%d).IsValid() = true", int(r))
		}
	}
}

func TestRatingJSONRoundTrip(t *testing.T) {
	for _, r := range []Rating{Again, Hard, Good, Easy} {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal %v: %v", r, err)
		}
		var back Rating
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != r {
			t.Errorf("round trip %v -> %s -> %v", r, data, back)
		}
	}
}

func TestRatingUnmarshalRejectsUnknown(t *testing.T) {
	var r Rating
	err := r.UnmarshalText([]byte("perfect"))
	if !errors.Is(err, ErrInvalidRating) {
		t.Errorf("err = %v, want ErrInvalidRating", err)
	}
}
