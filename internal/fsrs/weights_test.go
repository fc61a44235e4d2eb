package fsrs

import (
	"errors"
	"testing"
)

func TestDefaultWeightsValid(t *testing.T) {
	if err := ValidateWeights(DefaultWeights); err != nil {
		t.Fatalf("ValidateWeights(DefaultWeights) = %v", err)
	}
}

func TestValidateWeightsBounds(t *testing.T) {
	for i := range DefaultWeights {
		w := DefaultWeights
		w[i] = LowerBounds[i] - 1
		if err := ValidateWeights(w); !errors.Is(err, ErrInvalidWeights) {
			t.Errorf("w[%d] below lower bound accepted: %v", i, err)
		}
		w = DefaultWeights
		w[i] = UpperBounds[i] + 1
		if err := ValidateWeights(w); !errors.Is(err, ErrInvalidWeights) {
			t.Errorf("w[%d] above upper bound accepted: %v", i, err)
		}
	}
}
