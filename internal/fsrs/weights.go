package fsrs

import "fmt"

// Weights is the 17-element FSRS parameter vector.
//
// w[0..3]   initial stability S₀(G) per rating
// w[4..7]   difficulty: D₀ base, D₀ slope, rating delta, mean reversion
// w[8..10]  recall stability growth
// w[11..14] post-lapse stability
// w[15]     hard penalty
// w[16]     easy bonus
type Weights [17]float64

// DefaultWeights are the published FSRS-4.5 default parameter values.
var DefaultWeights = Weights{
	0.5701, 1.4436, 4.1386, 10.9355,
	5.1443, 1.2006, 0.8627, 0.0362,
	1.629, 0.1342, 1.0166, 2.1174,
	0.0839, 0.3204, 1.4676,
	0.219, 2.8237,
}

// LowerBounds defines the minimum allowed value for each weight.
var LowerBounds = Weights{
	0.01, 0.01, 0.01, 0.01,
	1.0, 0.1, 0.1, 0.0,
	0.0, 0.1, 0.01, 0.5,
	0.01, 0.01, 0.01,
	0.0, 1.0,
}

// UpperBounds defines the maximum allowed value for each weight.
var UpperBounds = Weights{
	100.0, 100.0, 100.0, 100.0,
	10.0, 5.0, 5.0, 0.75,
	4.5, 0.8, 3.5, 5.0,
	0.25, 0.9, 4.0,
	1.0, 6.0,
}

// ValidateWeights checks that every weight is within [LowerBounds, UpperBounds].
func ValidateWeights(w Weights) error {
	for i := range w {
		if w[i] < LowerBounds[i] || w[i] > UpperBounds[i] {
			return fmt.Errorf("%w: w[%d] = %f, bounds [%f, %f]",
				ErrInvalidWeights, i, w[i], LowerBounds[i], UpperBounds[i])
		}
	}
	return nil
}
