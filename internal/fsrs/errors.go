package fsrs

import "errors"

// Sentinel errors for the fsrs package.
// Use errors.Is to check: errors.Is(err, fsrs.ErrInvalidRating)
var (
	ErrInvalidRating    = errors.New("fsrs: invalid rating")
	ErrInvalidState     = errors.New("fsrs: invalid state")
	ErrInvalidWeights   = errors.New("fsrs: weights out of bounds")
	ErrInvalidRetention = errors.New("fsrs: target retention out of range (0, 1)")
	ErrInvalidElapsed   = errors.New("fsrs: negative elapsed days")
	ErrInvariant        = errors.New("fsrs: scheduling invariant violated")
)
