// Package fsrs implements the FSRS-style memory model used by the review
// scheduler. It is a pure library: no I/O, no wall-clock reads, and
// bit-reproducible output for identical input.
package fsrs

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultTargetRetention is the recall probability the scheduler
	// targets when no per-user override is supplied.
	DefaultTargetRetention = 0.9

	// DefaultMaximumInterval caps the scheduled interval at 100 years.
	DefaultMaximumInterval = 36500

	minStability = 0.001
)

// Config configures a Scheduler. Zero values produce sensible defaults.
type Config struct {
	Weights         Weights         // zero → DefaultWeights
	TargetRetention float64         // zero → 0.9
	LearningSteps   []time.Duration // nil → [1m, 10m]
	RelearningSteps []time.Duration // nil → [10m]
	MaximumInterval int             // zero → 36500 days
}

// Scheduler computes per-card memory-state updates after grading events.
// It is safe for concurrent use.
type Scheduler struct {
	w               Weights
	targetRetention float64
	learningSteps   []time.Duration
	relearningSteps []time.Duration
	maximumInterval int
}

// Review is a single grading event presented to the memory model.
// The caller supplies Now; the model never reads the wall clock.
type Review struct {
	State           State
	Stability       float64
	Difficulty      float64
	ElapsedDays     float64 // days since last review, >= 0
	Rating          Rating
	TargetRetention float64 // zero → scheduler default
	Now             time.Time
}

// Result is the card's next memory state and schedule.
type Result struct {
	State         State
	Stability     float64
	Difficulty    float64
	ScheduledDays float64 // fractional for learning steps, >= 1 once in review
	Due           time.Time
	Lapsed        bool // true when Again was rated while in review
}

// NewScheduler creates a Scheduler from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewScheduler(cfg Config) (*Scheduler, error) {
	w := cfg.Weights
	if w == (Weights{}) {
		w = DefaultWeights
	}
	if err := ValidateWeights(w); err != nil {
		return nil, err
	}

	tr := cfg.TargetRetention
	if tr == 0 {
		tr = DefaultTargetRetention
	}
	if tr <= 0 || tr >= 1 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidRetention, tr)
	}

	maxIvl := cfg.MaximumInterval
	if maxIvl == 0 {
		maxIvl = DefaultMaximumInterval
	}
	if maxIvl < 1 {
		return nil, fmt.Errorf("fsrs: maximum interval %d must be positive", maxIvl)
	}

	ls := cfg.LearningSteps
	if ls == nil {
		ls = []time.Duration{time.Minute, 10 * time.Minute}
	}
	rs := cfg.RelearningSteps
	if rs == nil {
		rs = []time.Duration{10 * time.Minute}
	}

	return &Scheduler{
		w:               w,
		targetRetention: tr,
		learningSteps:   ls,
		relearningSteps: rs,
		maximumInterval: maxIvl,
	}, nil
}

// ProcessReview applies one grading event and returns the next memory state.
func (s *Scheduler) ProcessReview(rev Review) (Result, error) {
	if !rev.Rating.IsValid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rev.Rating))
	}
	if !rev.State.IsValid() {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidState, int(rev.State))
	}
	if rev.ElapsedDays < 0 {
		return Result{}, fmt.Errorf("%w: %f", ErrInvalidElapsed, rev.ElapsedDays)
	}

	tr := rev.TargetRetention
	if tr == 0 {
		tr = s.targetRetention
	}
	if tr <= 0 || tr >= 1 {
		return Result{}, fmt.Errorf("%w: %f", ErrInvalidRetention, tr)
	}

	switch rev.State {
	case StateNew:
		return s.reviewNew(rev, tr), nil
	case StateLearning:
		return s.reviewStep(rev, tr, s.learningSteps, StateLearning), nil
	case StateRelearning:
		return s.reviewStep(rev, tr, s.relearningSteps, StateRelearning), nil
	default:
		return s.reviewSettled(rev, tr)
	}
}

// Retrievability returns R(t, S) = (1 + t/(9S))^-1, the estimated recall
// probability after elapsed days at the given stability. By construction
// R(S, S) = 0.9. Returns 0 for non-positive stability.
func (s *Scheduler) Retrievability(elapsedDays, stability float64) float64 {
	if stability <= 0 {
		return 0
	}
	return retrievability(elapsedDays, stability)
}

// reviewNew seeds stability and difficulty from the rating. No elapsed-time
// factor applies; the card has no memory state yet.
func (s *Scheduler) reviewNew(rev Review, tr float64) Result {
	stability := clampStability(s.w[rev.Rating-1])
	difficulty := clampDifficulty(s.initDifficulty(rev.Rating))

	if rev.Rating >= Good {
		return s.graduate(rev.Now, stability, difficulty, tr, false)
	}
	return s.stepResult(rev.Now, stability, difficulty, rev.Rating, s.learningSteps, StateLearning, false)
}

// reviewStep handles Learning and Relearning. Stability keeps its seeded or
// post-lapse value; difficulty still moves with the rating. A rating of Good
// or better graduates the card to Review.
func (s *Scheduler) reviewStep(rev Review, tr float64, steps []time.Duration, state State) Result {
	stability := clampStability(rev.Stability)
	difficulty := clampDifficulty(s.nextDifficulty(rev.Difficulty, rev.Rating))

	if rev.Rating >= Good {
		return s.graduate(rev.Now, stability, difficulty, tr, false)
	}
	return s.stepResult(rev.Now, stability, difficulty, rev.Rating, steps, state, false)
}

// reviewSettled handles cards in the long-term review cycle. This is the only
// path that evaluates the forgetting curve.
func (s *Scheduler) reviewSettled(rev Review, tr float64) (Result, error) {
	if rev.Stability <= 0 {
		return Result{}, fmt.Errorf("%w: review-state card with stability %f", ErrInvariant, rev.Stability)
	}

	r := retrievability(rev.ElapsedDays, rev.Stability)
	difficulty := clampDifficulty(s.nextDifficulty(rev.Difficulty, rev.Rating))

	if rev.Rating == Again {
		stability := clampStability(s.forgetStability(rev.Difficulty, rev.Stability, r))
		return s.stepResult(rev.Now, stability, difficulty, rev.Rating, s.relearningSteps, StateRelearning, true), nil
	}

	stability := clampStability(s.recallStability(rev.Difficulty, rev.Stability, r, rev.Rating))
	return s.graduate(rev.Now, stability, difficulty, tr, false), nil
}

// graduate produces a Review-state result with a day-scale interval.
func (s *Scheduler) graduate(now time.Time, stability, difficulty, tr float64, lapsed bool) Result {
	days := s.nextInterval(stability, tr)
	return Result{
		State:         StateReview,
		Stability:     stability,
		Difficulty:    difficulty,
		ScheduledDays: days,
		Due:           now.Add(time.Duration(days * 24 * float64(time.Hour))),
		Lapsed:        lapsed,
	}
}

// stepResult produces a short-interval result for Learning/Relearning.
func (s *Scheduler) stepResult(now time.Time, stability, difficulty float64, rating Rating, steps []time.Duration, state State, lapsed bool) Result {
	interval := stepInterval(rating, steps)
	return Result{
		State:         state,
		Stability:     stability,
		Difficulty:    difficulty,
		ScheduledDays: interval.Hours() / 24,
		Due:           now.Add(interval),
		Lapsed:        lapsed,
	}
}

// stepInterval picks the short fixed interval for a failed step review.
// Again restarts at the first step; Hard lands between the first two steps
// (or 1.5x a lone step).
func stepInterval(rating Rating, steps []time.Duration) time.Duration {
	if len(steps) == 0 {
		return time.Minute
	}
	if rating == Again || len(steps) == 1 {
		d := steps[0]
		if rating == Hard {
			d = time.Duration(float64(d) * 1.5)
		}
		return d
	}
	return (steps[0] + steps[1]) / 2
}

// retrievability is the forgetting-curve approximation R(t, S) = (1 + t/(9S))^-1.
func retrievability(elapsedDays, stability float64) float64 {
	return 1 / (1 + elapsedDays/(9*stability))
}

// nextInterval inverts the forgetting curve for the target retention:
// I(r, S) = 9S(1/r - 1), rounded and clamped to [1, maximumInterval].
func (s *Scheduler) nextInterval(stability, targetRetention float64) float64 {
	ivl := math.Round(9 * stability * (1/targetRetention - 1))
	if ivl < 1 {
		ivl = 1
	}
	if ivl > float64(s.maximumInterval) {
		ivl = float64(s.maximumInterval)
	}
	return ivl
}

// initDifficulty computes D₀(G) = w[4] - e^(w[5](G-1)) + 1, unclamped.
func (s *Scheduler) initDifficulty(rating Rating) float64 {
	return s.w[4] - math.Exp(s.w[5]*float64(rating-1)) + 1
}

// nextDifficulty applies the rating-weighted delta with linear damping and
// mean reversion toward D₀(Easy):
//
//	ΔD = -w[6](G - 3)
//	D'  = D + (10 - D)ΔD/9
//	D'' = w[7]·D₀(Easy) + (1 - w[7])·D'
func (s *Scheduler) nextDifficulty(difficulty float64, rating Rating) float64 {
	deltaD := -s.w[6] * (float64(rating) - 3)
	dPrime := difficulty + (10-difficulty)*deltaD/9
	return s.w[7]*s.initDifficulty(Easy) + (1-s.w[7])*dPrime
}

// recallStability computes stability after a successful recall:
//
//	S' = S(1 + e^w[8] (11-D) S^-w[9] (e^((1-R)w[10]) - 1) · hard · easy)
func (s *Scheduler) recallStability(d, st, r float64, rating Rating) float64 {
	hardPenalty := 1.0
	if rating == Hard {
		hardPenalty = s.w[15]
	}
	easyBonus := 1.0
	if rating == Easy {
		easyBonus = s.w[16]
	}
	return st * (1 + math.Exp(s.w[8])*
		(11-d)*
		math.Pow(st, -s.w[9])*
		(math.Exp((1-r)*s.w[10])-1)*
		hardPenalty*easyBonus)
}

// forgetStability computes post-lapse stability, capped below the pre-lapse
// value so a lapse always shrinks the memory trace:
//
//	S' = min(S, w[11] D^-w[12] ((S+1)^w[13] - 1) e^((1-R)w[14]))
func (s *Scheduler) forgetStability(d, st, r float64) float64 {
	next := s.w[11] *
		math.Pow(d, -s.w[12]) *
		(math.Pow(st+1, s.w[13]) - 1) *
		math.Exp((1-r)*s.w[14])
	return math.Min(st, next)
}

func clampStability(st float64) float64 {
	return math.Max(st, minStability)
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, 1), 10)
}
