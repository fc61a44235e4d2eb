package review

import (
	"context"
	"time"

	"github.com/studyloop/studyloop/internal/fsrs"
	"github.com/studyloop/studyloop/store"
)

// Service is the scheduling engine surface exposed to the API layer.
// It decides which cards surface in a session, in what order, and how each
// grading event moves a card's memory state.
type Service interface {
	// SelectDue returns the session pool for one user: new cards first,
	// then cards whose due date has passed, both bounded by the user's
	// daily quotas. Callers pass now so behavior is reproducible.
	SelectDue(ctx context.Context, userID int32, now time.Time) (*DueSelection, error)

	// SubmitReview grades one card and persists the resulting memory state.
	SubmitReview(ctx context.Context, userID int32, submit *SubmitReviewRequest) (*ReviewResult, error)
}

// DueSelection is the outcome of one session-start selection.
type DueSelection struct {
	NewCards []*store.Card
	DueCards []*store.Card
	// Ordered is the interleaved session order over NewCards + DueCards.
	// Equal to the plain concatenation when interleaving is disabled.
	Ordered []*store.Card
}

// Stats summarizes a selection for the dashboard payload.
type Stats struct {
	CardsDue    int `json:"cardsDue"`
	NewCards    int `json:"newCards"`
	ReviewCards int `json:"reviewCards"`
}

// Stats returns the bucket counts for the selection.
func (s *DueSelection) Stats() Stats {
	return Stats{
		CardsDue:    len(s.NewCards) + len(s.DueCards),
		NewCards:    len(s.NewCards),
		ReviewCards: len(s.DueCards),
	}
}

// SubmitReviewRequest is one grading event from the client.
type SubmitReviewRequest struct {
	CardID     int32
	Rating     fsrs.Rating
	DurationMs int32
}

// ReviewResult is the schedule outcome returned to the client.
type ReviewResult struct {
	NextDue       time.Time
	ScheduledDays float64
	State         fsrs.State
}
