package store

import (
	"context"
	"time"

	"github.com/studyloop/studyloop/internal/fsrs"
)

// Card is one reviewable fact owned by exactly one user. Memory state is
// mutated only by the review processor; everything else is write-once at
// generation time.
type Card struct {
	ID          int32
	UID         string
	UserID      int32
	CourseID    int32
	LessonIndex int32
	StepIndex   int32
	CreatedTs   int64
	UpdatedTs   int64

	Question string
	Answer   string
	Concepts []string // concept slugs this card exercises, stored as JSON

	// Memory state.
	State         fsrs.State
	Stability     float64 // days, >= 0
	Difficulty    float64 // [1, 10] once reviewed
	ScheduledDays float64 // interval chosen at last review
	Reps          int32
	Lapses        int32

	// Scheduling.
	DueTs        int64
	LastReviewTs *int64 // nil before first review
}

// DueTime returns the due timestamp as time.Time.
func (c *Card) DueTime() time.Time {
	return time.Unix(c.DueTs, 0)
}

// ElapsedDays returns days since the last review, floored at zero.
// A card that has never been reviewed has zero elapsed time.
func (c *Card) ElapsedDays(now time.Time) float64 {
	if c.LastReviewTs == nil {
		return 0
	}
	elapsed := now.Sub(time.Unix(*c.LastReviewTs, 0)).Hours() / 24
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// CardOrder selects the ordering of a card listing.
type CardOrder int

const (
	CardOrderCreatedAsc CardOrder = iota // creation order, oldest first
	CardOrderDueAsc                      // due date ascending
)

// FindCard is the find condition for cards.
type FindCard struct {
	ID          *int32
	UID         *string
	UserID      *int32
	CourseID    *int32
	LessonIndex *int32
	StepIndex   *int32

	State        *fsrs.State
	ExcludeState *fsrs.State
	DueBefore    *int64 // due_ts <= DueBefore

	OrderBy CardOrder
	Limit   *int
}

// UpdateCard is the partial-update request for a card. Nil fields are left
// untouched. When ExpectedUpdatedTs is set the update only applies if the
// row still carries that updated_ts; otherwise ErrStaleWrite is returned.
type UpdateCard struct {
	ID                int32
	ExpectedUpdatedTs *int64

	State         *fsrs.State
	Stability     *float64
	Difficulty    *float64
	ScheduledDays *float64
	Reps          *int32
	Lapses        *int32
	DueTs         *int64
	LastReviewTs  *int64
}

// DeleteCard is the delete request for cards. Deleting by CourseID removes
// all cards generated from that course (course-deletion cascade).
type DeleteCard struct {
	ID       *int32
	CourseID *int32
}

// CreateCard creates a new card.
func (s *Store) CreateCard(ctx context.Context, create *Card) (*Card, error) {
	return s.driver.CreateCard(ctx, create)
}

// ListCards lists cards with filter.
func (s *Store) ListCards(ctx context.Context, find *FindCard) ([]*Card, error) {
	return s.driver.ListCards(ctx, find)
}

// GetCard gets a single card, or nil when no card matches.
func (s *Store) GetCard(ctx context.Context, find *FindCard) (*Card, error) {
	limit := 1
	find.Limit = &limit
	list, err := s.driver.ListCards(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateCard updates a card.
func (s *Store) UpdateCard(ctx context.Context, update *UpdateCard) error {
	return s.driver.UpdateCard(ctx, update)
}

// DeleteCards deletes cards matching the request.
func (s *Store) DeleteCards(ctx context.Context, delete *DeleteCard) error {
	return s.driver.DeleteCards(ctx, delete)
}
