package store

import (
	"context"

	"github.com/studyloop/studyloop/internal/fsrs"
)

// ReviewLog is an append-only audit record of one grading event.
// Rows are write-once and never mutated.
type ReviewLog struct {
	ID         int32
	CardID     int32
	UserID     int32
	Rating     fsrs.Rating
	DurationMs int32
	ReviewedTs int64
}

// FindReviewLog is the find condition for review logs.
type FindReviewLog struct {
	UserID        *int32
	CardID        *int32
	ReviewedAfter *int64 // reviewed_ts >= ReviewedAfter

	Limit *int
}

// CreateReviewLog appends a review-log entry.
func (s *Store) CreateReviewLog(ctx context.Context, create *ReviewLog) (*ReviewLog, error) {
	return s.driver.CreateReviewLog(ctx, create)
}

// ListReviewLogs lists review-log entries with filter.
func (s *Store) ListReviewLogs(ctx context.Context, find *FindReviewLog) ([]*ReviewLog, error) {
	return s.driver.ListReviewLogs(ctx, find)
}

// CountReviewLogs counts review-log entries matching the filter. Used for
// the daily quota count (entries since local midnight).
func (s *Store) CountReviewLogs(ctx context.Context, find *FindReviewLog) (int, error) {
	return s.driver.CountReviewLogs(ctx, find)
}
