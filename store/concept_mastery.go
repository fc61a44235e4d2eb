package store

import "context"

// ConceptMastery is the derived per-user, per-concept mastery score.
// Created lazily on first exposure; the level stays within [0, 1].
type ConceptMastery struct {
	ID                int32
	UserID            int32
	Concept           string
	MasteryLevel      float64
	PeakMastery       float64
	TotalExposures    int32
	SuccessfulRecalls int32
	LastReviewedTs    int64
}

// FindConceptMastery is the find condition for concept mastery rows.
type FindConceptMastery struct {
	UserID  *int32
	Concept *string
}

// GetConceptMastery gets the mastery row for one user+concept, or nil.
func (s *Store) GetConceptMastery(ctx context.Context, find *FindConceptMastery) (*ConceptMastery, error) {
	return s.driver.GetConceptMastery(ctx, find)
}

// ListConceptMasteries lists mastery rows with filter.
func (s *Store) ListConceptMasteries(ctx context.Context, find *FindConceptMastery) ([]*ConceptMastery, error) {
	return s.driver.ListConceptMasteries(ctx, find)
}

// UpsertConceptMastery inserts or replaces the mastery row for
// (user, concept).
func (s *Store) UpsertConceptMastery(ctx context.Context, upsert *ConceptMastery) (*ConceptMastery, error) {
	return s.driver.UpsertConceptMastery(ctx, upsert)
}
