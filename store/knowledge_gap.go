package store

import "context"

// KnowledgeGap marks a concept a user has demonstrably struggled with.
// Gaps are opened by the surrounding platform and resolved by the review
// processor once mastery recovers.
type KnowledgeGap struct {
	ID         int32
	UserID     int32
	Concept    string
	Open       bool
	CreatedTs  int64
	ResolvedTs *int64
}

// FindKnowledgeGap is the find condition for knowledge gaps.
type FindKnowledgeGap struct {
	UserID  *int32
	Concept *string
	Open    *bool
}

// ResolveKnowledgeGap marks all open gaps for a user+concept as resolved.
type ResolveKnowledgeGap struct {
	UserID     int32
	Concept    string
	ResolvedTs int64
}

// CreateKnowledgeGap opens a knowledge gap.
func (s *Store) CreateKnowledgeGap(ctx context.Context, create *KnowledgeGap) (*KnowledgeGap, error) {
	return s.driver.CreateKnowledgeGap(ctx, create)
}

// ListKnowledgeGaps lists knowledge gaps with filter.
func (s *Store) ListKnowledgeGaps(ctx context.Context, find *FindKnowledgeGap) ([]*KnowledgeGap, error) {
	return s.driver.ListKnowledgeGaps(ctx, find)
}

// ResolveKnowledgeGaps resolves open gaps and returns the number affected.
func (s *Store) ResolveKnowledgeGaps(ctx context.Context, resolve *ResolveKnowledgeGap) (int, error) {
	return s.driver.ResolveKnowledgeGaps(ctx, resolve)
}
