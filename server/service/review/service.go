// Package review implements the review-card scheduling engine: due-card
// selection under daily quotas, interleaved session ordering, and the review
// processor that applies each grading event to a card's memory state.
//
// The service layer abstracts business logic from the store layer and
// provides a clean interface for upper layers.
package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/studyloop/studyloop/internal/fsrs"
	"github.com/studyloop/studyloop/store"
)

type service struct {
	store     Store
	scheduler *fsrs.Scheduler
	logger    *slog.Logger
	now       func() time.Time
}

// Store is the interface for store operations needed by the review service.
type Store interface {
	GetCard(ctx context.Context, find *store.FindCard) (*store.Card, error)
	ListCards(ctx context.Context, find *store.FindCard) ([]*store.Card, error)
	UpdateCard(ctx context.Context, update *store.UpdateCard) error

	CreateReviewLog(ctx context.Context, create *store.ReviewLog) (*store.ReviewLog, error)
	CountReviewLogs(ctx context.Context, find *store.FindReviewLog) (int, error)

	GetConceptMastery(ctx context.Context, find *store.FindConceptMastery) (*store.ConceptMastery, error)
	UpsertConceptMastery(ctx context.Context, upsert *store.ConceptMastery) (*store.ConceptMastery, error)
	ResolveKnowledgeGaps(ctx context.Context, resolve *store.ResolveKnowledgeGap) (int, error)

	GetUserSrsSettings(ctx context.Context, find *store.FindUserSrsSettings) (*store.UserSrsSettings, error)
}

// NewService creates a new review service backed by the given store.
func NewService(st Store, logger *slog.Logger) (Service, error) {
	scheduler, err := fsrs.NewScheduler(fsrs.Config{})
	if err != nil {
		return nil, err
	}
	return &service{
		store:     st,
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
	}, nil
}
