// Package course turns uploaded course content into reviewable cards. It is
// the producer side of the scheduling engine: lesson markdown is parsed into
// question/answer units and each unit becomes one card in the new state.
package course

import (
	"context"
	"log/slog"
	"time"

	"github.com/studyloop/studyloop/store"
)

// Service generates cards from course content.
type Service interface {
	// GenerateCards creates cards for every unit of every lesson in the
	// course that does not already have one. Idempotent: re-running on an
	// unchanged course creates nothing and skips everything.
	GenerateCards(ctx context.Context, userID, courseID int32) (*GenerateResult, error)
}

// GenerateResult reports what one generation run did.
type GenerateResult struct {
	Created int
	Skipped int
}

// Store is the interface for store operations needed by the course service.
type Store interface {
	ListCourses(ctx context.Context, find *store.FindCourse) ([]*store.Course, error)
	ListLessons(ctx context.Context, find *store.FindLesson) ([]*store.Lesson, error)
	GetCard(ctx context.Context, find *store.FindCard) (*store.Card, error)
	CreateCard(ctx context.Context, create *store.Card) (*store.Card, error)
}

type service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new course service backed by the given store.
func NewService(st Store, logger *slog.Logger) Service {
	return &service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}
