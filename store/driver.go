package store

import (
	"context"
	"database/sql"
	"errors"
)

// ErrStaleWrite is returned by UpdateCard when an optimistic update loses the
// race: the row's updated_ts no longer matches ExpectedUpdatedTs.
var ErrStaleWrite = errors.New("store: stale write, row changed concurrently")

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Card model related methods.
	CreateCard(ctx context.Context, create *Card) (*Card, error)
	ListCards(ctx context.Context, find *FindCard) ([]*Card, error)
	UpdateCard(ctx context.Context, update *UpdateCard) error
	DeleteCards(ctx context.Context, delete *DeleteCard) error

	// ReviewLog model related methods. Append-only: no update, no delete.
	CreateReviewLog(ctx context.Context, create *ReviewLog) (*ReviewLog, error)
	ListReviewLogs(ctx context.Context, find *FindReviewLog) ([]*ReviewLog, error)
	CountReviewLogs(ctx context.Context, find *FindReviewLog) (int, error)

	// ConceptMastery model related methods.
	GetConceptMastery(ctx context.Context, find *FindConceptMastery) (*ConceptMastery, error)
	ListConceptMasteries(ctx context.Context, find *FindConceptMastery) ([]*ConceptMastery, error)
	UpsertConceptMastery(ctx context.Context, upsert *ConceptMastery) (*ConceptMastery, error)

	// KnowledgeGap model related methods.
	CreateKnowledgeGap(ctx context.Context, create *KnowledgeGap) (*KnowledgeGap, error)
	ListKnowledgeGaps(ctx context.Context, find *FindKnowledgeGap) ([]*KnowledgeGap, error)
	ResolveKnowledgeGaps(ctx context.Context, resolve *ResolveKnowledgeGap) (int, error)

	// UserSrsSettings model related methods.
	GetUserSrsSettings(ctx context.Context, find *FindUserSrsSettings) (*UserSrsSettings, error)
	UpsertUserSrsSettings(ctx context.Context, upsert *UserSrsSettings) (*UserSrsSettings, error)

	// Course content related methods.
	CreateCourse(ctx context.Context, create *Course) (*Course, error)
	ListCourses(ctx context.Context, find *FindCourse) ([]*Course, error)
	DeleteCourse(ctx context.Context, delete *DeleteCourse) error
	CreateLesson(ctx context.Context, create *Lesson) (*Lesson, error)
	ListLessons(ctx context.Context, find *FindLesson) ([]*Lesson, error)
}
