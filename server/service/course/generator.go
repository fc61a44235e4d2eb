package course

import (
	"context"
	"sync/atomic"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/studyloop/studyloop/internal/fsrs"
	svcerrors "github.com/studyloop/studyloop/server/internal/errors"
	"github.com/studyloop/studyloop/store"
)

// maxConcurrentLessons bounds lesson parsing and card insertion so one large
// course upload cannot saturate the store's connection pool.
const maxConcurrentLessons = 4

// GenerateCards creates cards for the course's lessons.
func (s *service) GenerateCards(ctx context.Context, userID, courseID int32) (*GenerateResult, error) {
	courses, err := s.store.ListCourses(ctx, &store.FindCourse{ID: &courseID})
	if err != nil {
		return nil, svcerrors.StoreUnavailable("failed to load course", err)
	}
	if len(courses) == 0 || courses[0].UserID != userID {
		return nil, svcerrors.NotFound("course not found")
	}

	lessons, err := s.store.ListLessons(ctx, &store.FindLesson{CourseID: courseID})
	if err != nil {
		return nil, svcerrors.StoreUnavailable("failed to load lessons", err)
	}

	var created, skipped atomic.Int32
	sem := semaphore.NewWeighted(maxConcurrentLessons)
	g, gctx := errgroup.WithContext(ctx)
	for _, lesson := range lessons {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			return s.generateLesson(gctx, userID, courseID, lesson, &created, &skipped)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, svcerrors.StoreUnavailable("failed to generate cards", err)
	}

	return &GenerateResult{
		Created: int(created.Load()),
		Skipped: int(skipped.Load()),
	}, nil
}

func (s *service) generateLesson(ctx context.Context, userID, courseID int32, lesson *store.Lesson, created, skipped *atomic.Int32) error {
	nowTs := s.now().Unix()
	for i, unit := range ParseLesson(lesson.Content) {
		stepIndex := int32(i)
		existing, err := s.store.GetCard(ctx, &store.FindCard{
			CourseID:    &courseID,
			LessonIndex: &lesson.LessonIndex,
			StepIndex:   &stepIndex,
		})
		if err != nil {
			return err
		}
		if existing != nil {
			skipped.Add(1)
			continue
		}

		if _, err := s.store.CreateCard(ctx, &store.Card{
			UID:         shortuuid.New(),
			UserID:      userID,
			CourseID:    courseID,
			LessonIndex: lesson.LessonIndex,
			StepIndex:   stepIndex,
			Question:    unit.Question,
			Answer:      unit.Answer,
			Concepts:    unit.Concepts,
			State:       fsrs.StateNew,
			DueTs:       nowTs,
		}); err != nil {
			return err
		}
		created.Add(1)
	}
	return nil
}
