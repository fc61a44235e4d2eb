package review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/studyloop/studyloop/internal/fsrs"
	svcerrors "github.com/studyloop/studyloop/server/internal/errors"
	"github.com/studyloop/studyloop/store"
)

const (
	masteryGainPerRecall = 0.05
	masteryLossPerMiss   = 0.1
	gapResolveThreshold  = 0.5
)

// SubmitReview grades one card. The card-state write is the durable source of
// truth; the review-log append and concept-mastery updates are best-effort
// and never fail the request.
func (s *service) SubmitReview(ctx context.Context, userID int32, submit *SubmitReviewRequest) (*ReviewResult, error) {
	if submit == nil || submit.CardID <= 0 {
		return nil, svcerrors.InvalidArgument("card id is required")
	}
	if !submit.Rating.IsValid() {
		return nil, svcerrors.InvalidArgument("rating must be between 1 and 4")
	}

	now := s.now()

	card, err := s.store.GetCard(ctx, &store.FindCard{ID: &submit.CardID})
	if err != nil {
		return nil, svcerrors.StoreUnavailable("failed to load card", err)
	}
	// Ownership mismatch is reported as not-found so card existence never
	// leaks across users.
	if card == nil || card.UserID != userID {
		return nil, svcerrors.NotFound("card not found")
	}

	settings, err := s.store.GetUserSrsSettings(ctx, &store.FindUserSrsSettings{UserID: userID})
	if err != nil {
		return nil, svcerrors.StoreUnavailable("failed to load srs settings", err)
	}

	result, err := s.applyReview(ctx, card, submit.Rating, settings.TargetRetention, now)
	if err != nil {
		return nil, err
	}

	nowTs := now.Unix()
	if _, err := s.store.CreateReviewLog(ctx, &store.ReviewLog{
		CardID:     card.ID,
		UserID:     userID,
		Rating:     submit.Rating,
		DurationMs: submit.DurationMs,
		ReviewedTs: nowTs,
	}); err != nil {
		s.logger.Warn("review log write failed",
			slog.Int64("card_id", int64(card.ID)),
			slog.String("error", err.Error()))
	}

	s.updateMastery(ctx, userID, card.Concepts, submit.Rating, nowTs)

	return &ReviewResult{
		NextDue:       result.Due,
		ScheduledDays: result.ScheduledDays,
		State:         result.State,
	}, nil
}

// applyReview runs the memory model and persists the new card state with an
// optimistic check on updated_ts. A lost race reloads the card and retries
// once before giving up.
func (s *service) applyReview(ctx context.Context, card *store.Card, rating fsrs.Rating, targetRetention float64, now time.Time) (fsrs.Result, error) {
	for attempt := 0; ; attempt++ {
		result, err := s.scheduler.ProcessReview(fsrs.Review{
			State:           card.State,
			Stability:       card.Stability,
			Difficulty:      card.Difficulty,
			ElapsedDays:     card.ElapsedDays(now),
			Rating:          rating,
			TargetRetention: targetRetention,
			Now:             now,
		})
		if err != nil {
			return fsrs.Result{}, svcerrors.Internal("memory model rejected card state", err)
		}

		reps := card.Reps + 1
		lapses := card.Lapses
		if result.Lapsed {
			lapses++
		}
		dueTs := result.Due.Unix()
		lastReviewTs := now.Unix()
		expected := card.UpdatedTs

		err = s.store.UpdateCard(ctx, &store.UpdateCard{
			ID:                card.ID,
			ExpectedUpdatedTs: &expected,
			State:             &result.State,
			Stability:         &result.Stability,
			Difficulty:        &result.Difficulty,
			ScheduledDays:     &result.ScheduledDays,
			Reps:              &reps,
			Lapses:            &lapses,
			DueTs:             &dueTs,
			LastReviewTs:      &lastReviewTs,
		})
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, store.ErrStaleWrite) {
			return fsrs.Result{}, svcerrors.StoreUnavailable("failed to persist card state", err)
		}
		if attempt >= 1 {
			return fsrs.Result{}, svcerrors.Conflict("card changed concurrently", err)
		}

		reloaded, err := s.store.GetCard(ctx, &store.FindCard{ID: &card.ID})
		if err != nil {
			return fsrs.Result{}, svcerrors.StoreUnavailable("failed to reload card", err)
		}
		if reloaded == nil {
			return fsrs.Result{}, svcerrors.NotFound("card not found")
		}
		card = reloaded
	}
}

// updateMastery applies the per-concept mastery delta for one grading event.
// Failures are logged and swallowed: mastery is derived telemetry, not part
// of the card's durable state.
func (s *service) updateMastery(ctx context.Context, userID int32, concepts []string, rating fsrs.Rating, nowTs int64) {
	for _, concept := range concepts {
		current, err := s.store.GetConceptMastery(ctx, &store.FindConceptMastery{
			UserID:  &userID,
			Concept: &concept,
		})
		if err != nil {
			s.logger.Warn("concept mastery read failed",
				slog.String("concept", concept),
				slog.String("error", err.Error()))
			continue
		}
		if current == nil {
			current = &store.ConceptMastery{UserID: userID, Concept: concept}
		}

		current.TotalExposures++
		if rating >= fsrs.Good {
			current.SuccessfulRecalls++
			current.MasteryLevel += masteryGainPerRecall
			if current.MasteryLevel > 1 {
				current.MasteryLevel = 1
			}
		} else {
			current.MasteryLevel -= masteryLossPerMiss
			if current.MasteryLevel < 0 {
				current.MasteryLevel = 0
			}
		}
		if current.MasteryLevel > current.PeakMastery {
			current.PeakMastery = current.MasteryLevel
		}
		current.LastReviewedTs = nowTs

		if _, err := s.store.UpsertConceptMastery(ctx, current); err != nil {
			s.logger.Warn("concept mastery write failed",
				slog.String("concept", concept),
				slog.String("error", err.Error()))
			continue
		}

		if rating >= fsrs.Good && current.MasteryLevel >= gapResolveThreshold {
			if _, err := s.store.ResolveKnowledgeGaps(ctx, &store.ResolveKnowledgeGap{
				UserID:     userID,
				Concept:    concept,
				ResolvedTs: nowTs,
			}); err != nil {
				s.logger.Warn("knowledge gap resolution failed",
					slog.String("concept", concept),
					slog.String("error", err.Error()))
			}
		}
	}
}
