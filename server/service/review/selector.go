package review

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/studyloop/studyloop/internal/fsrs"
	svcerrors "github.com/studyloop/studyloop/server/internal/errors"
	"github.com/studyloop/studyloop/store"
)

// SelectDue builds the session pool for one user at the given instant.
//
// Quota math: remaining = max(0, maxReviewsPerDay - reviewedToday), where
// reviewedToday counts review-log rows since the user's local midnight. New
// cards are capped at min(maxNewCardsPerDay, remaining); due cards fill the
// rest. Quota enforcement is advisory: the count is read once at selection
// time, not reserved.
func (s *service) SelectDue(ctx context.Context, userID int32, now time.Time) (*DueSelection, error) {
	settings, err := s.store.GetUserSrsSettings(ctx, &store.FindUserSrsSettings{UserID: userID})
	if err != nil {
		return nil, svcerrors.StoreUnavailable("failed to load srs settings", err)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Unix()
	reviewedToday, err := s.store.CountReviewLogs(ctx, &store.FindReviewLog{
		UserID:        &userID,
		ReviewedAfter: &midnight,
	})
	if err != nil {
		return nil, svcerrors.StoreUnavailable("failed to count today's reviews", err)
	}

	remaining := int(settings.MaxReviewsPerDay) - reviewedToday
	if remaining < 0 {
		remaining = 0
	}
	newLimit := int(settings.MaxNewCardsPerDay)
	if newLimit > remaining {
		newLimit = remaining
	}

	// The two reads are independent; run them concurrently. Each uses its
	// quota maximum as the query limit and the join below truncates the due
	// list once the new-card count is known.
	var newCards, dueCards []*store.Card
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		newState := fsrs.StateNew
		list, err := s.store.ListCards(gctx, &store.FindCard{
			UserID:  &userID,
			State:   &newState,
			OrderBy: store.CardOrderCreatedAsc,
			Limit:   &newLimit,
		})
		if err != nil {
			return err
		}
		newCards = list
		return nil
	})
	g.Go(func() error {
		newState := fsrs.StateNew
		dueBefore := now.Unix()
		dueLimit := remaining
		list, err := s.store.ListCards(gctx, &store.FindCard{
			UserID:       &userID,
			ExcludeState: &newState,
			DueBefore:    &dueBefore,
			OrderBy:      store.CardOrderDueAsc,
			Limit:        &dueLimit,
		})
		if err != nil {
			return err
		}
		dueCards = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, svcerrors.StoreUnavailable("failed to query cards", err)
	}

	if budget := remaining - len(newCards); len(dueCards) > budget {
		dueCards = dueCards[:budget]
	}

	selection := &DueSelection{NewCards: newCards, DueCards: dueCards}
	pool := make([]*store.Card, 0, len(newCards)+len(dueCards))
	pool = append(pool, newCards...)
	pool = append(pool, dueCards...)
	if settings.InterleaveReviews {
		selection.Ordered = Interleave(pool, now)
	} else {
		selection.Ordered = pool
	}
	return selection, nil
}
