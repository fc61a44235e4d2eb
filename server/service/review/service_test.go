package review

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/studyloop/studyloop/internal/fsrs"
	"github.com/studyloop/studyloop/store"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// fakeStore is an in-memory Store with injectable failures.
type fakeStore struct {
	cards    []*store.Card
	settings *store.UserSrsSettings
	logs     []*store.ReviewLog
	mastery  map[string]*store.ConceptMastery
	resolved []*store.ResolveKnowledgeGap
	updates  []*store.UpdateCard

	listErr     error
	countErr    error
	settingsErr error
	logErr      error
	masteryErr  error
	updateErr   error
	staleWrites int

	reviewedToday int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		settings: store.DefaultUserSrsSettings(1),
		mastery:  make(map[string]*store.ConceptMastery),
	}
}

func (f *fakeStore) GetCard(ctx context.Context, find *store.FindCard) (*store.Card, error) {
	list, err := f.ListCards(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (f *fakeStore) ListCards(_ context.Context, find *store.FindCard) ([]*store.Card, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	list := make([]*store.Card, 0)
	for _, c := range f.cards {
		if find.ID != nil && c.ID != *find.ID {
			continue
		}
		if find.UserID != nil && c.UserID != *find.UserID {
			continue
		}
		if find.State != nil && c.State != *find.State {
			continue
		}
		if find.ExcludeState != nil && c.State == *find.ExcludeState {
			continue
		}
		if find.DueBefore != nil && c.DueTs > *find.DueBefore {
			continue
		}
		list = append(list, c)
	}
	if find.OrderBy == store.CardOrderDueAsc {
		sort.SliceStable(list, func(i, j int) bool { return list[i].DueTs < list[j].DueTs })
	} else {
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedTs < list[j].CreatedTs })
	}
	if find.Limit != nil && len(list) > *find.Limit {
		list = list[:*find.Limit]
	}
	return list, nil
}

func (f *fakeStore) UpdateCard(_ context.Context, update *store.UpdateCard) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.staleWrites > 0 {
		f.staleWrites--
		return store.ErrStaleWrite
	}
	f.updates = append(f.updates, update)
	for _, c := range f.cards {
		if c.ID != update.ID {
			continue
		}
		if update.State != nil {
			c.State = *update.State
		}
		if update.Stability != nil {
			c.Stability = *update.Stability
		}
		if update.Difficulty != nil {
			c.Difficulty = *update.Difficulty
		}
		if update.ScheduledDays != nil {
			c.ScheduledDays = *update.ScheduledDays
		}
		if update.Reps != nil {
			c.Reps = *update.Reps
		}
		if update.Lapses != nil {
			c.Lapses = *update.Lapses
		}
		if update.DueTs != nil {
			c.DueTs = *update.DueTs
		}
		if update.LastReviewTs != nil {
			c.LastReviewTs = update.LastReviewTs
		}
		c.UpdatedTs++
	}
	return nil
}

func (f *fakeStore) CreateReviewLog(_ context.Context, create *store.ReviewLog) (*store.ReviewLog, error) {
	if f.logErr != nil {
		return nil, f.logErr
	}
	create.ID = int32(len(f.logs) + 1)
	f.logs = append(f.logs, create)
	return create, nil
}

func (f *fakeStore) CountReviewLogs(_ context.Context, _ *store.FindReviewLog) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.reviewedToday, nil
}

func (f *fakeStore) GetConceptMastery(_ context.Context, find *store.FindConceptMastery) (*store.ConceptMastery, error) {
	if f.masteryErr != nil {
		return nil, f.masteryErr
	}
	if cm, ok := f.mastery[*find.Concept]; ok {
		return cm, nil
	}
	return nil, nil
}

func (f *fakeStore) UpsertConceptMastery(_ context.Context, upsert *store.ConceptMastery) (*store.ConceptMastery, error) {
	if f.masteryErr != nil {
		return nil, f.masteryErr
	}
	f.mastery[upsert.Concept] = upsert
	return upsert, nil
}

func (f *fakeStore) ResolveKnowledgeGaps(_ context.Context, resolve *store.ResolveKnowledgeGap) (int, error) {
	f.resolved = append(f.resolved, resolve)
	return 1, nil
}

func (f *fakeStore) GetUserSrsSettings(_ context.Context, _ *store.FindUserSrsSettings) (*store.UserSrsSettings, error) {
	if f.settingsErr != nil {
		return nil, f.settingsErr
	}
	return f.settings, nil
}

func newTestService(f *fakeStore) *service {
	scheduler, err := fsrs.NewScheduler(fsrs.Config{})
	if err != nil {
		panic(err)
	}
	return &service{
		store:     f,
		scheduler: scheduler,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       func() time.Time { return testNow },
	}
}
