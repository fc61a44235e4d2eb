package store

import (
	"context"
	"fmt"
)

// Default per-user scheduling quotas.
const (
	DefaultTargetRetention   = 0.9
	DefaultMaxNewCardsPerDay = 20
	DefaultMaxReviewsPerDay  = 200
)

// UserSrsSettings is the per-user scheduling configuration. It is read-only
// input to the due selector; the preference UI mutates it.
type UserSrsSettings struct {
	UserID            int32
	TargetRetention   float64 // (0, 1)
	MaxNewCardsPerDay int32
	MaxReviewsPerDay  int32
	InterleaveReviews bool
	UpdatedTs         int64
}

// FindUserSrsSettings is the find condition for user settings.
type FindUserSrsSettings struct {
	UserID int32
}

// DefaultUserSrsSettings returns the settings used before a user has saved
// any preference.
func DefaultUserSrsSettings(userID int32) *UserSrsSettings {
	return &UserSrsSettings{
		UserID:            userID,
		TargetRetention:   DefaultTargetRetention,
		MaxNewCardsPerDay: DefaultMaxNewCardsPerDay,
		MaxReviewsPerDay:  DefaultMaxReviewsPerDay,
		InterleaveReviews: true,
	}
}

// GetUserSrsSettings returns the user's settings, falling back to defaults
// when no row exists. Results are cached; the cache is invalidated on upsert.
func (s *Store) GetUserSrsSettings(ctx context.Context, find *FindUserSrsSettings) (*UserSrsSettings, error) {
	key := settingsCacheKey(find.UserID)
	if v, ok := s.userSettingCache.Get(key); ok {
		if settings, ok := v.(*UserSrsSettings); ok {
			return settings, nil
		}
	}

	settings, err := s.driver.GetUserSrsSettings(ctx, find)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = DefaultUserSrsSettings(find.UserID)
	}

	s.userSettingCache.Set(key, settings)
	return settings, nil
}

// UpsertUserSrsSettings saves the user's settings and refreshes the cache.
func (s *Store) UpsertUserSrsSettings(ctx context.Context, upsert *UserSrsSettings) (*UserSrsSettings, error) {
	settings, err := s.driver.UpsertUserSrsSettings(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.userSettingCache.Set(settingsCacheKey(settings.UserID), settings)
	return settings, nil
}

func settingsCacheKey(userID int32) string {
	return fmt.Sprintf("srs-settings:%d", userID)
}
