package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyloop/studyloop/internal/profile"
)

// fakeSettingsDriver implements only the settings methods; the embedded
// Driver panics on anything else, which is what these tests want.
type fakeSettingsDriver struct {
	Driver

	settings *UserSrsSettings
	getCalls int
}

func (f *fakeSettingsDriver) GetUserSrsSettings(_ context.Context, _ *FindUserSrsSettings) (*UserSrsSettings, error) {
	f.getCalls++
	return f.settings, nil
}

func (f *fakeSettingsDriver) UpsertUserSrsSettings(_ context.Context, upsert *UserSrsSettings) (*UserSrsSettings, error) {
	f.settings = upsert
	return upsert, nil
}

func newSettingsStore(driver Driver) *Store {
	return New(driver, &profile.Profile{Driver: "sqlite"})
}

func TestGetUserSrsSettingsDefaults(t *testing.T) {
	driver := &fakeSettingsDriver{}
	s := newSettingsStore(driver)
	defer s.userSettingCache.Close()

	settings, err := s.GetUserSrsSettings(context.Background(), &FindUserSrsSettings{UserID: 1})
	require.NoError(t, err)
	require.Equal(t, int32(1), settings.UserID)
	require.Equal(t, DefaultTargetRetention, settings.TargetRetention)
	require.Equal(t, int32(DefaultMaxNewCardsPerDay), settings.MaxNewCardsPerDay)
	require.Equal(t, int32(DefaultMaxReviewsPerDay), settings.MaxReviewsPerDay)
	require.True(t, settings.InterleaveReviews)
}

func TestGetUserSrsSettingsCached(t *testing.T) {
	driver := &fakeSettingsDriver{settings: &UserSrsSettings{UserID: 1, TargetRetention: 0.85}}
	s := newSettingsStore(driver)
	defer s.userSettingCache.Close()

	for i := 0; i < 3; i++ {
		settings, err := s.GetUserSrsSettings(context.Background(), &FindUserSrsSettings{UserID: 1})
		require.NoError(t, err)
		require.Equal(t, 0.85, settings.TargetRetention)
	}
	require.Equal(t, 1, driver.getCalls, "repeat reads must hit the cache")
}

func TestUpsertUserSrsSettingsRefreshesCache(t *testing.T) {
	driver := &fakeSettingsDriver{}
	s := newSettingsStore(driver)
	defer s.userSettingCache.Close()

	_, err := s.GetUserSrsSettings(context.Background(), &FindUserSrsSettings{UserID: 1})
	require.NoError(t, err)

	_, err = s.UpsertUserSrsSettings(context.Background(), &UserSrsSettings{
		UserID: 1, TargetRetention: 0.8, MaxNewCardsPerDay: 5, MaxReviewsPerDay: 50,
	})
	require.NoError(t, err)

	settings, err := s.GetUserSrsSettings(context.Background(), &FindUserSrsSettings{UserID: 1})
	require.NoError(t, err)
	require.Equal(t, 0.8, settings.TargetRetention)
	require.Equal(t, int32(5), settings.MaxNewCardsPerDay)
	require.Equal(t, 1, driver.getCalls, "upsert must refresh the cache in place")
}
