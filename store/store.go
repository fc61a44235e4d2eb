// Package store provides database access to all raw objects.
package store

import (
	"time"

	"github.com/studyloop/studyloop/internal/profile"
	"github.com/studyloop/studyloop/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// userSettingCache caches UserSrsSettings; settings are read on every
	// due-card selection but change rarely.
	userSettingCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:           driver,
		profile:          profile,
		userSettingCache: cache.New(cacheConfig),
	}
}

// GetDriver returns the underlying driver.
func (s *Store) GetDriver() Driver {
	return s.driver
}

// Close stops cache maintenance and closes the driver.
func (s *Store) Close() error {
	s.userSettingCache.Close()
	return s.driver.Close()
}
