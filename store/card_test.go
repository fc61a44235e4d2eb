package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCardElapsedDays(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	never := &Card{}
	require.Zero(t, never.ElapsedDays(now), "unreviewed card has no elapsed time")

	twelveDaysAgo := now.AddDate(0, 0, -12).Unix()
	card := &Card{LastReviewTs: &twelveDaysAgo}
	require.InDelta(t, 12, card.ElapsedDays(now), 1e-9)

	future := now.Add(time.Hour).Unix()
	skewed := &Card{LastReviewTs: &future}
	require.Zero(t, skewed.ElapsedDays(now), "clock skew must not produce negative elapsed time")
}

func TestCardDueTime(t *testing.T) {
	card := &Card{DueTs: 1710500400}
	require.Equal(t, time.Unix(1710500400, 0), card.DueTime())
}
