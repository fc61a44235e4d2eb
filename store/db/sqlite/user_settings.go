package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studyloop/studyloop/store"
)

func (d *DB) GetUserSrsSettings(ctx context.Context, find *store.FindUserSrsSettings) (*store.UserSrsSettings, error) {
	query := `
		SELECT user_id, target_retention, max_new_cards_per_day,
			max_reviews_per_day, interleave_reviews, updated_ts
		FROM user_srs_settings
		WHERE user_id = ` + placeholder(1)

	var settings store.UserSrsSettings
	err := d.db.QueryRowContext(ctx, query, find.UserID).Scan(
		&settings.UserID,
		&settings.TargetRetention,
		&settings.MaxNewCardsPerDay,
		&settings.MaxReviewsPerDay,
		&settings.InterleaveReviews,
		&settings.UpdatedTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user srs settings: %w", err)
	}

	return &settings, nil
}

func (d *DB) UpsertUserSrsSettings(ctx context.Context, upsert *store.UserSrsSettings) (*store.UserSrsSettings, error) {
	stmt := `INSERT INTO user_srs_settings (
			user_id, target_retention, max_new_cards_per_day,
			max_reviews_per_day, interleave_reviews, updated_ts
		)
		VALUES (` + placeholders(5) + `, strftime('%s', 'now'))
		ON CONFLICT (user_id) DO UPDATE SET
			target_retention = EXCLUDED.target_retention,
			max_new_cards_per_day = EXCLUDED.max_new_cards_per_day,
			max_reviews_per_day = EXCLUDED.max_reviews_per_day,
			interleave_reviews = EXCLUDED.interleave_reviews,
			updated_ts = strftime('%s', 'now')
		RETURNING updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.UserID,
		upsert.TargetRetention,
		upsert.MaxNewCardsPerDay,
		upsert.MaxReviewsPerDay,
		upsert.InterleaveReviews,
	).Scan(&upsert.UpdatedTs); err != nil {
		return nil, fmt.Errorf("failed to upsert user srs settings: %w", err)
	}

	return upsert, nil
}
