package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyloop/studyloop/internal/fsrs"
	"github.com/studyloop/studyloop/store"
)

func (d *DB) CreateReviewLog(ctx context.Context, create *store.ReviewLog) (*store.ReviewLog, error) {
	stmt := `INSERT INTO review_log (card_id, user_id, rating, duration_ms, reviewed_ts)
		VALUES (` + placeholders(5) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.CardID,
		create.UserID,
		int(create.Rating),
		create.DurationMs,
		create.ReviewedTs,
	).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create review log: %w", err)
	}

	return create, nil
}

func (d *DB) ListReviewLogs(ctx context.Context, find *store.FindReviewLog) ([]*store.ReviewLog, error) {
	where, args := reviewLogWhere(find)

	query := `
		SELECT id, card_id, user_id, rating, duration_ms, reviewed_ts
		FROM review_log
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY reviewed_ts DESC, id DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query review logs: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ReviewLog, 0)
	for rows.Next() {
		var log store.ReviewLog
		var rating int
		if err := rows.Scan(
			&log.ID,
			&log.CardID,
			&log.UserID,
			&rating,
			&log.DurationMs,
			&log.ReviewedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review log: %w", err)
		}
		log.Rating = fsrs.Rating(rating)
		list = append(list, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review logs: %w", err)
	}

	return list, nil
}

func (d *DB) CountReviewLogs(ctx context.Context, find *store.FindReviewLog) (int, error) {
	where, args := reviewLogWhere(find)

	query := `SELECT COUNT(*) FROM review_log WHERE ` + strings.Join(where, " AND ")

	var count int
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count review logs: %w", err)
	}
	return count, nil
}

func reviewLogWhere(find *store.FindReviewLog) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CardID; v != nil {
		where, args = append(where, "card_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ReviewedAfter; v != nil {
		where, args = append(where, "reviewed_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}

	return where, args
}
