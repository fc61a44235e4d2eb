package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/studyloop/studyloop/internal/fsrs"
	"github.com/studyloop/studyloop/store"
)

func (d *DB) CreateCard(ctx context.Context, create *store.Card) (*store.Card, error) {
	concepts, err := json.Marshal(create.Concepts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal concepts: %w", err)
	}

	fields := []string{
		"uid", "user_id", "course_id", "lesson_index", "step_index",
		"question", "answer", "concepts",
		"state", "stability", "difficulty", "scheduled_days",
		"reps", "lapses", "due_ts",
	}
	values := []any{
		create.UID, create.UserID, create.CourseID, create.LessonIndex, create.StepIndex,
		create.Question, create.Answer, string(concepts),
		int(create.State), create.Stability, create.Difficulty, create.ScheduledDays,
		create.Reps, create.Lapses, create.DueTs,
	}

	stmt := `INSERT INTO card (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(values)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, values...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return create, nil
}

func (d *DB) ListCards(ctx context.Context, find *store.FindCard) ([]*store.Card, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "card.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "card.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "card.user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CourseID; v != nil {
		where, args = append(where, "card.course_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.LessonIndex; v != nil {
		where, args = append(where, "card.lesson_index = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.StepIndex; v != nil {
		where, args = append(where, "card.step_index = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.State; v != nil {
		where, args = append(where, "card.state = "+placeholder(len(args)+1)), append(args, int(*v))
	}
	if v := find.ExcludeState; v != nil {
		where, args = append(where, "card.state != "+placeholder(len(args)+1)), append(args, int(*v))
	}
	if v := find.DueBefore; v != nil {
		where, args = append(where, "card.due_ts <= "+placeholder(len(args)+1)), append(args, *v)
	}

	orderBy := "ORDER BY card.created_ts ASC, card.id ASC"
	if find.OrderBy == store.CardOrderDueAsc {
		orderBy = "ORDER BY card.due_ts ASC, card.id ASC"
	}

	query := `
		SELECT
			id, uid, user_id, course_id, lesson_index, step_index,
			created_ts, updated_ts, question, answer, concepts,
			state, stability, difficulty, scheduled_days,
			reps, lapses, due_ts, last_review_ts
		FROM card
		WHERE ` + strings.Join(where, " AND ") + ` ` + orderBy

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateCard(ctx context.Context, update *store.UpdateCard) error {
	set, args := []string{}, []any{}

	if v := update.State; v != nil {
		set, args = append(set, "state = "+placeholder(len(args)+1)), append(args, int(*v))
	}
	if v := update.Stability; v != nil {
		set, args = append(set, "stability = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Difficulty; v != nil {
		set, args = append(set, "difficulty = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ScheduledDays; v != nil {
		set, args = append(set, "scheduled_days = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Reps; v != nil {
		set, args = append(set, "reps = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Lapses; v != nil {
		set, args = append(set, "lapses = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.DueTs; v != nil {
		set, args = append(set, "due_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.LastReviewTs; v != nil {
		set, args = append(set, "last_review_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, time.Now().Unix())

	where := []string{"id = " + placeholder(len(args) + 1)}
	args = append(args, update.ID)
	if v := update.ExpectedUpdatedTs; v != nil {
		where, args = append(where, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	stmt := `UPDATE card SET ` + strings.Join(set, ", ") + ` WHERE ` + strings.Join(where, " AND ")
	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		if update.ExpectedUpdatedTs != nil {
			return store.ErrStaleWrite
		}
		return fmt.Errorf("card %d not found", update.ID)
	}

	return nil
}

func (d *DB) DeleteCards(ctx context.Context, delete *store.DeleteCard) error {
	where, args := []string{}, []any{}

	if v := delete.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := delete.CourseID; v != nil {
		where, args = append(where, "course_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if len(where) == 0 {
		return fmt.Errorf("refusing to delete cards without a filter")
	}

	stmt := `DELETE FROM card WHERE ` + strings.Join(where, " AND ")
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}

	return nil
}

func scanCard(rows *sql.Rows) (*store.Card, error) {
	var card store.Card
	var concepts string
	var state int
	var lastReviewTs sql.NullInt64

	if err := rows.Scan(
		&card.ID,
		&card.UID,
		&card.UserID,
		&card.CourseID,
		&card.LessonIndex,
		&card.StepIndex,
		&card.CreatedTs,
		&card.UpdatedTs,
		&card.Question,
		&card.Answer,
		&concepts,
		&state,
		&card.Stability,
		&card.Difficulty,
		&card.ScheduledDays,
		&card.Reps,
		&card.Lapses,
		&card.DueTs,
		&lastReviewTs,
	); err != nil {
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}

	card.State = fsrs.State(state)
	if lastReviewTs.Valid {
		card.LastReviewTs = &lastReviewTs.Int64
	}
	if concepts != "" {
		if err := json.Unmarshal([]byte(concepts), &card.Concepts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal concepts: %w", err)
		}
	}

	return &card, nil
}
