package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/studyloop/studyloop/store"
)

func (d *DB) GetConceptMastery(ctx context.Context, find *store.FindConceptMastery) (*store.ConceptMastery, error) {
	list, err := d.ListConceptMasteries(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (d *DB) ListConceptMasteries(ctx context.Context, find *store.FindConceptMastery) ([]*store.ConceptMastery, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Concept; v != nil {
		where, args = append(where, "concept = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, user_id, concept, mastery_level, peak_mastery,
			total_exposures, successful_recalls, last_reviewed_ts
		FROM concept_mastery
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY concept ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query concept mastery: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ConceptMastery, 0)
	for rows.Next() {
		var cm store.ConceptMastery
		if err := rows.Scan(
			&cm.ID,
			&cm.UserID,
			&cm.Concept,
			&cm.MasteryLevel,
			&cm.PeakMastery,
			&cm.TotalExposures,
			&cm.SuccessfulRecalls,
			&cm.LastReviewedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan concept mastery: %w", err)
		}
		list = append(list, &cm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate concept mastery: %w", err)
	}

	return list, nil
}

func (d *DB) UpsertConceptMastery(ctx context.Context, upsert *store.ConceptMastery) (*store.ConceptMastery, error) {
	stmt := `INSERT INTO concept_mastery (
			user_id, concept, mastery_level, peak_mastery,
			total_exposures, successful_recalls, last_reviewed_ts
		)
		VALUES (` + placeholders(7) + `)
		ON CONFLICT (user_id, concept) DO UPDATE SET
			mastery_level = EXCLUDED.mastery_level,
			peak_mastery = EXCLUDED.peak_mastery,
			total_exposures = EXCLUDED.total_exposures,
			successful_recalls = EXCLUDED.successful_recalls,
			last_reviewed_ts = EXCLUDED.last_reviewed_ts
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.UserID,
		upsert.Concept,
		upsert.MasteryLevel,
		upsert.PeakMastery,
		upsert.TotalExposures,
		upsert.SuccessfulRecalls,
		upsert.LastReviewedTs,
	).Scan(&upsert.ID); err != nil {
		return nil, fmt.Errorf("failed to upsert concept mastery: %w", err)
	}

	return upsert, nil
}

func (d *DB) CreateKnowledgeGap(ctx context.Context, create *store.KnowledgeGap) (*store.KnowledgeGap, error) {
	stmt := `INSERT INTO knowledge_gap (user_id, concept, open)
		VALUES (` + placeholders(3) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UserID,
		create.Concept,
		create.Open,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create knowledge gap: %w", err)
	}

	return create, nil
}

func (d *DB) ListKnowledgeGaps(ctx context.Context, find *store.FindKnowledgeGap) ([]*store.KnowledgeGap, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Concept; v != nil {
		where, args = append(where, "concept = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Open; v != nil {
		where, args = append(where, "open = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, user_id, concept, open, created_ts, resolved_ts
		FROM knowledge_gap
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts ASC, id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge gaps: %w", err)
	}
	defer rows.Close()

	list := make([]*store.KnowledgeGap, 0)
	for rows.Next() {
		var gap store.KnowledgeGap
		var resolvedTs sql.NullInt64
		if err := rows.Scan(
			&gap.ID,
			&gap.UserID,
			&gap.Concept,
			&gap.Open,
			&gap.CreatedTs,
			&resolvedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge gap: %w", err)
		}
		if resolvedTs.Valid {
			gap.ResolvedTs = &resolvedTs.Int64
		}
		list = append(list, &gap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate knowledge gaps: %w", err)
	}

	return list, nil
}

func (d *DB) ResolveKnowledgeGaps(ctx context.Context, resolve *store.ResolveKnowledgeGap) (int, error) {
	stmt := `UPDATE knowledge_gap
		SET open = FALSE, resolved_ts = ` + placeholder(1) + `
		WHERE user_id = ` + placeholder(2) + ` AND concept = ` + placeholder(3) + ` AND open = TRUE`

	result, err := d.db.ExecContext(ctx, stmt, resolve.ResolvedTs, resolve.UserID, resolve.Concept)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve knowledge gaps: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}
