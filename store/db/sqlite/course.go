package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyloop/studyloop/store"
)

func (d *DB) CreateCourse(ctx context.Context, create *store.Course) (*store.Course, error) {
	stmt := `INSERT INTO course (uid, user_id, title)
		VALUES (` + placeholders(3) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID,
		create.UserID,
		create.Title,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return create, nil
}

func (d *DB) ListCourses(ctx context.Context, find *store.FindCourse) ([]*store.Course, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, user_id, title, created_ts
		FROM course
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts ASC, id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Course, 0)
	for rows.Next() {
		var course store.Course
		if err := rows.Scan(
			&course.ID,
			&course.UID,
			&course.UserID,
			&course.Title,
			&course.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		list = append(list, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return list, nil
}

func (d *DB) DeleteCourse(ctx context.Context, delete *store.DeleteCourse) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM lesson WHERE course_id = `+placeholder(1), delete.ID); err != nil {
		return fmt.Errorf("failed to delete lessons: %w", err)
	}
	if _, err := d.db.ExecContext(ctx, `DELETE FROM course WHERE id = `+placeholder(1), delete.ID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

func (d *DB) CreateLesson(ctx context.Context, create *store.Lesson) (*store.Lesson, error) {
	stmt := `INSERT INTO lesson (course_id, lesson_index, title, content)
		VALUES (` + placeholders(4) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.CourseID,
		create.LessonIndex,
		create.Title,
		create.Content,
	).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	return create, nil
}

func (d *DB) ListLessons(ctx context.Context, find *store.FindLesson) ([]*store.Lesson, error) {
	query := `
		SELECT id, course_id, lesson_index, title, content
		FROM lesson
		WHERE course_id = ` + placeholder(1) + `
		ORDER BY lesson_index ASC`

	rows, err := d.db.QueryContext(ctx, query, find.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Lesson, 0)
	for rows.Next() {
		var lesson store.Lesson
		if err := rows.Scan(
			&lesson.ID,
			&lesson.CourseID,
			&lesson.LessonIndex,
			&lesson.Title,
			&lesson.Content,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		list = append(list, &lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lessons: %w", err)
	}

	return list, nil
}
