package store

import "context"

// Course is uploaded course content, the producer of cards. The engine only
// reads it during card generation.
type Course struct {
	ID        int32
	UID       string
	UserID    int32
	Title     string
	CreatedTs int64
}

// Lesson is one ordered unit of course content, in markdown.
type Lesson struct {
	ID          int32
	CourseID    int32
	LessonIndex int32
	Title       string
	Content     string
}

// FindCourse is the find condition for courses.
type FindCourse struct {
	ID     *int32
	UID    *string
	UserID *int32
}

// DeleteCourse is the delete request for a course. Cards cascade via
// DeleteCards on the same course id.
type DeleteCourse struct {
	ID int32
}

// FindLesson is the find condition for lessons. Results are always ordered
// by lesson_index ascending.
type FindLesson struct {
	CourseID int32
}

// CreateCourse creates a course.
func (s *Store) CreateCourse(ctx context.Context, create *Course) (*Course, error) {
	return s.driver.CreateCourse(ctx, create)
}

// ListCourses lists courses with filter.
func (s *Store) ListCourses(ctx context.Context, find *FindCourse) ([]*Course, error) {
	return s.driver.ListCourses(ctx, find)
}

// GetCourse gets a single course, or nil when no course matches.
func (s *Store) GetCourse(ctx context.Context, find *FindCourse) (*Course, error) {
	list, err := s.driver.ListCourses(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// DeleteCourse deletes a course and cascades its cards.
func (s *Store) DeleteCourse(ctx context.Context, delete *DeleteCourse) error {
	if err := s.driver.DeleteCourse(ctx, delete); err != nil {
		return err
	}
	return s.driver.DeleteCards(ctx, &DeleteCard{CourseID: &delete.ID})
}

// CreateLesson creates a lesson.
func (s *Store) CreateLesson(ctx context.Context, create *Lesson) (*Lesson, error) {
	return s.driver.CreateLesson(ctx, create)
}

// ListLessons lists a course's lessons in order.
func (s *Store) ListLessons(ctx context.Context, find *FindLesson) ([]*Lesson, error) {
	return s.driver.ListLessons(ctx, find)
}
