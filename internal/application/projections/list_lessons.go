package projections

import (
	"context"
	"time"

	"lessonbook/internal/domain/dates"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/lesson"
)

// ListLessonsQuery carries query parameters. From and To are optional
// inclusive YYYY-MM-DD bounds.
type ListLessonsQuery struct {
	TeacherID string
	CourseID  string
	From      string
	To        string
}

// ListLessonsDeps holds dependencies for ListLessons.
type ListLessonsDeps struct {
	CourseStore CourseStore
	LessonStore LessonStore
}

// QueryListLessons returns a course's lessons in ascending date order.
// PRE: CourseID is non-empty
// POST: Ordering is recomputed on every call (date, then id)
// INVARIANT: Read-only
func QueryListLessons(ctx context.Context, query ListLessonsQuery, deps ListLessonsDeps) ([]lesson.Lesson, error) {
	from, err := optionalDate(query.From)
	if err != nil {
		return nil, err
	}
	to, err := optionalDate(query.To)
	if err != nil {
		return nil, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, errs.Invalid("to (%s) is before from (%s)", dates.ISO(to), dates.ISO(from))
	}

	c, err := ownedCourse(ctx, deps.CourseStore, query.CourseID, query.TeacherID)
	if err != nil {
		return nil, err
	}

	var lessons []lesson.Lesson
	if from.IsZero() && to.IsZero() {
		lessons, err = deps.LessonStore.ListByCourseID(ctx, c.ID)
	} else {
		lessons, err = deps.LessonStore.ListByCourseAndDateRange(ctx, c.ID, from, to)
	}
	if err != nil {
		return nil, err
	}

	sorted := make([]lesson.Lesson, len(lessons))
	copy(sorted, lessons)
	lesson.SortByDate(sorted)
	return sorted, nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dates.Parse(s)
}
