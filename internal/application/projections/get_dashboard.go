package projections

import (
	"context"
	"time"

	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/dates"
	"lessonbook/internal/domain/lesson"
)

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	TeacherID string
	Today     time.Time // zero means now
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	CourseStore CourseStore
	LessonStore LessonStore
}

// TodaysLesson pairs a lesson held today with its course title.
type TodaysLesson struct {
	Lesson      lesson.Lesson
	CourseTitle string
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Date          time.Time
	Courses       []course.Course
	TodaysLessons []TodaysLesson
}

// QueryGetDashboard returns the teacher's courses and the lessons scheduled today across them.
// PRE: TeacherID is non-empty
// POST: Slices are non-nil; today's lessons only come from the teacher's courses
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	today := query.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = dates.Truncate(today)

	courses, err := QueryListCourses(ctx, ListCoursesQuery{TeacherID: query.TeacherID}, ListCoursesDeps{CourseStore: deps.CourseStore})
	if err != nil {
		return DashboardResult{}, err
	}
	result := DashboardResult{Date: today, Courses: courses, TodaysLessons: []TodaysLesson{}}
	if len(courses) == 0 {
		return result, nil
	}

	titles := make(map[string]string, len(courses))
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
		ids = append(ids, c.ID)
	}
	lessons, err := deps.LessonStore.ListByDate(ctx, ids, today)
	if err != nil {
		return DashboardResult{}, err
	}
	for _, l := range lessons {
		result.TodaysLessons = append(result.TodaysLessons, TodaysLesson{Lesson: l, CourseTitle: titles[l.CourseID]})
	}
	return result, nil
}
