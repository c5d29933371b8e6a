package projections

import (
	"context"

	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/domain/participant"
)

// ListCoursesQuery carries query parameters.
type ListCoursesQuery struct {
	TeacherID string
}

// ListCoursesDeps holds dependencies for ListCourses.
type ListCoursesDeps struct {
	CourseStore CourseStore
}

// QueryListCourses returns the teacher's courses, newest start date first.
// POST: Returns a non-nil slice
func QueryListCourses(ctx context.Context, query ListCoursesQuery, deps ListCoursesDeps) ([]course.Course, error) {
	courses, err := deps.CourseStore.ListByTeacherID(ctx, query.TeacherID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return courses, nil
}

// GetCourseQuery carries query parameters.
type GetCourseQuery struct {
	TeacherID string
	CourseID  string
}

// GetCourseDeps holds dependencies for GetCourse.
type GetCourseDeps struct {
	CourseStore      CourseStore
	LessonStore      LessonStore
	ParticipantStore ParticipantStore
}

// CourseDetail is a course with its roster and lesson sequence.
type CourseDetail struct {
	Course       course.Course
	Participants []participant.Participant
	Lessons      []lesson.Lesson
}

// QueryGetCourse loads one course with its participants and lessons.
// PRE: CourseID is non-empty
// POST: Lessons ascending by date; participants in enrollment order
func QueryGetCourse(ctx context.Context, query GetCourseQuery, deps GetCourseDeps) (CourseDetail, error) {
	c, err := ownedCourse(ctx, deps.CourseStore, query.CourseID, query.TeacherID)
	if err != nil {
		return CourseDetail{}, err
	}
	participants, err := QueryListParticipants(ctx, ListParticipantsQuery{CourseID: c.ID}, ListParticipantsDeps{
		CourseStore:      deps.CourseStore,
		ParticipantStore: deps.ParticipantStore,
	})
	if err != nil {
		return CourseDetail{}, err
	}
	lessons, err := QueryListLessons(ctx, ListLessonsQuery{CourseID: c.ID}, ListLessonsDeps{
		CourseStore: deps.CourseStore,
		LessonStore: deps.LessonStore,
	})
	if err != nil {
		return CourseDetail{}, err
	}
	return CourseDetail{Course: c, Participants: participants, Lessons: lessons}, nil
}
