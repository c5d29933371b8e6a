package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/dates"
)

// CourseStoreForCreate defines the store interface needed by CreateCourse.
type CourseStoreForCreate interface {
	Save(ctx context.Context, c course.Course) error
}

// CreateCourseInput carries input for the create-course orchestrator.
// Dates use the YYYY-MM-DD input format.
type CreateCourseInput struct {
	TeacherID string
	Title     string
	StartDate string
	EndDate   string
}

// CreateCourseDeps holds dependencies for CreateCourse.
type CreateCourseDeps struct {
	CourseStore CourseStoreForCreate
	GenerateID  func() string
}

// ExecuteCreateCourse creates a course owned by the acting teacher.
// PRE: TeacherID is non-empty; dates parse and EndDate is not before StartDate
// POST: Course persisted and returned
func ExecuteCreateCourse(ctx context.Context, input CreateCourseInput, deps CreateCourseDeps) (course.Course, error) {
	start, err := dates.Parse(input.StartDate)
	if err != nil {
		return course.Course{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := dates.Parse(input.EndDate)
	if err != nil {
		return course.Course{}, fmt.Errorf("end_date: %w", err)
	}

	c := course.Course{
		ID:        idGenerator(deps.GenerateID)(),
		Title:     strings.TrimSpace(input.Title),
		StartDate: start,
		EndDate:   end,
		TeacherID: input.TeacherID,
	}
	if err := c.Validate(); err != nil {
		return course.Course{}, err
	}
	if err := deps.CourseStore.Save(ctx, c); err != nil {
		return course.Course{}, err
	}

	slog.Info("course_event", "event", "course_created", "course_id", c.ID, "teacher_id", c.TeacherID,
		"start", dates.ISO(c.StartDate), "end", dates.ISO(c.EndDate))
	return c, nil
}
