package lesson

import (
	"context"
	"time"

	domain "lessonbook/internal/domain/lesson"
)

// Store persists the lesson sequence of each course.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Lesson, error)
	Create(ctx context.Context, value domain.Lesson) error
	UpdatePlan(ctx context.Context, id string, plan domain.Plan) error
	UpdatePlanToday(ctx context.Context, id string, planToday string) error
	NextAfter(ctx context.Context, courseID string, date time.Time) (domain.Lesson, bool, error)
	ListByCourseID(ctx context.Context, courseID string) ([]domain.Lesson, error)
	ListByCourseAndDateRange(ctx context.Context, courseID string, from, to time.Time) ([]domain.Lesson, error)
	ListByDate(ctx context.Context, courseIDs []string, date time.Time) ([]domain.Lesson, error)
	Delete(ctx context.Context, id string) error
}
