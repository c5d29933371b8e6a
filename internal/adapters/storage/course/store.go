package course

import (
	"context"

	domain "lessonbook/internal/domain/course"
)

// Store persists courses.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Course, error)
	Save(ctx context.Context, value domain.Course) error
	ListByTeacherID(ctx context.Context, teacherID string) ([]domain.Course, error)
}
