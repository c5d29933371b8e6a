package attendance

import (
	"context"

	domain "lessonbook/internal/domain/attendance"
)

// Store persists the attendance ledger.
// At most one record exists per (lesson, participant); writes are upserts.
type Store interface {
	Upsert(ctx context.Context, value domain.Record) error
	UpsertBatch(ctx context.Context, values []domain.Record) ([]domain.Record, error)
	GetByKey(ctx context.Context, key domain.Key) (domain.Record, error)
	ListByLessonID(ctx context.Context, lessonID string) ([]domain.Record, error)
	ListByCourseID(ctx context.Context, courseID string) ([]domain.Record, error)
}
