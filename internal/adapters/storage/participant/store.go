package participant

import (
	"context"

	domain "lessonbook/internal/domain/participant"
)

// Store persists the participant registry.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Participant, error)
	Save(ctx context.Context, value domain.Participant) error
	SaveBatch(ctx context.Context, values []domain.Participant) error
	ListByCourseID(ctx context.Context, courseID string) ([]domain.Participant, error)
}
