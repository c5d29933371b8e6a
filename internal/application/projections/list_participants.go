package projections

import (
	"context"

	"lessonbook/internal/domain/participant"
)

// ListParticipantsQuery carries query parameters.
type ListParticipantsQuery struct {
	TeacherID string
	CourseID  string
}

// ListParticipantsDeps holds dependencies for ListParticipants.
type ListParticipantsDeps struct {
	CourseStore      CourseStore
	ParticipantStore ParticipantStore
}

// QueryListParticipants returns a course's participants in enrollment order.
// PRE: CourseID is non-empty
// POST: Returns a non-nil slice; NotFound for an unknown course
func QueryListParticipants(ctx context.Context, query ListParticipantsQuery, deps ListParticipantsDeps) ([]participant.Participant, error) {
	c, err := ownedCourse(ctx, deps.CourseStore, query.CourseID, query.TeacherID)
	if err != nil {
		return nil, err
	}
	ps, err := deps.ParticipantStore.ListByCourseID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []participant.Participant{}
	}
	return ps, nil
}
