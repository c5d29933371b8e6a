package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lessonbook/internal/domain/participant"
)

// ParticipantStoreForEnroll defines the store interface needed by EnrollParticipant.
type ParticipantStoreForEnroll interface {
	Save(ctx context.Context, p participant.Participant) error
}

// EnrollParticipantInput carries input for the enroll orchestrator.
type EnrollParticipantInput struct {
	TeacherID string // empty for trusted internal callers
	CourseID  string
	Name      string
	Contact   string // optional, stored verbatim
}

// EnrollParticipantDeps holds dependencies for EnrollParticipant.
type EnrollParticipantDeps struct {
	CourseStore      CourseLookupStore
	ParticipantStore ParticipantStoreForEnroll
	GenerateID       func() string
	Now              func() time.Time
}

// ExecuteEnrollParticipant adds a participant to the end of a course's registry.
// PRE: Name is not blank; the course exists and belongs to TeacherID
// POST: Participant persisted and returned; a second enroll with the same name is a distinct participant
func ExecuteEnrollParticipant(ctx context.Context, input EnrollParticipantInput, deps EnrollParticipantDeps) (participant.Participant, error) {
	p := participant.Participant{
		ID:        idGenerator(deps.GenerateID)(),
		CourseID:  input.CourseID,
		Name:      strings.TrimSpace(input.Name),
		Contact:   input.Contact,
		CreatedAt: clock(deps.Now)(),
	}
	if err := p.Validate(); err != nil {
		return participant.Participant{}, err
	}
	if _, err := loadOwnedCourse(ctx, deps.CourseStore, input.CourseID, input.TeacherID); err != nil {
		return participant.Participant{}, err
	}

	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return participant.Participant{}, err
	}

	slog.Info("participant_event", "event", "participant_enrolled", "participant_id", p.ID, "course_id", p.CourseID)
	return p, nil
}
