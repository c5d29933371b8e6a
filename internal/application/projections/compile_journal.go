package projections

import (
	"context"

	"lessonbook/internal/domain/journal"
)

// CompileJournalQuery carries query parameters.
type CompileJournalQuery struct {
	TeacherID string
	CourseID  string
}

// CompileJournalDeps holds dependencies for CompileJournal.
type CompileJournalDeps struct {
	CourseStore CourseStore
	LessonStore LessonStore
}

// QueryCompileJournal builds the outcomes journal of a course.
// POST: NotFound for an unknown course; see journal.Compile for the block layout
func QueryCompileJournal(ctx context.Context, query CompileJournalQuery, deps CompileJournalDeps) (journal.Journal, error) {
	c, err := ownedCourse(ctx, deps.CourseStore, query.CourseID, query.TeacherID)
	if err != nil {
		return journal.Journal{}, err
	}
	lessons, err := deps.LessonStore.ListByCourseID(ctx, c.ID)
	if err != nil {
		return journal.Journal{}, err
	}
	return journal.Compile(c, lessons), nil
}
