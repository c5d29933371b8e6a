package lesson

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"lessonbook/internal/adapters/storage"
	"lessonbook/internal/domain/dates"
	domain "lessonbook/internal/domain/lesson"
)

const selectLesson = "SELECT id, course_id, date, plan_today, outcome, plan_next FROM lesson"

// SQLiteStore implements Store using SQLite.
// Dates are stored as YYYY-MM-DD so text order is chronological order.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new lesson store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Lesson by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an ErrNotFound error
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Lesson, error) {
	row := s.db.QueryRowContext(ctx, selectLesson+" WHERE id = ?", id)
	entity, err := scanLesson(row.Scan)
	if err != nil {
		return domain.Lesson{}, storage.NotFound(err, "lesson", id)
	}
	return entity, nil
}

// Create inserts a new Lesson.
// PRE: entity has been validated
// POST: Entity is persisted; a second lesson on the same course date yields domain.ErrDuplicateDate
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Lesson) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO lesson (id, course_id, date, plan_today, outcome, plan_next) VALUES (?, ?, ?, ?, ?, ?)",
		entity.ID, entity.CourseID, dates.ISO(entity.Date), entity.PlanToday, entity.Outcome, entity.PlanNext,
	)
	if storage.IsUniqueViolation(err) {
		return domain.ErrDuplicateDate
	}
	return err
}

// UpdatePlan overwrites the three plan fields of a lesson.
// PRE: id is non-empty
// POST: Fields are replaced verbatim, or an ErrNotFound error is returned
func (s *SQLiteStore) UpdatePlan(ctx context.Context, id string, plan domain.Plan) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE lesson SET plan_today = ?, outcome = ?, plan_next = ? WHERE id = ?",
		plan.PlanToday, plan.Outcome, plan.PlanNext, id,
	)
	return requireRow(res, err, id)
}

// UpdatePlanToday overwrites only planToday.
// PRE: id is non-empty
// POST: Field is replaced verbatim, or an ErrNotFound error is returned
func (s *SQLiteStore) UpdatePlanToday(ctx context.Context, id string, planToday string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE lesson SET plan_today = ? WHERE id = ?", planToday, id)
	return requireRow(res, err, id)
}

// NextAfter returns the course's earliest lesson strictly after date.
// Equal dates cannot occur within a course; id breaks ties for legacy rows.
// POST: ok is false when no later lesson exists
func (s *SQLiteStore) NextAfter(ctx context.Context, courseID string, date time.Time) (domain.Lesson, bool, error) {
	row := s.db.QueryRowContext(ctx,
		selectLesson+" WHERE course_id = ? AND date > ? ORDER BY date, id LIMIT 1",
		courseID, dates.ISO(date),
	)
	entity, err := scanLesson(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Lesson{}, false, nil
	}
	if err != nil {
		return domain.Lesson{}, false, err
	}
	return entity, true, nil
}

// ListByCourseID returns the course's lessons in chronological order.
// POST: Returns lessons (empty slice if none)
func (s *SQLiteStore) ListByCourseID(ctx context.Context, courseID string) ([]domain.Lesson, error) {
	return s.list(ctx, selectLesson+" WHERE course_id = ? ORDER BY date, id", courseID)
}

// ListByCourseAndDateRange returns lessons with from <= date <= to, ascending.
// A zero bound leaves that side open.
func (s *SQLiteStore) ListByCourseAndDateRange(ctx context.Context, courseID string, from, to time.Time) ([]domain.Lesson, error) {
	var b strings.Builder
	args := []any{courseID}
	b.WriteString(selectLesson + " WHERE course_id = ?")
	if !from.IsZero() {
		b.WriteString(" AND date >= ?")
		args = append(args, dates.ISO(from))
	}
	if !to.IsZero() {
		b.WriteString(" AND date <= ?")
		args = append(args, dates.ISO(to))
	}
	b.WriteString(" ORDER BY date, id")
	return s.list(ctx, b.String(), args...)
}

// ListByDate returns the lessons held on date in any of the given courses.
// POST: Returns an empty slice when courseIDs is empty
func (s *SQLiteStore) ListByDate(ctx context.Context, courseIDs []string, date time.Time) ([]domain.Lesson, error) {
	if len(courseIDs) == 0 {
		return []domain.Lesson{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(courseIDs)), ", ")
	args := make([]any, 0, len(courseIDs)+1)
	args = append(args, dates.ISO(date))
	for _, id := range courseIDs {
		args = append(args, id)
	}
	return s.list(ctx, selectLesson+" WHERE date = ? AND course_id IN ("+placeholders+") ORDER BY course_id", args...)
}

// Delete removes a lesson together with its attendance records.
// PRE: id is non-empty
// POST: Lesson and its attendance are gone, or an ErrNotFound error is returned
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM attendance WHERE lesson_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM lesson WHERE id = ?", id)
	if err := requireRow(res, err, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Lesson{}
	for rows.Next() {
		entity, err := scanLesson(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// requireRow turns an update that touched nothing into an ErrNotFound error.
func requireRow(res sql.Result, err error, id string) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.NotFound(sql.ErrNoRows, "lesson", id)
	}
	return nil
}

func scanLesson(scan func(dest ...any) error) (domain.Lesson, error) {
	var entity domain.Lesson
	var date string
	if err := scan(&entity.ID, &entity.CourseID, &date, &entity.PlanToday, &entity.Outcome, &entity.PlanNext); err != nil {
		return domain.Lesson{}, err
	}
	var err error
	if entity.Date, err = dates.Parse(date); err != nil {
		return domain.Lesson{}, err
	}
	return entity, nil
}
