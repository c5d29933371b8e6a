package orchestrators

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lessonbook/internal/domain/account"
	"lessonbook/internal/domain/attendance"
	"lessonbook/internal/domain/course"
	"lessonbook/internal/domain/errs"
	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/domain/participant"
)

func init() {
	account.HashCost = bcrypt.MinCost
}

var testNow = time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// sequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	var n int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, atomic.AddInt64(&n, 1))
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- accounts ---

type mockAccountStore struct {
	mu       sync.Mutex
	accounts map[string]account.Account
	saveErr  error
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByUsername(_ context.Context, username string) (account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if strings.EqualFold(a.Username, username) {
			return a, nil
		}
	}
	return account.Account{}, errs.NotFound("account %s", username)
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = a
	return nil
}

// --- courses ---

type mockCourseStore struct {
	courses map[string]course.Course
}

func newMockCourseStore(cs ...course.Course) *mockCourseStore {
	m := &mockCourseStore{courses: make(map[string]course.Course)}
	for _, c := range cs {
		m.courses[c.ID] = c
	}
	return m
}

func (m *mockCourseStore) GetByID(_ context.Context, id string) (course.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return course.Course{}, errs.NotFound("course %s", id)
	}
	return c, nil
}

func (m *mockCourseStore) Save(_ context.Context, c course.Course) error {
	m.courses[c.ID] = c
	return nil
}

// --- participants ---

type mockParticipantStore struct {
	mu           sync.Mutex
	participants map[string]participant.Participant
	order        []string
	batchErr     error
}

func newMockParticipantStore(ps ...participant.Participant) *mockParticipantStore {
	m := &mockParticipantStore{participants: make(map[string]participant.Participant)}
	for _, p := range ps {
		m.participants[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m
}

func (m *mockParticipantStore) GetByID(_ context.Context, id string) (participant.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.participants[id]
	if !ok {
		return participant.Participant{}, errs.NotFound("participant %s", id)
	}
	return p, nil
}

func (m *mockParticipantStore) Save(_ context.Context, p participant.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.participants[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockParticipantStore) SaveBatch(ctx context.Context, ps []participant.Participant) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for _, p := range ps {
		if err := m.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockParticipantStore) ListByCourseID(_ context.Context, courseID string) ([]participant.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []participant.Participant{}
	for _, id := range m.order {
		if p := m.participants[id]; p.CourseID == courseID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- lessons ---

type mockLessonStore struct {
	mu            sync.Mutex
	lessons       map[string]lesson.Lesson
	updatePlanErr error
	nextAfterErr  error
	writes        []string // ids written by UpdatePlan/UpdatePlanToday, in order
}

func newMockLessonStore(ls ...lesson.Lesson) *mockLessonStore {
	m := &mockLessonStore{lessons: make(map[string]lesson.Lesson)}
	for _, l := range ls {
		m.lessons[l.ID] = l
	}
	return m
}

func (m *mockLessonStore) GetByID(_ context.Context, id string) (lesson.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[id]
	if !ok {
		return lesson.Lesson{}, errs.NotFound("lesson %s", id)
	}
	return l, nil
}

func (m *mockLessonStore) Create(_ context.Context, l lesson.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.lessons {
		if existing.CourseID == l.CourseID && existing.Date.Equal(l.Date) {
			return lesson.ErrDuplicateDate
		}
	}
	m.lessons[l.ID] = l
	return nil
}

func (m *mockLessonStore) UpdatePlan(_ context.Context, id string, p lesson.Plan) error {
	if m.updatePlanErr != nil {
		return m.updatePlanErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[id]
	if !ok {
		return errs.NotFound("lesson %s", id)
	}
	l.ApplyPlan(p)
	m.lessons[id] = l
	m.writes = append(m.writes, id)
	return nil
}

func (m *mockLessonStore) UpdatePlanToday(_ context.Context, id string, planToday string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lessons[id]
	if !ok {
		return errs.NotFound("lesson %s", id)
	}
	l.PlanToday = planToday
	m.lessons[id] = l
	m.writes = append(m.writes, id)
	return nil
}

func (m *mockLessonStore) NextAfter(_ context.Context, courseID string, date time.Time) (lesson.Lesson, bool, error) {
	if m.nextAfterErr != nil {
		return lesson.Lesson{}, false, m.nextAfterErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var later []lesson.Lesson
	for _, l := range m.lessons {
		if l.CourseID == courseID && l.Date.After(date) {
			later = append(later, l)
		}
	}
	if len(later) == 0 {
		return lesson.Lesson{}, false, nil
	}
	lesson.SortByDate(later)
	return later[0], true, nil
}

func (m *mockLessonStore) ListByCourseID(_ context.Context, courseID string) ([]lesson.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []lesson.Lesson{}
	for _, l := range m.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	lesson.SortByDate(out)
	return out, nil
}

func (m *mockLessonStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lessons[id]; !ok {
		return errs.NotFound("lesson %s", id)
	}
	delete(m.lessons, id)
	return nil
}

// --- attendance ---

type mockAttendanceStore struct {
	mu       sync.Mutex
	records  map[attendance.Key]attendance.Record
	batchErr error
}

func newMockAttendanceStore() *mockAttendanceStore {
	return &mockAttendanceStore{records: make(map[attendance.Key]attendance.Record)}
}

func (m *mockAttendanceStore) Upsert(_ context.Context, r attendance.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.records[r.Key()]; ok {
		r.ID = existing.ID
	}
	m.records[r.Key()] = r
	return nil
}

func (m *mockAttendanceStore) UpsertBatch(ctx context.Context, rs []attendance.Record) ([]attendance.Record, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	stored := make([]attendance.Record, 0, len(rs))
	for _, r := range rs {
		if err := m.Upsert(ctx, r); err != nil {
			return nil, err
		}
		got, err := m.GetByKey(ctx, r.Key())
		if err != nil {
			return nil, err
		}
		stored = append(stored, got)
	}
	return stored, nil
}

func (m *mockAttendanceStore) GetByKey(_ context.Context, key attendance.Key) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[key]
	if !ok {
		return attendance.Record{}, errs.NotFound("attendance for participant %s", key.ParticipantID)
	}
	return r, nil
}

func (m *mockAttendanceStore) forLesson(lessonID string) []attendance.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for k, r := range m.records {
		if k.LessonID == lessonID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })
	return out
}

// --- fixtures ---

// fixture is one course of teacher-1 with three weekly lessons and two participants,
// plus a second course with one participant for cross-course checks.
type fixture struct {
	courses      *mockCourseStore
	lessons      *mockLessonStore
	participants *mockParticipantStore
	attendance   *mockAttendanceStore
}

func newFixture() fixture {
	return fixture{
		courses: newMockCourseStore(
			course.Course{ID: "c1", Title: "German A1", StartDate: day("2024-01-01"), EndDate: day("2024-03-31"), TeacherID: "teacher-1"},
			course.Course{ID: "c2", Title: "German A2", StartDate: day("2024-01-01"), EndDate: day("2024-03-31"), TeacherID: "teacher-1"},
		),
		lessons: newMockLessonStore(
			lesson.Lesson{ID: "L1", CourseID: "c1", Date: day("2024-01-10")},
			lesson.Lesson{ID: "L2", CourseID: "c1", Date: day("2024-01-17")},
			lesson.Lesson{ID: "L3", CourseID: "c1", Date: day("2024-01-24"), PlanToday: "original L3 plan"},
		),
		participants: newMockParticipantStore(
			participant.Participant{ID: "P1", CourseID: "c1", Name: "Anna"},
			participant.Participant{ID: "P2", CourseID: "c1", Name: "Ben"},
			participant.Participant{ID: "Q1", CourseID: "c2", Name: "Cem"},
		),
		attendance: newMockAttendanceStore(),
	}
}

func (f fixture) recordDeps() RecordAttendanceDeps {
	return RecordAttendanceDeps{
		CourseStore:      f.courses,
		LessonStore:      f.lessons,
		ParticipantStore: f.participants,
		AttendanceStore:  f.attendance,
		GenerateID:       sequentialIDs("att"),
		Now:              fixedNow,
	}
}

func (f fixture) batchDeps() RecordAttendanceBatchDeps {
	return RecordAttendanceBatchDeps{
		CourseStore:      f.courses,
		LessonStore:      f.lessons,
		ParticipantStore: f.participants,
		AttendanceStore:  f.attendance,
		GenerateID:       sequentialIDs("att"),
		Now:              fixedNow,
	}
}

func (f fixture) planDeps() SaveLessonPlanDeps {
	return SaveLessonPlanDeps{CourseStore: f.courses, LessonStore: f.lessons}
}

func lessonPlanWithOutcome(outcome string) lesson.Plan {
	return lesson.Plan{Outcome: outcome}
}
