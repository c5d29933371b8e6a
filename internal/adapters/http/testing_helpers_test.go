package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lessonbook/internal/adapters/email"
	"lessonbook/internal/adapters/http/perf"
	accountStore "lessonbook/internal/adapters/storage/account"
	attendanceStore "lessonbook/internal/adapters/storage/attendance"
	courseStore "lessonbook/internal/adapters/storage/course"
	lessonStore "lessonbook/internal/adapters/storage/lesson"
	participantStore "lessonbook/internal/adapters/storage/participant"
	"lessonbook/internal/adapters/storage/storagetest"
	"lessonbook/internal/domain/account"
)

func init() {
	account.HashCost = bcrypt.MinCost
}

// testApp is a fully wired handler over an in-memory database.
type testApp struct {
	handler http.Handler
	sender  *email.NoopSender
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	db := storagetest.Open(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sender := email.NewNoopSender()
	SetEmailSender(sender, "journal@lessonbook.test", "")
	t.Cleanup(func() { emailSender = nil })

	h := NewMux(ctx, &Stores{
		AccountStore:     accountStore.NewSQLiteStore(db),
		CourseStore:      courseStore.NewSQLiteStore(db),
		ParticipantStore: participantStore.NewSQLiteStore(db),
		LessonStore:      lessonStore.NewSQLiteStore(db),
		AttendanceStore:  attendanceStore.NewSQLiteStore(db),
	}, perf.NewCollector(1000), Options{
		CSRFKey:            []byte(strings.Repeat("k", 32)),
		RateLimitPerSecond: 10000,
		SessionTTL:         time.Hour,
		AdminUsernames:     []string{"Admin.Ops"},
	})
	return testApp{handler: h, sender: sender}
}

// fixClock pins timeNow for the duration of the test.
func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

// client sends JSON requests through the app, carrying the session cookie.
type client struct {
	t      *testing.T
	app    testApp
	cookie *http.Cookie
}

func (c *client) do(method, target string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			c.t.Fatal(err)
		}
		req = httptest.NewRequest(method, target, bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rr := httptest.NewRecorder()
	c.app.handler.ServeHTTP(rr, req)
	return rr
}

// signUp registers and logs in a teacher, returning a client holding the session.
func signUp(t *testing.T, app testApp, username string) *client {
	t.Helper()
	c := &client{t: t, app: app}
	creds := map[string]string{"username": username, "password": "correct horse"}
	if rr := c.do("POST", "/register", creds); rr.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", username, rr.Code, rr.Body.String())
	}
	rr := c.do("POST", "/login", creds)
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, rr.Code, rr.Body.String())
	}
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == "lessonbook_session" {
			c.cookie = ck
		}
	}
	if c.cookie == nil {
		t.Fatal("login did not set a session cookie")
	}
	return c
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, want, rr.Body.String())
	}
}

// createCourse creates a course and returns its id.
func (c *client) createCourse(title, start, end string) string {
	c.t.Helper()
	rr := c.do("POST", "/api/courses", map[string]string{"title": title, "start_date": start, "end_date": end})
	expectStatus(c.t, rr, http.StatusCreated)
	return decode[courseView](c.t, rr).ID
}

func (c *client) enroll(courseID, name string) string {
	c.t.Helper()
	rr := c.do("POST", "/api/participants", map[string]string{"course_id": courseID, "name": name})
	expectStatus(c.t, rr, http.StatusCreated)
	return decode[participantView](c.t, rr).ID
}

func (c *client) addLesson(courseID, date string) string {
	c.t.Helper()
	rr := c.do("POST", "/api/lessons", map[string]string{"course_id": courseID, "date": date})
	expectStatus(c.t, rr, http.StatusCreated)
	return decode[lessonView](c.t, rr).ID
}
