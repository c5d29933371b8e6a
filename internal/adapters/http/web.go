package web

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"lessonbook/internal/adapters/document"
	"lessonbook/internal/adapters/email"
	"lessonbook/internal/adapters/http/middleware"
	"lessonbook/internal/adapters/http/perf"
	accountStore "lessonbook/internal/adapters/storage/account"
	attendanceStore "lessonbook/internal/adapters/storage/attendance"
	courseStore "lessonbook/internal/adapters/storage/course"
	lessonStore "lessonbook/internal/adapters/storage/lesson"
	participantStore "lessonbook/internal/adapters/storage/participant"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	CourseStore      courseStore.Store
	ParticipantStore participantStore.Store
	LessonStore      lessonStore.Store
	AttendanceStore  attendanceStore.Store
}

// Options configures NewMux. Zero values fall back to development defaults.
type Options struct {
	CSRFKey            []byte // 32 bytes; random per start when empty
	CookieSecure       bool
	TrustedOrigins     []string
	SessionTTL         time.Duration
	RateLimitPerSecond int
	SlowRequestMs      int
	EmailFrom          string
	ReplyTo            string
	AdminUsernames     []string // may read /api/admin/perf
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// adminUsernames lists the accounts allowed on /api/admin routes.
var adminUsernames []string

// secureCookies mirrors Options.CookieSecure for the session cookie.
var secureCookies bool

// renderer turns compiled journals into downloadable documents.
var renderer document.Renderer

// timeNow is a variable for testability.
var timeNow = time.Now

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
// ctx bounds background work such as the rate limiter and session sweeps.
func NewMux(ctx context.Context, s *Stores, collector *perf.Collector, opts Options) http.Handler {
	stores = s
	perfCollector = collector
	secureCookies = opts.CookieSecure
	adminUsernames = opts.AdminUsernames
	sessions = middleware.NewSessionStore(opts.SessionTTL)
	sessions.StartSweeper(ctx, time.Minute)
	if emailSender == nil {
		SetEmailSender(email.NewNoopSender(), opts.EmailFrom, opts.ReplyTo)
	}

	mux := http.NewServeMux()
	registerRoutes(mux)

	csrfKey := opts.CSRFKey
	if len(csrfKey) == 0 {
		csrfKey = randomKey()
	}
	rate := opts.RateLimitPerSecond
	if rate <= 0 {
		rate = 10
	}
	limiter := middleware.NewRateLimiter(ctx, rate, time.Second)

	// Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, opts.CookieSecure, opts.TrustedOrigins),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, opts.SlowRequestMs),
	)
}

func randomKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("csrf key: " + err.Error())
	}
	slog.Warn("csrf_key_random", "hint", "set LESSONBOOK_CSRF_KEY so form tokens survive restarts")
	return key
}
