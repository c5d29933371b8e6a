package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"lessonbook/internal/adapters/email"
	web "lessonbook/internal/adapters/http"
	"lessonbook/internal/adapters/http/perf"
	"lessonbook/internal/adapters/storage"
	accountStore "lessonbook/internal/adapters/storage/account"
	attendanceStore "lessonbook/internal/adapters/storage/attendance"
	courseStore "lessonbook/internal/adapters/storage/course"
	lessonStore "lessonbook/internal/adapters/storage/lesson"
	participantStore "lessonbook/internal/adapters/storage/participant"
	"lessonbook/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// WAL mode, foreign keys and busy timeout on every connection
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	slog.Info("database_ready", "path", cfg.DBPath, "schema", storage.LatestSchemaVersion())

	collector := perf.NewCollector(cfg.PerfRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQueryMs)

	stores := &web.Stores{
		AccountStore:     accountStore.NewSQLiteStore(timedDB),
		CourseStore:      courseStore.NewSQLiteStore(timedDB),
		ParticipantStore: participantStore.NewSQLiteStore(timedDB),
		LessonStore:      lessonStore.NewSQLiteStore(timedDB),
		AttendanceStore:  attendanceStore.NewSQLiteStore(timedDB),
	}

	if cfg.ResendKey != "" {
		web.SetEmailSender(email.NewResendSender(cfg.ResendKey, cfg.EmailFrom), cfg.EmailFrom, cfg.ReplyTo)
		slog.Info("email_sender_configured", "provider", "resend")
	} else {
		web.SetEmailSender(email.NewNoopSender(), cfg.EmailFrom, cfg.ReplyTo)
		if cfg.IsProduction() {
			slog.Warn("email_sender_disabled", "reason", "LESSONBOOK_RESEND_KEY is not set")
		} else {
			slog.Info("email_sender_configured", "provider", "noop")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := web.NewMux(ctx, stores, collector, web.Options{
		CSRFKey:            cfg.CSRFKey,
		CookieSecure:       cfg.CookieSecure,
		TrustedOrigins:     cfg.TrustedOrigins,
		SessionTTL:         cfg.SessionTTL,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		SlowRequestMs:      cfg.SlowRequestMs,
		EmailFrom:          cfg.EmailFrom,
		ReplyTo:            cfg.ReplyTo,
		AdminUsernames:     cfg.AdminUsernames,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", cfg.Addr, err)
	}
	slog.Info("server_starting", "version", version, "addr", ln.Addr().String(), "env", cfg.Env)
	if err := serve(ctx, srv, ln, shutdownTimeout); err != nil {
		log.Fatalf("server failed: %v", err)
	}
	slog.Info("server_stopped")
}

// shutdownTimeout bounds how long in-flight requests may drain after a signal.
const shutdownTimeout = 10 * time.Second

// serve runs srv on ln until ctx is cancelled, then shuts it down.
// POST: returns only after Shutdown has finished, so callers may release resources
// (such as the database) that handlers still use while draining
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	// Serve returns as soon as Shutdown starts; wait for in-flight requests to drain.
	if err := <-shutdownErr; err != nil {
		slog.Error("server_shutdown_failed", "error", err)
		return err
	}
	return nil
}
