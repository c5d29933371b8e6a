package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"lessonbook/internal/adapters/http/middleware"
	"lessonbook/internal/domain/errs"
)

func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// writeError maps domain error kinds to status codes. Anything unclassified is a 500
// whose details stay in the log.
func writeError(w http.ResponseWriter, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request", "fields": fieldErrors(vErrs)})
		return
	}
	switch errs.Kind(err) {
	case errs.ErrNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errs.ErrInvalidArgument:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errs.ErrConflict:
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		internalError(w, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response_encode_failed", "error", err.Error())
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

// teacherID returns the acting account of the request. Routes under /api are
// wrapped in RequireAuth, so a missing session here is a wiring bug.
func teacherID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "login required"})
		return "", false
	}
	return sess.AccountID, true
}

// requireAdmin writes 403 unless the session belongs to a configured admin.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "login required"})
		return false
	}
	for _, name := range adminUsernames {
		if strings.EqualFold(name, sess.Username) {
			return true
		}
	}
	slog.Warn("admin_denied", "account_id", sess.AccountID, "path", r.URL.Path)
	writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
	return false
}
