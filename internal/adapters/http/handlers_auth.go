package web

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"

	"lessonbook/internal/adapters/http/middleware"
	"lessonbook/internal/application/orchestrators"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,notblank,max=80"`
	Password string `json:"password" validate:"required"`
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req credentialsRequest
	if err := bind(r, &req); err != nil {
		writeError(w, err)
		return
	}
	acct, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	}, orchestrators.RegisterDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": acct.ID, "username": acct.Username})
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req credentialsRequest
	if err := bind(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		Now:          timeNow,
	})
	switch {
	case errors.Is(err, orchestrators.ErrAccountLocked):
		writeJSON(w, http.StatusLocked, map[string]string{"error": err.Error()})
		return
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	case err != nil:
		internalError(w, err)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Username)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token, sessions.TTL(), secureCookies)
	writeJSON(w, http.StatusOK, map[string]string{"account_id": result.AccountID, "username": result.Username})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w, secureCookies)
	w.WriteHeader(http.StatusNoContent)
}

// handleCSRFToken hands out the token needed for multipart uploads.
func handleCSRFToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	token := csrf.Token(r)
	w.Header().Set("X-CSRF-Token", token)
	writeJSON(w, http.StatusOK, map[string]string{"csrf_token": token})
}
