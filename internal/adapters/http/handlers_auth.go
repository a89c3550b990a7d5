package web

import (
	"errors"
	"net/http"
	"strings"

	"dashboard/internal/application/orchestrators"
)

const (
	msgInvalidCredentials = "Invalid credentials."
	msgSomethingWrong     = "Something went wrong."
)

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLoginPage handles GET /login
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"title":       "Please log in to continue.",
		"callbackUrl": s.safeCallback(r.URL.Query().Get("callbackUrl")),
	})
}

// handleLogin handles POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, message(msgSomethingWrong))
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    form["email"],
		Password: form["password"],
	}, orchestrators.LoginDeps{AccountStore: s.stores.AccountStore})
	if errors.Is(err, orchestrators.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, message(msgInvalidCredentials))
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, message(msgSomethingWrong))
		return
	}

	token, _, err := s.opts.Sessions.Issue(result.AccountID, result.Email, result.Name)
	if err != nil {
		internalError(w, err)
		return
	}
	s.opts.Sessions.SetCookie(w, token)
	http.Redirect(w, r, s.safeCallback(form["callbackUrl"]), http.StatusSeeOther)
}

// handleLogout handles POST /dashboard/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.opts.Sessions.ClearCookie(w)
	http.Redirect(w, r, s.opts.Policy.LoginPath, http.StatusSeeOther)
}

// safeCallback keeps post-login redirects on this site and inside the protected area.
func (s *Server) safeCallback(target string) string {
	if target == "" || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") || !strings.HasPrefix(target, "/") {
		return s.opts.Policy.HomePath
	}
	path, _, _ := strings.Cut(target, "?")
	if !s.opts.Policy.IsProtected(path) {
		return s.opts.Policy.HomePath
	}
	return target
}
