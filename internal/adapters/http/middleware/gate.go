package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"dashboard/internal/domain/access"
)

// SessionReader resolves the session carried by a live request.
type SessionReader interface {
	Current(r *http.Request) (Session, bool)
}

// Gate authorizes every request before routing.
// Excluded paths pass straight through. Other paths are decided by policy from
// session presence: allowed requests carry the session in their context, the rest
// are answered with a 303 and never reach a handler.
func Gate(policy access.Policy, exclusions access.Exclusions, sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if exclusions.Matches(path) {
				next.ServeHTTP(w, r)
				return
			}

			sess, present := sessions.Current(r)
			decision := policy.Decide(present, path)
			switch decision {
			case access.Allow:
				if present {
					r = r.WithContext(ContextWithSession(r.Context(), sess))
				}
				next.ServeHTTP(w, r)
			case access.RedirectLogin:
				target := policy.Target(decision) + "?" + url.Values{"callbackUrl": {r.URL.RequestURI()}}.Encode()
				slog.Info("auth_event", "event", "gate_redirect", "decision", decision.String(), "path", path)
				http.Redirect(w, r, target, http.StatusSeeOther)
			default:
				slog.Debug("auth_event", "event", "gate_redirect", "decision", decision.String(), "path", path)
				http.Redirect(w, r, policy.Target(decision), http.StatusSeeOther)
			}
		})
	}
}

// RequireAuth blocks requests without a session from a protected handler.
// The gate skips excluded paths, so a protected route whose path happens to end
// in an excluded extension is only guarded here. The session is taken from the
// context when the gate already resolved it, otherwise read from the request.
func RequireAuth(sessions SessionReader, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetSessionFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}
			if sess, ok := sessions.Current(r); ok {
				next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
				return
			}
			slog.Info("auth_event", "event", "require_auth_redirect", "path", r.URL.Path)
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
		})
	}
}
