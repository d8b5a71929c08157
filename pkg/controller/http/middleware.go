package http

import (
	"context"
	"net/http"

	"github.com/chek-project/chek-kma/pkg/domain/types"
	"github.com/chek-project/chek-kma/pkg/usecase"
)

const sessionCookieName = "chek_session"

type ctxSessionKey struct{}

func sessionFromContext(ctx context.Context) (*usecase.Session, bool) {
	sess, ok := ctx.Value(ctxSessionKey{}).(*usecase.Session)
	return sess, ok && sess != nil
}

// sessionMiddleware attaches the session named by the session cookie, if any
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, ok := s.uc.Sessions.Get(types.SessionID(cookie.Value))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePageSession redirects visitors without an access token to /login.
// The token is not validated.
func requirePageSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok || !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAPISession answers 401 to API calls without an access token
func requireAPISession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok || !sess.Authenticated() {
			writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: "Authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id types.SessionID) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
