package server

import (
	"net/http"

	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/viewmodel"
)

// WithSession loads the auth cookies of the request into a session.Session and
// puts it in the request context, where the API transport finds it.
func (s *Server) WithSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Load(s.cookieStore(w, r))
		next(w, r.WithContext(session.NewContext(r.Context(), sess)))
	}
}

// RequireSession sends users without an access token to the login page.
// An expired token with a refresh token is let through; the transport refreshes it.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !s.canResume(sess) {
			if ok {
				sess.ClearAll()
			}
			redirectSuccess(w, r, RouteLogin)
			return
		}
		next(w, r)
	}
}

// RequireAPISession answers 401 JSON where RequireSession would redirect
func (s *Server) RequireAPISession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !s.canResume(sess) {
			writeJSON(w, r, http.StatusUnauthorized, map[string]string{"message": viewmodel.MsgSessionExpired})
			return
		}
		next(w, r)
	}
}

// RedirectAuthenticated sends signed-in users away from the login page
func (s *Server) RedirectAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromContext(r.Context()); ok && sess.IsAuthenticated() && !sess.IsExpired() {
			redirectSuccess(w, r, RouteHome)
			return
		}
		next(w, r)
	}
}

func (s *Server) canResume(sess *session.Session) bool {
	return sess.IsAuthenticated() || sess.RefreshToken() != ""
}

// cookieStore is the raw cookie jar of the request; the session manager seals on top of it
func (s *Server) cookieStore(w http.ResponseWriter, r *http.Request) *session.CookieStore {
	return session.NewCookieStore(w, r, s.sessions.CookieOptions())
}

// flowStore holds the sign-up and recovery state, sealed like the auth cookies
func (s *Server) flowStore(w http.ResponseWriter, r *http.Request) session.Store {
	return s.sessions.Wrap(s.cookieStore(w, r))
}
