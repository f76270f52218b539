package server

import (
	"net/http"

	"github.com/jrsteele09/captal-web/auth"
	"github.com/jrsteele09/captal-web/flow"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/viewmodel"
)

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		login := viewmodel.NewLogin(s.auth)
		login.Email = r.URL.Query().Get("email")
		s.render(w, r, "login.html", http.StatusOK, s.page(r, "Entrar", login))
	}
}

// LoginSubmissionHandler signs in and writes the token cookies (POST /login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		sess, ok := session.FromContext(r.Context())
		if !ok {
			http.Error(w, "session not loaded", http.StatusInternalServerError)
			return
		}

		form := auth.LoginForm{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
		login := viewmodel.NewLogin(s.auth)
		if !login.Submit(r.Context(), form, sess) {
			page := s.page(r, "Entrar", login)
			page.Error = login.Error
			s.render(w, r, "login.html", http.StatusUnprocessableEntity, page)
			return
		}

		requestLogger(r).Info().Str("user_id", login.User.ID).Msg("signed in")
		flow.ClearState(s.flowStore(w, r))
		redirectSuccess(w, r, RouteHome)
	}
}

// LogoutHandler clears the auth cookies (GET /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := session.FromContext(r.Context()); ok {
			sess.ClearAll()
		}
		redirectSuccess(w, r, RouteLogin)
	}
}
