package server

import (
	"net/http"

	"github.com/jrsteele09/captal-web/auth"
	"github.com/jrsteele09/captal-web/flow"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/viewmodel"
)

// SignUpPage is the model of signup.html
type SignUpPage struct {
	Flow      *flow.SignUp
	Remaining int
}

func (s *Server) loadSignUp(w http.ResponseWriter, r *http.Request) (*flow.SignUp, session.Store) {
	store := s.flowStore(w, r)
	st, _ := flow.LoadState(store, flow.KindSignUp)
	return flow.NewSignUp(s.auth, st, s.codeCooldown), store
}

func (s *Server) renderSignUp(w http.ResponseWriter, r *http.Request, f *flow.SignUp, status int) {
	page := s.page(r, "Criar conta", SignUpPage{Flow: f, Remaining: f.Remaining(session.NowTimeFunc())})
	if f.Error != "" {
		page.Error = f.Error
	}
	if f.Info != "" {
		page.Notice = f.Info
	}
	s.render(w, r, "signup.html", status, page)
}

// afterSignUpStep saves the flow and goes back to the form when the step succeeded,
// or renders the errors in place
func (s *Server) afterSignUpStep(w http.ResponseWriter, r *http.Request, f *flow.SignUp, store session.Store, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidTransition):
		requestLogger(r).Warn().Err(err).Msg("sign-up step out of order")
		redirectSuccess(w, r, RouteSignUp)
		return
	case apperrors.Is(err, apperrors.ErrResendTooSoon):
		s.renderSignUp(w, r, f, http.StatusTooManyRequests)
		return
	case err != nil:
		requestLogger(r).Err(err).Msg("sign-up step failed")
		s.renderSignUp(w, r, f, http.StatusInternalServerError)
		return
	}

	if f.FieldErrors != nil || f.Error != "" {
		s.renderSignUp(w, r, f, http.StatusUnprocessableEntity)
		return
	}

	if f.Done() {
		flow.ClearState(store)
		redirectWithNotice(w, r, RouteLogin, viewmodel.MsgAccountConfirmedOK)
		return
	}

	flow.SaveState(store, f.State)
	if f.Info != "" {
		redirectWithNotice(w, r, RouteSignUp, f.Info)
		return
	}
	redirectSuccess(w, r, RouteSignUp)
}

// SignUpGetHandler renders the current sign-up step (GET /sign-up)
func (s *Server) SignUpGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _ := s.loadSignUp(w, r)
		s.renderSignUp(w, r, f, http.StatusOK)
	}
}

// SignUpPostHandler submits the identity or the password step (POST /sign-up)
func (s *Server) SignUpPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		f, store := s.loadSignUp(w, r)

		var err error
		switch f.Stage() {
		case flow.SignUpEmailForm:
			err = f.SubmitIdentity(auth.SignUpIdentityForm{
				Name:  r.FormValue("name"),
				Email: r.FormValue("email"),
			})
		case flow.SignUpPasswordForm:
			err = f.SubmitPassword(r.Context(), auth.PasswordForm{
				Password:        r.FormValue("password"),
				ConfirmPassword: r.FormValue("confirmPassword"),
			}, session.NowTimeFunc())
		default:
			err = apperrors.Wrapf(apperrors.ErrInvalidTransition, "[server SignUpPost] at %s", f.Stage())
		}
		s.afterSignUpStep(w, r, f, store, err)
	}
}

// SignUpVerifyHandler confirms the emailed code (POST /sign-up/verify)
func (s *Server) SignUpVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		f, store := s.loadSignUp(w, r)
		err := f.Verify(r.Context(), auth.VerificationForm{Code: r.FormValue("code")})
		s.afterSignUpStep(w, r, f, store, err)
	}
}

// SignUpResendHandler sends a new code once the countdown is over (POST /sign-up/resend)
func (s *Server) SignUpResendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, store := s.loadSignUp(w, r)
		err := f.Resend(r.Context(), session.NowTimeFunc())
		s.afterSignUpStep(w, r, f, store, err)
	}
}

// SignUpBackHandler returns to the previous step, or to the login page (POST /sign-up/back)
func (s *Server) SignUpBackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, store := s.loadSignUp(w, r)
		toLogin, err := f.Back()
		if err != nil {
			requestLogger(r).Warn().Err(err).Msg("sign-up back refused")
			redirectSuccess(w, r, RouteSignUp)
			return
		}
		if toLogin {
			flow.ClearState(store)
			redirectSuccess(w, r, RouteLogin)
			return
		}
		flow.SaveState(store, f.State)
		redirectSuccess(w, r, RouteSignUp)
	}
}
