package server

import (
	"net/http"

	"github.com/jrsteele09/captal-web/auth"
	"github.com/jrsteele09/captal-web/flow"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/viewmodel"
)

// RecoveryPage is the model of forgot_password.html
type RecoveryPage struct {
	Flow      *flow.Recovery
	Stage     string
	Remaining int
}

func (s *Server) loadRecovery(w http.ResponseWriter, r *http.Request) (*flow.Recovery, session.Store) {
	store := s.flowStore(w, r)
	st, _ := flow.LoadState(store, flow.KindRecovery)
	return flow.NewRecovery(s.auth, st, s.codeCooldown), store
}

func (s *Server) renderRecovery(w http.ResponseWriter, r *http.Request, f *flow.Recovery, status int) {
	page := s.page(r, "Recuperar senha", RecoveryPage{
		Flow:      f,
		Stage:     f.Stage(),
		Remaining: f.Remaining(session.NowTimeFunc()),
	})
	if f.Error != "" {
		page.Error = f.Error
	}
	if f.Info != "" {
		page.Notice = f.Info
	}
	s.render(w, r, "forgot_password.html", status, page)
}

func (s *Server) afterRecoveryStep(w http.ResponseWriter, r *http.Request, f *flow.Recovery, store session.Store, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidTransition):
		requestLogger(r).Warn().Err(err).Msg("recovery step out of order")
		redirectSuccess(w, r, RouteForgotPassword)
		return
	case apperrors.Is(err, apperrors.ErrResendTooSoon):
		s.renderRecovery(w, r, f, http.StatusTooManyRequests)
		return
	case err != nil:
		requestLogger(r).Err(err).Msg("recovery step failed")
		s.renderRecovery(w, r, f, http.StatusInternalServerError)
		return
	}

	if f.FieldErrors != nil || f.Error != "" {
		s.renderRecovery(w, r, f, http.StatusUnprocessableEntity)
		return
	}

	if f.Done() {
		flow.ClearState(store)
		redirectWithNotice(w, r, RouteLogin, viewmodel.MsgPasswordResetOK)
		return
	}

	flow.SaveState(store, f.State)
	if f.Info != "" {
		redirectWithNotice(w, r, RouteForgotPassword, f.Info)
		return
	}
	redirectSuccess(w, r, RouteForgotPassword)
}

// ForgotPasswordGetHandler renders the current recovery step (GET /forgot-password)
func (s *Server) ForgotPasswordGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _ := s.loadRecovery(w, r)
		s.renderRecovery(w, r, f, http.StatusOK)
	}
}

// ForgotPasswordPostHandler requests a recovery code (POST /forgot-password)
func (s *Server) ForgotPasswordPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		f, store := s.loadRecovery(w, r)
		err := f.SubmitEmail(r.Context(), auth.ForgotPasswordForm{Email: r.FormValue("email")}, session.NowTimeFunc())
		s.afterRecoveryStep(w, r, f, store, err)
	}
}

// ResetPasswordPostHandler sends the code and the new password (POST /forgot-password/reset)
func (s *Server) ResetPasswordPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		f, store := s.loadRecovery(w, r)
		err := f.SubmitReset(r.Context(), auth.ResetPasswordForm{
			Code:            r.FormValue("code"),
			NewPassword:     r.FormValue("newPassword"),
			ConfirmPassword: r.FormValue("confirmPassword"),
		})
		s.afterRecoveryStep(w, r, f, store, err)
	}
}

// ForgotPasswordResendHandler sends a new code once the countdown is over (POST /forgot-password/resend)
func (s *Server) ForgotPasswordResendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, store := s.loadRecovery(w, r)
		err := f.Resend(r.Context(), session.NowTimeFunc())
		s.afterRecoveryStep(w, r, f, store, err)
	}
}

// ForgotPasswordBackHandler leaves the code step, or the page (POST /forgot-password/back)
func (s *Server) ForgotPasswordBackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, store := s.loadRecovery(w, r)
		if f.Back() {
			flow.ClearState(store)
			redirectSuccess(w, r, RouteLogin)
			return
		}
		flow.SaveState(store, f.State)
		redirectSuccess(w, r, RouteForgotPassword)
	}
}
