package viewmodel

import (
	"context"
	"strings"

	"github.com/jrsteele09/captal-web/auth"
	"github.com/jrsteele09/captal-web/session"
)

type SignInService interface {
	SignIn(ctx context.Context, req auth.SignInRequest) (auth.SignInResult, error)
}

var loginMessages = Messages{Fallback: MsgLoginFailed}

// Login is the sign-in form
type Login struct {
	Email       string
	FieldErrors map[string]string
	Error       string
	User        *auth.User

	svc SignInService
}

func NewLogin(svc SignInService) *Login {
	return &Login{svc: svc}
}

// Submit validates the form and signs in. On success the tokens are written to
// sess and true is returned; otherwise FieldErrors or Error explain why.
func (l *Login) Submit(ctx context.Context, form auth.LoginForm, sess *session.Session) bool {
	l.FieldErrors = nil
	l.Error = ""
	form.Email = strings.TrimSpace(form.Email)
	l.Email = form.Email

	if errs := auth.FieldErrors(form.Validate()); errs != nil {
		l.FieldErrors = errs
		return false
	}

	res, err := l.svc.SignIn(ctx, auth.SignInRequest(form))
	if err != nil {
		l.Error = MessageFor(err, loginMessages)
		return false
	}

	sess.SetAuthCookies(res.Tokens.AuthTokens())
	l.User = &res.User
	return true
}
