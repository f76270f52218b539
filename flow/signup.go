package flow

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/captal-web/auth"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/viewmodel"
)

// Sign-up stages
const (
	SignUpEmailForm        = "EMAIL_FORM"
	SignUpPasswordForm     = "PASSWORD_FORM"
	SignUpVerificationForm = "VERIFICATION_FORM"
	SignUpDone             = "DONE"
)

var (
	signUpMessages = viewmodel.Messages{
		Fallback:    viewmodel.MsgSignUpFailed,
		Status:      map[int]string{http.StatusConflict: viewmodel.MsgEmailInUse},
		StatusFirst: true,
	}
	confirmMessages = viewmodel.Messages{
		Fallback: viewmodel.MsgVerifyFailed,
		Status:   map[int]string{http.StatusBadRequest: viewmodel.MsgInvalidCode},
	}
	resendMessages = viewmodel.Messages{
		Fallback: viewmodel.MsgResendFailed,
		Status:   map[int]string{http.StatusBadRequest: viewmodel.MsgUserNotFound},
	}
)

// SignUpService is the part of auth.Service the sign-up flow calls
type SignUpService interface {
	SignUp(ctx context.Context, req auth.SignUpRequest) (auth.SignUpResponse, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendVerification(ctx context.Context, email string) (auth.MessageResponse, error)
}

// SignUp walks EMAIL_FORM -> PASSWORD_FORM -> VERIFICATION_FORM -> DONE.
// After each action FieldErrors and Error describe what the page should show.
type SignUp struct {
	State       State
	FieldErrors map[string]string
	Error       string
	Info        string

	svc      SignUpService
	cooldown time.Duration
}

// NewSignUp resumes st, or starts at the email form when st is not a sign-up
func NewSignUp(svc SignUpService, st State, cooldown time.Duration) *SignUp {
	if st.Kind != KindSignUp || st.Stage == "" {
		st = State{Kind: KindSignUp, Stage: SignUpEmailForm}
	}
	if cooldown <= 0 {
		cooldown = DefaultCodeCooldown
	}
	return &SignUp{State: st, svc: svc, cooldown: cooldown}
}

func (f *SignUp) Stage() string {
	return f.State.Stage
}

func (f *SignUp) reset() {
	f.FieldErrors = nil
	f.Error = ""
	f.Info = ""
}

func (f *SignUp) expect(stage string) error {
	if f.State.Stage != stage {
		return apperrors.Wrapf(apperrors.ErrInvalidTransition, "[flow SignUp] at %s, expected %s", f.State.Stage, stage)
	}
	return nil
}

// SubmitIdentity records name and email and moves to the password form
func (f *SignUp) SubmitIdentity(form auth.SignUpIdentityForm) error {
	f.reset()
	if err := f.expect(SignUpEmailForm); err != nil {
		return err
	}
	if errs := auth.FieldErrors(form.Validate()); errs != nil {
		f.FieldErrors = errs
		return nil
	}
	f.State.Name = strings.TrimSpace(form.Name)
	f.State.Email = strings.TrimSpace(form.Email)
	f.State.Stage = SignUpPasswordForm
	return nil
}

// SubmitPassword creates the account and moves to the verification form
func (f *SignUp) SubmitPassword(ctx context.Context, form auth.PasswordForm, now time.Time) error {
	f.reset()
	if err := f.expect(SignUpPasswordForm); err != nil {
		return err
	}
	if errs := auth.FieldErrors(form.Validate()); errs != nil {
		f.FieldErrors = errs
		return nil
	}

	resp, err := f.svc.SignUp(ctx, auth.SignUpRequest{
		Name:     f.State.Name,
		Email:    f.State.Email,
		Password: form.Password,
	})
	if err != nil {
		f.Error = viewmodel.MessageFor(err, signUpMessages)
		return nil
	}

	f.Info = resp.Message
	f.State.Stage = SignUpVerificationForm
	f.State.CodeSentAt = now.Unix()
	return nil
}

// Verify confirms the emailed code; DONE means the page goes to /login
func (f *SignUp) Verify(ctx context.Context, form auth.VerificationForm) error {
	f.reset()
	if err := f.expect(SignUpVerificationForm); err != nil {
		return err
	}
	form.Code = strings.TrimSpace(form.Code)
	if errs := auth.FieldErrors(form.Validate()); errs != nil {
		f.FieldErrors = errs
		return nil
	}

	if err := f.svc.ConfirmSignUp(ctx, f.State.Email, form.Code); err != nil {
		f.Error = viewmodel.MessageFor(err, confirmMessages)
		return nil
	}
	f.State.Stage = SignUpDone
	return nil
}

// Resend sends a new code unless the previous one is still cooling down
func (f *SignUp) Resend(ctx context.Context, now time.Time) error {
	f.reset()
	if err := f.expect(SignUpVerificationForm); err != nil {
		return err
	}
	if f.Remaining(now) > 0 {
		f.Error = viewmodel.MsgResendTooSoon
		return apperrors.Wrapf(apperrors.ErrResendTooSoon, "[flow SignUp] %ds left", f.Remaining(now))
	}

	resp, err := f.svc.ResendVerification(ctx, f.State.Email)
	if err != nil {
		f.Error = viewmodel.MessageFor(err, resendMessages)
		return nil
	}
	f.Info = resp.Message
	f.State.CodeSentAt = now.Unix()
	return nil
}

// Back returns to the previous form. It reports true when the user should leave for /login.
func (f *SignUp) Back() (toLogin bool, err error) {
	f.reset()
	switch f.State.Stage {
	case SignUpPasswordForm:
		f.State.Stage = SignUpEmailForm
		return false, nil
	case SignUpEmailForm:
		return true, nil
	}
	return false, apperrors.Wrapf(apperrors.ErrInvalidTransition, "[flow SignUp] no way back from %s", f.State.Stage)
}

func (f *SignUp) Remaining(now time.Time) int {
	return Remaining(f.State.SentAt(), now, f.cooldown)
}

func (f *SignUp) Done() bool {
	return f.State.Stage == SignUpDone
}
