package flow

import (
	"context"
	"strings"
	"time"

	"github.com/jrsteele09/captal-web/auth"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/viewmodel"
	"github.com/rs/zerolog/log"
)

// Recovery stages
const (
	RecoveryEmailStep = "EMAIL_STEP"
	RecoveryCodeStep  = "CODE_VERIFICATION_STEP"
	// RecoveryNewPasswordStep exists but nothing moves the flow into it; the
	// code step already collects the new password.
	RecoveryNewPasswordStep = "NEW_PASSWORD_STEP"
	RecoveryDone            = "DONE"
)

var (
	forgotMessages = viewmodel.Messages{Fallback: viewmodel.MsgRecoveryFailed}
	resetMessages  = viewmodel.Messages{Fallback: viewmodel.MsgVerifyFailed}
	// the recovery card resends through the sign-up verification endpoint
	recoveryResendMessages = viewmodel.Messages{Fallback: viewmodel.MsgResendFailed}
)

type RecoveryService interface {
	ForgotPassword(ctx context.Context, email string) (auth.MessageResponse, error)
	ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) (auth.MessageResponse, error)
	ResendVerification(ctx context.Context, email string) (auth.MessageResponse, error)
}

// Recovery walks EMAIL_STEP -> CODE_VERIFICATION_STEP -> DONE
type Recovery struct {
	State       State
	FieldErrors map[string]string
	Error       string
	Info        string

	svc      RecoveryService
	cooldown time.Duration
}

func NewRecovery(svc RecoveryService, st State, cooldown time.Duration) *Recovery {
	if st.Kind != KindRecovery || st.Stage == "" {
		st = State{Kind: KindRecovery, Stage: RecoveryEmailStep}
	}
	if cooldown <= 0 {
		cooldown = DefaultCodeCooldown
	}
	return &Recovery{State: st, svc: svc, cooldown: cooldown}
}

// Stage is the step to render. NEW_PASSWORD_STEP renders as the email step.
func (f *Recovery) Stage() string {
	if f.State.Stage == RecoveryNewPasswordStep {
		log.Warn().Msg("password recovery reached the new password step, showing the email step")
		return RecoveryEmailStep
	}
	return f.State.Stage
}

func (f *Recovery) reset() {
	f.FieldErrors = nil
	f.Error = ""
	f.Info = ""
}

func (f *Recovery) expect(stages ...string) error {
	for _, s := range stages {
		if f.State.Stage == s {
			return nil
		}
	}
	return apperrors.Wrapf(apperrors.ErrInvalidTransition, "[flow Recovery] at %s, expected %v", f.State.Stage, stages)
}

// SubmitEmail requests a recovery code and moves to the code step
func (f *Recovery) SubmitEmail(ctx context.Context, form auth.ForgotPasswordForm, now time.Time) error {
	f.reset()
	if err := f.expect(RecoveryEmailStep, RecoveryNewPasswordStep); err != nil {
		return err
	}
	form.Email = strings.TrimSpace(form.Email)
	if errs := auth.FieldErrors(form.Validate()); errs != nil {
		f.FieldErrors = errs
		return nil
	}

	resp, err := f.svc.ForgotPassword(ctx, form.Email)
	if err != nil {
		f.Error = viewmodel.MessageFor(err, forgotMessages)
		return nil
	}
	f.Info = resp.Message
	f.State.Email = form.Email
	f.State.Stage = RecoveryCodeStep
	f.State.CodeSentAt = now.Unix()
	return nil
}

// SubmitReset sends code and new password; DONE means the page goes to /login
func (f *Recovery) SubmitReset(ctx context.Context, form auth.ResetPasswordForm) error {
	f.reset()
	if err := f.expect(RecoveryCodeStep); err != nil {
		return err
	}
	form.Code = strings.TrimSpace(form.Code)
	if errs := auth.FieldErrors(form.Validate()); errs != nil {
		f.FieldErrors = errs
		return nil
	}

	_, err := f.svc.ResetPassword(ctx, auth.ResetPasswordRequest{
		Email:       f.State.Email,
		Code:        form.Code,
		NewPassword: form.NewPassword,
	})
	if err != nil {
		f.Error = viewmodel.MessageFor(err, resetMessages)
		return nil
	}
	f.State.Stage = RecoveryDone
	return nil
}

func (f *Recovery) Resend(ctx context.Context, now time.Time) error {
	f.reset()
	if err := f.expect(RecoveryCodeStep); err != nil {
		return err
	}
	if left := f.Remaining(now); left > 0 {
		f.Error = viewmodel.MsgResendTooSoon
		return apperrors.Wrapf(apperrors.ErrResendTooSoon, "[flow Recovery] %ds left", left)
	}

	resp, err := f.svc.ResendVerification(ctx, f.State.Email)
	if err != nil {
		f.Error = viewmodel.MessageFor(err, recoveryResendMessages)
		return nil
	}
	f.Info = resp.Message
	f.State.CodeSentAt = now.Unix()
	return nil
}

// Back leaves the code step for the email step, or reports true to leave for /login
func (f *Recovery) Back() bool {
	f.reset()
	if f.State.Stage == RecoveryCodeStep {
		f.State.Stage = RecoveryEmailStep
		f.State.CodeSentAt = 0
		return false
	}
	return true
}

func (f *Recovery) Remaining(now time.Time) int {
	return Remaining(f.State.SentAt(), now, f.cooldown)
}

func (f *Recovery) Done() bool {
	return f.State.Stage == RecoveryDone
}
