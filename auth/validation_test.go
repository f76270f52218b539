package auth_test

import (
	"testing"

	"github.com/jrsteele09/captal-web/auth"
	"github.com/stretchr/testify/require"
)

func TestLoginForm_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, auth.LoginForm{Email: "ana@captal.com", Password: "12345678"}.Validate())
	})

	t.Run("invalid email and short password", func(t *testing.T) {
		errs := auth.FieldErrors(auth.LoginForm{Email: "ana", Password: "123"}.Validate())
		require.Equal(t, map[string]string{
			"email":    auth.MsgInvalidEmail,
			"password": auth.MsgLoginPasswordMin,
		}, errs)
	})

	t.Run("empty", func(t *testing.T) {
		errs := auth.FieldErrors(auth.LoginForm{}.Validate())
		require.Equal(t, auth.MsgInvalidEmail, errs["email"])
		require.Equal(t, auth.MsgLoginPasswordMin, errs["password"])
	})
}

func TestSignUpIdentityForm_Validate(t *testing.T) {
	errs := auth.FieldErrors(auth.SignUpIdentityForm{Name: "   ", Email: "ana@captal.com"}.Validate())
	require.Equal(t, map[string]string{"name": auth.MsgNameRequired}, errs)

	require.NoError(t, auth.SignUpIdentityForm{Name: "Ana Souza", Email: "ana@captal.com"}.Validate())
}

func TestPasswordForm_Validate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"too short", "Ab1!", auth.MsgPasswordMin},
		{"empty", "", auth.MsgPasswordMin},
		{"no lowercase", "ABCDEFG1!", auth.MsgPasswordLowercase},
		{"no uppercase", "abcdefg1!", auth.MsgPasswordUppercase},
		{"no number", "Abcdefgh!", auth.MsgPasswordNumber},
		{"no special", "Abcdefg12", auth.MsgPasswordSpecial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := auth.FieldErrors(auth.PasswordForm{Password: tt.password, ConfirmPassword: tt.password}.Validate())
			require.Equal(t, tt.want, errs["password"])
		})
	}

	t.Run("mismatch fails only the confirmation", func(t *testing.T) {
		errs := auth.FieldErrors(auth.PasswordForm{Password: "Abcdef1!", ConfirmPassword: "Abcdef1?"}.Validate())
		require.Equal(t, map[string]string{"confirmPassword": auth.MsgPasswordMismatch}, errs)
	})

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, auth.PasswordForm{Password: "Abcdef1!", ConfirmPassword: "Abcdef1!"}.Validate())
	})
}

func TestPasswordProblems(t *testing.T) {
	require.Empty(t, auth.PasswordProblems("Abcdef1!"))
	require.Equal(t, []string{
		auth.MsgPasswordMin,
		auth.MsgPasswordUppercase,
		auth.MsgPasswordNumber,
		auth.MsgPasswordSpecial,
	}, auth.PasswordProblems("abc"))
	require.Len(t, auth.PasswordProblems(""), 5)
}

func TestVerificationForm_Validate(t *testing.T) {
	require.NoError(t, auth.VerificationForm{Code: "123456"}.Validate())
	for _, code := range []string{"", "12345", "1234567"} {
		errs := auth.FieldErrors(auth.VerificationForm{Code: code}.Validate())
		require.Equal(t, auth.MsgCodeLength, errs["code"], code)
	}
}

func TestResetPasswordForm_Validate(t *testing.T) {
	errs := auth.FieldErrors(auth.ResetPasswordForm{NewPassword: "Abcdef1!", ConfirmPassword: "other"}.Validate())
	require.Equal(t, map[string]string{
		"code":            auth.MsgCodeRequired,
		"confirmPassword": auth.MsgPasswordMismatch,
	}, errs)

	require.NoError(t, auth.ResetPasswordForm{Code: "99", NewPassword: "Abcdef1!", ConfirmPassword: "Abcdef1!"}.Validate())
}

func TestForgotPasswordForm_Validate(t *testing.T) {
	require.NoError(t, auth.ForgotPasswordForm{Email: "ana@captal.com"}.Validate())
	errs := auth.FieldErrors(auth.ForgotPasswordForm{Email: "not-an-email"}.Validate())
	require.Equal(t, auth.MsgInvalidEmail, errs["email"])
}

func TestFieldErrors(t *testing.T) {
	require.Nil(t, auth.FieldErrors(nil))
	require.Equal(t, map[string]string{"form": "boom"}, auth.FieldErrors(errString("boom")))
}

type errString string

func (e errString) Error() string { return string(e) }
