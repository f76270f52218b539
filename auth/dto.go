package auth

import "github.com/jrsteele09/captal-web/session"

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	Message string `json:"message"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// Tokens is the token set returned by sign-in and refresh
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IDToken      string `json:"idToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// AuthTokens converts the API token set into the form stored in the session
func (t Tokens) AuthTokens() session.AuthTokens {
	return session.AuthTokens{
		AccessToken:  t.AccessToken,
		IDToken:      t.IDToken,
		RefreshToken: t.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    t.ExpiresIn,
	}
}

type SignInResult struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}

type signInResponse struct {
	Data SignInResult `json:"data"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ConfirmSignUpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type validateResetCodeResponse struct {
	IsValid bool `json:"isValid"`
}

// MessageResponse is the body of the recovery and verification endpoints
type MessageResponse struct {
	Message string `json:"message"`
}
