// Package auth wraps the authentication endpoints of the Captal API and holds
// the validation rules of the authentication forms.
package auth

import (
	"context"

	"github.com/jrsteele09/captal-web/apiclient"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/session"
)

// DefaultRefreshLifetime is assumed when a refresh response does not declare expiresIn
const DefaultRefreshLifetime = 3600

// APIClient is the subset of apiclient.Client the service needs
type APIClient interface {
	Post(ctx context.Context, route string, body, out any) error
}

var _ apiclient.Refresher = (*Service)(nil)

// Service issues one API call per operation. Failures are returned as produced by
// the client, usually *apiclient.APIError.
type Service struct {
	api APIClient
}

func NewService(api APIClient) *Service {
	return &Service{api: api}
}

func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (SignUpResponse, error) {
	var resp SignUpResponse
	if err := s.api.Post(ctx, apiclient.SignUpRoute, req, &resp); err != nil {
		return SignUpResponse{}, apperrors.Wrapf(err, "[auth SignUp]")
	}
	return resp, nil
}

func (s *Service) SignIn(ctx context.Context, req SignInRequest) (SignInResult, error) {
	var resp signInResponse
	if err := s.api.Post(ctx, apiclient.SignInRoute, req, &resp); err != nil {
		return SignInResult{}, apperrors.Wrapf(err, "[auth SignIn]")
	}
	if resp.Data.Tokens.AccessToken == "" {
		return SignInResult{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[auth SignIn] response carried no access token")
	}
	return resp.Data, nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (Tokens, error) {
	var resp Tokens
	if err := s.api.Post(ctx, apiclient.RefreshTokenRoute, refreshTokenRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return Tokens{}, apperrors.Wrapf(err, "[auth RefreshToken]")
	}
	if resp.AccessToken == "" {
		return Tokens{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "[auth RefreshToken] response carried no access token")
	}
	if resp.ExpiresIn <= 0 {
		resp.ExpiresIn = DefaultRefreshLifetime
	}
	return resp, nil
}

// Refresh satisfies apiclient.Refresher
func (s *Service) Refresh(ctx context.Context, refreshToken string) (session.AuthTokens, error) {
	tokens, err := s.RefreshToken(ctx, refreshToken)
	if err != nil {
		return session.AuthTokens{}, err
	}
	return tokens.AuthTokens(), nil
}

func (s *Service) ConfirmSignUp(ctx context.Context, email, code string) error {
	return apperrors.Wrapf(s.api.Post(ctx, apiclient.ConfirmSignUpRoute, ConfirmSignUpRequest{Email: email, Code: code}, nil), "[auth ConfirmSignUp]")
}

func (s *Service) ForgotPassword(ctx context.Context, email string) (MessageResponse, error) {
	var resp MessageResponse
	if err := s.api.Post(ctx, apiclient.ForgotPasswordRoute, EmailRequest{Email: email}, &resp); err != nil {
		return MessageResponse{}, apperrors.Wrapf(err, "[auth ForgotPassword]")
	}
	return resp, nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (MessageResponse, error) {
	var resp MessageResponse
	if err := s.api.Post(ctx, apiclient.ResetPasswordRoute, req, &resp); err != nil {
		return MessageResponse{}, apperrors.Wrapf(err, "[auth ResetPassword]")
	}
	return resp, nil
}

func (s *Service) ResendVerification(ctx context.Context, email string) (MessageResponse, error) {
	var resp MessageResponse
	if err := s.api.Post(ctx, apiclient.ResendVerificationRoute, EmailRequest{Email: email}, &resp); err != nil {
		return MessageResponse{}, apperrors.Wrapf(err, "[auth ResendVerification]")
	}
	return resp, nil
}

// ValidateResetCode asks the API whether a recovery code is still valid. No page
// calls it; the recovery form submits the code with the new password instead.
func (s *Service) ValidateResetCode(ctx context.Context, email, code string) (bool, error) {
	var resp validateResetCodeResponse
	if err := s.api.Post(ctx, apiclient.ValidateResetCodeRoute, ConfirmSignUpRequest{Email: email, Code: code}, &resp); err != nil {
		return false, apperrors.Wrapf(err, "[auth ValidateResetCode]")
	}
	return resp.IsValid, nil
}
