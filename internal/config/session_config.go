package config

import "time"

type SessionConfig interface {
	GetTokenSafetyMargin() time.Duration
	GetCookieSecure() bool
	GetCookieSecret() string
	GetCodeResendCooldown() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetTokenSafetyMargin is subtracted from the server-declared token lifetime
func (Session) GetTokenSafetyMargin() time.Duration {
	return GetEnvDuration("TOKEN_SAFETY_MARGIN", 30*time.Minute)
}

func (Session) GetCookieSecure() bool {
	return GetEnvBool("COOKIE_SECURE", false)
}

// GetCookieSecret enables sealing of the auth cookies when non-empty
func (Session) GetCookieSecret() string {
	return GetEnv("COOKIE_SECRET", "")
}

func (Session) GetCodeResendCooldown() time.Duration {
	return GetEnvDuration("CODE_RESEND_COOLDOWN", 30*time.Second)
}
