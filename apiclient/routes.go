package apiclient

import "strings"

// REST endpoints of the Captal API
const (
	SignUpRoute             = "/auth/signup"
	SignInRoute             = "/auth/signin"
	RefreshTokenRoute       = "/auth/refresh-token"
	ConfirmSignUpRoute      = "/auth/confirm-signup"
	ForgotPasswordRoute     = "/auth/forgot-password"
	ResetPasswordRoute      = "/auth/reset-password"
	ResendVerificationRoute = "/auth/resend-verification"
	ValidateResetCodeRoute  = "/auth/validate-reset-code"

	ProjectsRoute     = "/projects"
	ProjectStatsRoute = "/projects/stats"
	AboutRoute        = "/about"
)

// PublicRoutes never carry an Authorization header and never trigger a refresh
var PublicRoutes = []string{
	SignInRoute,
	SignUpRoute,
	ForgotPasswordRoute,
	ResetPasswordRoute,
	ConfirmSignUpRoute,
	ResendVerificationRoute,
	ValidateResetCodeRoute,
}

// IsPublicRoute reports whether path ends in one of the public auth routes.
// Paths are matched by suffix so an API mounted under a prefix still matches.
func IsPublicRoute(path string) bool {
	path = strings.TrimSuffix(path, "/")
	for _, route := range PublicRoutes {
		if strings.HasSuffix(path, route) {
			return true
		}
	}
	return false
}

func IsRefreshRoute(path string) bool {
	return strings.HasSuffix(strings.TrimSuffix(path, "/"), RefreshTokenRoute)
}

// ProjectRoute returns /projects/{id}[/suffix...]
func ProjectRoute(id string, suffix ...string) string {
	route := ProjectsRoute + "/" + id
	for _, s := range suffix {
		route += "/" + s
	}
	return route
}
