package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Pages
	RouteHome     = "/"
	RouteProjects = "/projects"
	RouteAbout    = "/about"

	// Project actions
	RouteProjectStatus  = "/projects/{id}/status"
	RouteProjectDetails = "/projects/{id}"

	// Auth Routes - Login & Logout
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// Auth Routes - Signup
	RouteSignUp       = "/sign-up"
	RouteSignUpBack   = "/sign-up/back"
	RouteSignUpVerify = "/sign-up/verify"
	RouteSignUpResend = "/sign-up/resend"

	// Auth Routes - Password Recovery
	RouteForgotPassword       = "/forgot-password"
	RouteForgotPasswordReset  = "/forgot-password/reset"
	RouteForgotPasswordResend = "/forgot-password/resend"
	RouteForgotPasswordBack   = "/forgot-password/back"

	// API Routes
	RouteAPIValidatePassword = "/api/validate-password"
	RouteAPICodeCountdown    = "/api/code-countdown"
	RouteAPIProjectStats     = "/api/projects/stats"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)

