package server

import (
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() {
	public := s.HTMLMiddleWare(s.WithSession)
	guest := s.HTMLMiddleWare(s.WithSession, s.RedirectAuthenticated)
	protected := s.HTMLMiddleWare(s.WithSession, s.RequireSession)

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), guest...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), guest...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), public...))

	// SIGN UP
	s.RegisterRouteHandler("GET "+RouteSignUp, ChainMiddleware(s.SignUpGetHandler(), public...))
	s.RegisterRouteHandler("POST "+RouteSignUp, ChainMiddleware(s.SignUpPostHandler(), public...))
	s.RegisterRouteHandler("POST "+RouteSignUpBack, ChainMiddleware(s.SignUpBackHandler(), public...))
	s.RegisterRouteHandler("POST "+RouteSignUpVerify, ChainMiddleware(s.SignUpVerifyHandler(), public...))
	s.RegisterRouteHandler("POST "+RouteSignUpResend, ChainMiddleware(s.SignUpResendHandler(), public...))

	// PASSWORD RECOVERY
	s.RegisterRouteHandler("GET "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordGetHandler(), public...))
	s.RegisterRouteHandler("POST "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordPostHandler(), public...))
	s.RegisterRouteHandler("POST "+RouteForgotPasswordReset, ChainMiddleware(s.ResetPasswordPostHandler(), public...))
	s.RegisterRouteHandler("POST "+RouteForgotPasswordResend, ChainMiddleware(s.ForgotPasswordResendHandler(), public...))
	s.RegisterRouteHandler("POST "+RouteForgotPasswordBack, ChainMiddleware(s.ForgotPasswordBackHandler(), public...))

	// PAGES
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.HomeHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteProjects, ChainMiddleware(s.ProjectsHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteProjects, ChainMiddleware(s.CreateProjectHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteProjectDetails, ChainMiddleware(s.ProjectDetailsHandler(), protected...))
	s.RegisterRouteHandler("POST "+RouteProjectStatus, ChainMiddleware(s.ProjectStatusHandler(), protected...))
	s.RegisterRouteHandler("GET "+RouteAbout, ChainMiddleware(s.AboutHandler(), protected...))

	// API routes
	s.RegisterRouteHandler("POST "+RouteAPIValidatePassword, ChainMiddleware(s.ValidatePasswordHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAPICodeCountdown, ChainMiddleware(s.CodeCountdownHandler(), s.APIMiddleware(s.WithSession)...))
	s.RegisterRouteHandler("GET "+RouteAPIProjectStats, ChainMiddleware(s.ProjectStatsHandler(), s.APIMiddleware(s.WithSession, s.RequireAPISession)...))
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(http.NotFound, s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := s.assets[r.URL.Path]
		if !ok {
			logError(r.Method, r.URL.Path, fs.ErrNotExist)
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if err := a.serve(w, r); err != nil {
			logError(r.Method, r.URL.Path, err)
		}
	}
}

func logError(method, path string, err error) {
	log.Error().Err(err).Msgf("[%-19s] %s", colourMethod(method), Red+path+ResetColor)
}
