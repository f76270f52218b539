package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/captal-web/flow"
	"github.com/jrsteele09/captal-web/internal/config"
	"github.com/jrsteele09/captal-web/projects"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/token"
	"github.com/jrsteele09/captal-web/viewmodel"
	"github.com/rs/zerolog/log"
)

// AuthService is every auth operation the pages call
type AuthService interface {
	viewmodel.SignInService
	flow.SignUpService
	flow.RecoveryService
}

// Deps are the collaborators the server renders pages with
type Deps struct {
	Auth     AuthService
	Projects projects.Repo
	About    viewmodel.AboutService
	Decoder  token.Decoder
	Sessions *session.Manager
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	auth     AuthService
	projects projects.Repo
	about    viewmodel.AboutService
	decoder  token.Decoder
	sessions *session.Manager
	pages    map[string]*template.Template
	assets   map[string]asset

	codeCooldown      time.Duration
	countdownInterval time.Duration
}

func New(config config.Config, deps Deps) (*Server, error) {
	if deps.Auth == nil || deps.Projects == nil || deps.About == nil {
		return nil, fmt.Errorf("[Server New] auth, projects and about services are required")
	}
	if deps.Decoder == nil {
		deps.Decoder = token.UnverifiedDecoder{}
	}
	if deps.Sessions == nil {
		deps.Sessions = session.NewManager()
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}
	assets, err := loadAssets()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load static files: %w", err)
	}

	s := &Server{
		env:          config.GetEnv(),
		mux:          http.NewServeMux(),
		config:       config,
		auth:         deps.Auth,
		projects:     deps.Projects,
		about:        deps.About,
		decoder:      deps.Decoder,
		sessions:     deps.Sessions,
		pages:        pages,
		assets:       assets,
		codeCooldown: config.GetCodeResendCooldown(),

		countdownInterval: time.Second,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
