package server

import (
	"net/http"
	"net/url"

	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/projects"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/token"
	"github.com/jrsteele09/captal-web/viewmodel"
)

// identity decodes the signed-in user from the id token cookie
func (s *Server) identity(r *http.Request) token.Claims {
	sess, _ := session.FromContext(r.Context())
	return viewmodel.Identity(r.Context(), s.decoder, sess)
}

// userPage is a layout page for a signed-in user
func (s *Server) userPage(r *http.Request, title string, claims token.Claims, data any) Page {
	page := s.page(r, title, data)
	page.User = &claims
	return page
}

// HomeHandler renders the dashboard (GET /)
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := s.identity(r)
		home, err := viewmodel.LoadHome(r.Context(), s.projects, claims)
		if sessionExpired(w, r, err) {
			return
		}
		page := s.userPage(r, "Dashboard", claims, home)
		if home.Error != "" {
			page.Error = home.Error
		}
		s.render(w, r, "home.html", http.StatusOK, page)
	}
}

func filterFromQuery(q url.Values) projects.Filter {
	return projects.Filter{Search: q.Get("search"), Status: q.Get("status")}
}

// filterQuery keeps the list filter across a redirect
func filterQuery(f projects.Filter) string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" && f.Status != projects.StatusAll {
		q.Set("status", f.Status)
	}
	if len(q) == 0 {
		return RouteProjects
	}
	return RouteProjects + "?" + q.Encode()
}

// loadProjects builds the list view-model for the request. It reports false
// when the session expired and the response has been written.
func (s *Server) loadProjects(w http.ResponseWriter, r *http.Request, filter projects.Filter) (*viewmodel.Projects, token.Claims, bool) {
	claims := s.identity(r)
	vm := viewmodel.NewProjects(s.projects, claims)
	if sessionExpired(w, r, vm.Load(r.Context())) {
		return nil, claims, false
	}
	vm.SetFilter(filter)
	return vm, claims, true
}

func (s *Server) renderProjects(w http.ResponseWriter, r *http.Request, vm *viewmodel.Projects, claims token.Claims, status int) {
	page := s.userPage(r, "Projetos", claims, vm)
	if vm.Error != "" {
		page.Error = vm.Error
	}
	s.render(w, r, "projects.html", status, page)
}

// ProjectsHandler renders the filtered project list (GET /projects)
func (s *Server) ProjectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm, claims, ok := s.loadProjects(w, r, filterFromQuery(r.URL.Query()))
		if !ok {
			return
		}
		if r.URL.Query().Get("create") == "1" {
			vm.OpenCreate()
		}
		s.renderProjects(w, r, vm, claims, http.StatusOK)
	}
}

// ProjectDetailsHandler renders the list with one project's details open (GET /projects/{id})
func (s *Server) ProjectDetailsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm, claims, ok := s.loadProjects(w, r, filterFromQuery(r.URL.Query()))
		if !ok {
			return
		}
		if sessionExpired(w, r, vm.Select(r.Context(), r.PathValue("id"))) {
			return
		}
		status := http.StatusOK
		if !vm.DetailsOpen {
			status = http.StatusNotFound
		}
		s.renderProjects(w, r, vm, claims, status)
	}
}

// CreateProjectHandler creates a project from the modal form (POST /projects)
func (s *Server) CreateProjectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		vm, claims, ok := s.loadProjects(w, r, filterFromQuery(r.URL.Query()))
		if !ok {
			return
		}

		created, err := vm.Create(r.Context(), viewmodel.ProjectForm{
			Name:            r.FormValue("name"),
			Description:     r.FormValue("description"),
			Location:        r.FormValue("location"),
			LandArea:        r.FormValue("landArea"),
			EstimatedCost:   r.FormValue("estimatedCost"),
			ExpectedRevenue: r.FormValue("expectedRevenue"),
		})
		if sessionExpired(w, r, err) {
			return
		}
		if err != nil {
			status := http.StatusBadGateway
			if apperrors.Is(err, apperrors.ErrInvalidInput) {
				status = http.StatusUnprocessableEntity
			}
			s.renderProjects(w, r, vm, claims, status)
			return
		}

		requestLogger(r).Info().Str("project_id", created.ID).Msg("project created")
		redirectWithNotice(w, r, RouteProjects, viewmodel.MsgProjectCreatedOK)
	}
}

// ProjectStatusHandler approves or rejects a project (POST /projects/{id}/status)
func (s *Server) ProjectStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		filter := projects.Filter{Search: r.FormValue("search"), Status: r.FormValue("filterStatus")}
		vm, claims, ok := s.loadProjects(w, r, filter)
		if !ok {
			return
		}

		status, err := projects.ParseStatus(r.FormValue("status"))
		if err != nil {
			vm.Error = viewmodel.MsgUpdateProject
			s.renderProjects(w, r, vm, claims, http.StatusBadRequest)
			return
		}

		id := r.PathValue("id")
		_, err = vm.UpdateStatus(r.Context(), id, status)
		if sessionExpired(w, r, err) {
			return
		}
		switch {
		case apperrors.Is(err, apperrors.ErrNotAuthorized):
			s.renderProjects(w, r, vm, claims, http.StatusForbidden)
			return
		case err != nil:
			s.renderProjects(w, r, vm, claims, http.StatusBadGateway)
			return
		}

		requestLogger(r).Info().Str("project_id", id).Str("status", string(status)).Msg("project status updated")
		redirectSuccess(w, r, withQuery(filterQuery(vm.Filter), queryNotice, viewmodel.MsgProjectUpdatedOK))
	}
}

// AboutHandler renders the API information page (GET /about)
func (s *Server) AboutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := s.identity(r)
		vm, err := viewmodel.LoadAbout(r.Context(), s.about)
		if sessionExpired(w, r, err) {
			return
		}
		page := s.userPage(r, "Sobre", claims, vm)
		if vm.Error != "" {
			page.Error = vm.Error
		}
		s.render(w, r, "about.html", http.StatusOK, page)
	}
}
