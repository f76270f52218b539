package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/jrsteele09/captal-web/internal/format"
	"github.com/jrsteele09/captal-web/projects"
	"github.com/jrsteele09/captal-web/token"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	contentTypeHTML = "text/html; charset=utf-8"
	layoutTemplate  = "layout.html"
	partialTemplate = "partials.html"
)

// pageTemplates are rendered inside the layout
var pageTemplates = []string{
	"login.html",
	"signup.html",
	"forgot_password.html",
	"home.html",
	"projects.html",
	"about.html",
}

// fragmentTemplates are rendered alone, as HTMX swaps
var fragmentTemplates = []string{
	"password_checklist.html",
}

var templateFuncs = template.FuncMap{
	"currency":    format.Currency,
	"area":        format.Area,
	"date":        format.Date,
	"statusClass": format.StatusClass,
	"statuses":    func() []projects.Status { return projects.Statuses },
	"number":      func(n projects.Number) float64 { return n.Float() },
	"dict":        dict,
}

// dict builds a map from key/value pairs so a partial can take several arguments
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem, with the layout when layout is set
func ParseTemplate(name string, layout bool) (*template.Template, error) {
	files := []string{name}
	if layout {
		files = []string{layoutTemplate, partialTemplate, name}
	}
	return template.New(files[0]).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), files...)
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageTemplates)+len(fragmentTemplates))
	for _, name := range pageTemplates {
		tmpl, err := ParseTemplate(name, true)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	for _, name := range fragmentTemplates {
		tmpl, err := ParseTemplate(name, false)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// Page is the model every layout page is rendered with
type Page struct {
	AppName string
	Title   string
	User    *token.Claims
	Active  string
	Notice  string
	Error   string
	Data    any
}

// page starts a Page, picking up the notice and error carried by a redirect
func (s *Server) page(r *http.Request, title string, data any) Page {
	q := r.URL.Query()
	return Page{
		AppName: s.config.GetAppName(),
		Title:   title,
		Active:  r.URL.Path,
		Notice:  q.Get(queryNotice),
		Error:   q.Get(queryError),
		Data:    data,
	}
}

// render executes the named template into a buffer so a failure never leaves half a page
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		requestLogger(r).Error().Str("template", name).Msg("unknown template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		requestLogger(r).Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
