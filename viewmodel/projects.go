package viewmodel

import (
	"context"

	"github.com/jrsteele09/captal-web/auth"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/projects"
	"github.com/jrsteele09/captal-web/token"
)

var (
	createMessages = Messages{Fallback: MsgCreateProject}
	updateMessages = Messages{Fallback: MsgUpdateProject}
	selectMessages = Messages{Fallback: MsgLoadProject}
)

// Projects is the project list page: filters, the create modal and the details panel
type Projects struct {
	Role     string
	All      []projects.Project
	Filtered []projects.Project
	Filter   projects.Filter
	Error    string

	CreateOpen        bool
	CreateForm        ProjectForm
	CreateFieldErrors map[string]string
	CreateError       string

	Selected    *projects.Project
	DetailsOpen bool

	repo projects.Repo
}

func NewProjects(repo projects.Repo, claims token.Claims) *Projects {
	return &Projects{
		Role:     claims.Role,
		All:      []projects.Project{},
		Filtered: []projects.Project{},
		Filter:   projects.Filter{Status: projects.StatusAll},
		repo:     repo,
	}
}

// IsAdmin reports whether the user may approve or reject projects
func (p *Projects) IsAdmin() bool {
	return p.Role == token.RoleAdmin
}

// CanReview is true for the projects that show Approve/Reject actions
func (p *Projects) CanReview(pr projects.Project) bool {
	return p.IsAdmin() && pr.Status == projects.StatusPending
}

// Load fetches the list when the role is known. Only a session expiry is
// returned; other failures set Error.
func (p *Projects) Load(ctx context.Context) error {
	if p.Role == "" {
		return nil
	}
	list, err := p.repo.List(ctx, projects.DefaultPage, projects.DefaultLimit)
	if err != nil {
		if isSessionExpired(err) {
			return err
		}
		p.Error = MsgLoadProjects
		p.All = []projects.Project{}
		p.refilter()
		return nil
	}
	p.Error = ""
	p.All = list
	p.refilter()
	return nil
}

func (p *Projects) SetFilter(f projects.Filter) {
	if f.Status == "" {
		f.Status = projects.StatusAll
	}
	p.Filter = f
	p.refilter()
}

func (p *Projects) refilter() {
	p.Filtered = p.Filter.Apply(p.All)
}

func (p *Projects) OpenCreate() {
	p.CreateOpen = true
	p.CreateError = ""
	p.CreateFieldErrors = nil
}

// Create validates the form and creates the project. On success the project is
// appended to the list and the modal closes; on failure the modal stays open.
func (p *Projects) Create(ctx context.Context, form ProjectForm) (*projects.Project, error) {
	p.CreateOpen = true
	p.CreateForm = form
	p.CreateError = ""
	p.CreateFieldErrors = nil

	in, err := form.NewProject()
	if err != nil {
		p.CreateFieldErrors = auth.FieldErrors(err)
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "[viewmodel Create] %v", err)
	}

	created, err := p.repo.Create(ctx, in)
	if err != nil {
		if isSessionExpired(err) {
			return nil, err
		}
		p.CreateError = MessageFor(err, createMessages)
		return nil, err
	}

	p.All = append(p.All, *created)
	p.refilter()
	p.CreateOpen = false
	p.CreateForm = ProjectForm{}
	return created, nil
}

// UpdateStatus approves or rejects a project and replaces it in the list
func (p *Projects) UpdateStatus(ctx context.Context, id string, status projects.Status) (*projects.Project, error) {
	if !p.IsAdmin() {
		p.Error = MsgNotAllowed
		return nil, apperrors.Wrapf(apperrors.ErrNotAuthorized, "[viewmodel UpdateStatus] role %q", p.Role)
	}

	updated, err := p.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if !isSessionExpired(err) {
			p.Error = MessageFor(err, updateMessages)
		}
		return nil, err
	}

	for i := range p.All {
		if p.All[i].ID == id {
			p.All[i] = *updated
		}
	}
	p.refilter()
	return updated, nil
}

// Select loads one project for the details panel
func (p *Projects) Select(ctx context.Context, id string) error {
	pr, err := p.repo.Get(ctx, id)
	if err != nil {
		if isSessionExpired(err) {
			return err
		}
		p.Error = MessageFor(err, selectMessages)
		p.Selected = nil
		p.DetailsOpen = false
		return nil
	}
	p.Selected = pr
	p.DetailsOpen = true
	return nil
}

func (p *Projects) CloseDetails() {
	p.Selected = nil
	p.DetailsOpen = false
}
