package viewmodel

import (
	"context"

	"github.com/jrsteele09/captal-web/projects"
	"github.com/jrsteele09/captal-web/token"
)

// Home is the dashboard: a greeting and statistics over the user's projects
type Home struct {
	UserName string
	Role     string
	Projects []projects.Project
	Stats    projects.Stats
	Error    string
	Loaded   bool
}

// LoadHome fetches the first page of projects once the user's role is known
func LoadHome(ctx context.Context, repo projects.Repo, claims token.Claims) (*Home, error) {
	h := &Home{UserName: claims.Name, Role: claims.Role, Projects: []projects.Project{}}
	if !claims.HasRole() {
		return h, nil
	}

	list, err := repo.List(ctx, projects.DefaultPage, projects.DefaultLimit)
	if err != nil {
		if isSessionExpired(err) {
			return nil, err
		}
		h.Error = MsgLoadProjects
		return h, nil
	}

	h.Projects = list
	h.Stats = projects.Fold(list)
	h.Loaded = true
	return h, nil
}
