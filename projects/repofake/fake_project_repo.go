package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/projects"
)

var _ projects.Repo = (*FakeProjectRepo)(nil)

// FakeProjectRepo keeps projects in memory. Setting Err makes every call fail with it.
type FakeProjectRepo struct {
	lock     sync.RWMutex
	projects map[string]projects.Project
	progress map[string]int
	order    []string

	Err error
}

func NewFakeProjectRepo(seed ...projects.Project) *FakeProjectRepo {
	r := &FakeProjectRepo{
		projects: make(map[string]projects.Project),
		progress: make(map[string]int),
	}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		r.projects[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (r *FakeProjectRepo) List(_ context.Context, page, limit int) ([]projects.Project, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	if page < 1 {
		page = projects.DefaultPage
	}
	if limit < 1 {
		limit = projects.DefaultLimit
	}
	start := (page - 1) * limit
	if start >= len(r.order) {
		return []projects.Project{}, nil
	}
	end := min(start+limit, len(r.order))

	out := make([]projects.Project, 0, end-start)
	for _, id := range r.order[start:end] {
		out = append(out, r.projects[id])
	}
	return out, nil
}

func (r *FakeProjectRepo) Get(_ context.Context, id string) (*projects.Project, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "project %s", id)
	}
	return &p, nil
}

func (r *FakeProjectRepo) Create(_ context.Context, in projects.NewProject) (*projects.Project, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	status := in.Status
	if status == "" {
		status = projects.StatusPending
	}
	p := projects.Project{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Description:     in.Description,
		Location:        in.Location,
		LandArea:        projects.Number(in.LandArea),
		EstimatedCost:   projects.Number(in.EstimatedCost),
		ExpectedRevenue: projects.Number(in.ExpectedRevenue),
		Status:          status,
		CreatedAt:       now(),
		UpdatedAt:       now(),
	}
	r.projects[p.ID] = p
	r.order = append(r.order, p.ID)
	return &p, nil
}

func (r *FakeProjectRepo) Update(_ context.Context, id string, c projects.Changes) (*projects.Project, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "project %s", id)
	}
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Location != nil {
		p.Location = *c.Location
	}
	if c.LandArea != nil {
		p.LandArea = projects.Number(*c.LandArea)
	}
	if c.EstimatedCost != nil {
		p.EstimatedCost = projects.Number(*c.EstimatedCost)
	}
	if c.ExpectedRevenue != nil {
		p.ExpectedRevenue = projects.Number(*c.ExpectedRevenue)
	}
	p.UpdatedAt = now()
	r.projects[id] = p
	return &p, nil
}

func (r *FakeProjectRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}

	if _, ok := r.projects[id]; !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "project %s", id)
	}
	delete(r.projects, id)
	delete(r.progress, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Stats treats approved projects as completed and pending ones as in progress
func (r *FakeProjectRepo) Stats(_ context.Context) (*projects.ServerStats, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	var s projects.ServerStats
	var progressSum int
	ids := make([]string, 0, len(r.projects))
	for id := range r.projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := r.projects[id]
		s.TotalProjects++
		s.TotalBudget += p.EstimatedCost
		switch p.Status {
		case projects.StatusApproved:
			s.CompletedProjects++
		case projects.StatusPending:
			s.InProgressProjects++
		}
		progressSum += r.progress[id]
	}
	if s.TotalProjects > 0 {
		s.AverageProgress = float64(progressSum) / float64(s.TotalProjects)
	}
	return &s, nil
}

func (r *FakeProjectRepo) UpdateStatus(_ context.Context, id string, status projects.Status) (*projects.Project, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	if !status.Valid() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "status %q", status)
	}
	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "project %s", id)
	}
	p.Status = status
	p.UpdatedAt = now()
	r.projects[id] = p
	return &p, nil
}

func (r *FakeProjectRepo) UpdateProgress(_ context.Context, id string, progress int) (*projects.Project, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	p, ok := r.projects[id]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "project %s", id)
	}
	r.progress[id] = progress
	return &p, nil
}
