package projects

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jrsteele09/captal-web/apiclient"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
)

// APIClient is the subset of apiclient.Client the repository needs
type APIClient interface {
	Get(ctx context.Context, route string, query url.Values, out any) error
	Post(ctx context.Context, route string, body, out any) error
	Put(ctx context.Context, route string, body, out any) error
	Patch(ctx context.Context, route string, body, out any) error
	Delete(ctx context.Context, route string) error
}

var _ Repo = (*APIRepo)(nil)

// APIRepo reads and writes projects through the Captal API
type APIRepo struct {
	api APIClient
}

func NewAPIRepo(api APIClient) *APIRepo {
	return &APIRepo{api: api}
}

func (r *APIRepo) List(ctx context.Context, page, limit int) ([]Project, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}

	var resp apiclient.Envelope[[]Project]
	if err := r.api.Get(ctx, apiclient.ProjectsRoute, query, &resp); err != nil {
		return nil, apperrors.Wrapf(err, "[projects List]")
	}
	if resp.Data == nil {
		return []Project{}, nil
	}
	return resp.Data, nil
}

func (r *APIRepo) Get(ctx context.Context, id string) (*Project, error) {
	var resp apiclient.Envelope[Project]
	if err := r.api.Get(ctx, apiclient.ProjectRoute(url.PathEscape(id)), nil, &resp); err != nil {
		return nil, apperrors.Wrapf(err, "[projects Get] %s", id)
	}
	return &resp.Data, nil
}

func (r *APIRepo) Create(ctx context.Context, p NewProject) (*Project, error) {
	var resp apiclient.Envelope[Project]
	if err := r.api.Post(ctx, apiclient.ProjectsRoute, p, &resp); err != nil {
		return nil, apperrors.Wrapf(err, "[projects Create]")
	}
	return &resp.Data, nil
}

func (r *APIRepo) Update(ctx context.Context, id string, changes Changes) (*Project, error) {
	var resp apiclient.Envelope[Project]
	if err := r.api.Put(ctx, apiclient.ProjectRoute(url.PathEscape(id)), changes, &resp); err != nil {
		return nil, apperrors.Wrapf(err, "[projects Update] %s", id)
	}
	return &resp.Data, nil
}

func (r *APIRepo) Delete(ctx context.Context, id string) error {
	return apperrors.Wrapf(r.api.Delete(ctx, apiclient.ProjectRoute(url.PathEscape(id))), "[projects Delete] %s", id)
}

func (r *APIRepo) Stats(ctx context.Context) (*ServerStats, error) {
	var resp apiclient.Envelope[ServerStats]
	if err := r.api.Get(ctx, apiclient.ProjectStatsRoute, nil, &resp); err != nil {
		return nil, apperrors.Wrapf(err, "[projects Stats]")
	}
	return &resp.Data, nil
}

func (r *APIRepo) UpdateStatus(ctx context.Context, id string, status Status) (*Project, error) {
	if !status.Valid() {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "[projects UpdateStatus] status %q", status)
	}
	var resp apiclient.Envelope[Project]
	body := map[string]Status{"status": status}
	if err := r.api.Patch(ctx, apiclient.ProjectRoute(url.PathEscape(id), "status"), body, &resp); err != nil {
		return nil, apperrors.Wrapf(err, "[projects UpdateStatus] %s", id)
	}
	return &resp.Data, nil
}

func (r *APIRepo) UpdateProgress(ctx context.Context, id string, progress int) (*Project, error) {
	if progress < 0 || progress > 100 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "[projects UpdateProgress] progress %d", progress)
	}
	var resp apiclient.Envelope[Project]
	body := map[string]int{"progress": progress}
	if err := r.api.Patch(ctx, apiclient.ProjectRoute(url.PathEscape(id), "progress"), body, &resp); err != nil {
		return nil, apperrors.Wrapf(err, "[projects UpdateProgress] %s", id)
	}
	return &resp.Data, nil
}
