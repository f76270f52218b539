package projects

import "context"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Repo interface {
	List(ctx context.Context, page, limit int) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, p NewProject) (*Project, error)
	Update(ctx context.Context, id string, changes Changes) (*Project, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*ServerStats, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Project, error)
	UpdateProgress(ctx context.Context, id string, progress int) (*Project, error)
}
