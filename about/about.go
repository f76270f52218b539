// Package about fetches the application information shown on the about page.
package about

import (
	"context"
	"net/url"

	"github.com/jrsteele09/captal-web/apiclient"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
)

// Info is the body of GET /about. Unknown fields are ignored.
type Info struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Environment string `json:"environment"`
}

type APIClient interface {
	Get(ctx context.Context, route string, query url.Values, out any) error
}

type Service struct {
	api APIClient
}

func NewService(api APIClient) *Service {
	return &Service{api: api}
}

func (s *Service) Info(ctx context.Context) (*Info, error) {
	var info Info
	if err := s.api.Get(ctx, apiclient.AboutRoute, nil, &info); err != nil {
		return nil, apperrors.Wrapf(err, "[about Info]")
	}
	return &info, nil
}
