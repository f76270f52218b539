package viewmodel

import (
	"context"

	"github.com/jrsteele09/captal-web/about"
)

type AboutService interface {
	Info(ctx context.Context) (*about.Info, error)
}

type About struct {
	Info  *about.Info
	Error string
}

func LoadAbout(ctx context.Context, svc AboutService) (*About, error) {
	info, err := svc.Info(ctx)
	if err != nil {
		if isSessionExpired(err) {
			return nil, err
		}
		return &About{Error: MsgLoadAbout}, nil
	}
	return &About{Info: info}, nil
}
