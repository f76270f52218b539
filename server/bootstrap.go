package server

import (
	"fmt"

	"github.com/jrsteele09/captal-web/about"
	"github.com/jrsteele09/captal-web/apiclient"
	"github.com/jrsteele09/captal-web/auth"
	"github.com/jrsteele09/captal-web/internal/config"
	"github.com/jrsteele09/captal-web/projects"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/token"
	"github.com/rs/zerolog/log"
)

// Bootstrap wires the API client, services and session manager from config and builds the server
func Bootstrap(c config.Config) (*Server, error) {
	client, err := apiclient.New(c.GetAPIBaseURL(), apiclient.WithTimeout(c.GetAPITimeout()))
	if err != nil {
		return nil, fmt.Errorf("[server Bootstrap] api client: %w", err)
	}
	authService := auth.NewService(client)
	client.SetRefresher(authService)

	sessions, err := newSessionManager(c)
	if err != nil {
		return nil, err
	}

	decoder := token.NewDecoder(c.GetOIDCIssuerURL(), c.GetOIDCClientID())
	if c.GetOIDCIssuerURL() != "" {
		log.Info().Str("issuer", c.GetOIDCIssuerURL()).Msg("id tokens are verified against the OIDC issuer")
	}

	return New(c, Deps{
		Auth:     authService,
		Projects: projects.NewAPIRepo(client),
		About:    about.NewService(client),
		Decoder:  decoder,
		Sessions: sessions,
	})
}

func newSessionManager(c config.Config) (*session.Manager, error) {
	opts := []session.Option{
		session.WithSafetyMargin(c.GetTokenSafetyMargin()),
		session.WithCookieOptions(session.CookieOptions{Path: "/", Secure: c.GetCookieSecure()}),
	}

	if secret := c.GetCookieSecret(); secret != "" {
		sealer, err := session.NewSealer(secret)
		if err != nil {
			return nil, fmt.Errorf("[server Bootstrap] cookie sealer: %w", err)
		}
		opts = append(opts, session.WithSealer(sealer))
	} else if c.GetEnv() != "DEV" {
		log.Warn().Msg("COOKIE_SECRET is not set, auth cookies are stored unsealed")
	}

	return session.NewManager(opts...), nil
}
