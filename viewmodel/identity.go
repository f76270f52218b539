// Package viewmodel prepares what each page shows: it calls the services,
// folds their results and turns failures into user-facing messages.
package viewmodel

import (
	"context"

	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/token"
)

// Identity returns the signed-in user's claims, the fallback identity when the
// id token is missing or unreadable.
func Identity(ctx context.Context, decoder token.Decoder, sess *session.Session) token.Claims {
	if sess == nil {
		return token.Fallback()
	}
	return token.ClaimsOrDefault(ctx, decoder, sess.IDToken())
}
