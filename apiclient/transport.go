package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// Refresher exchanges a refresh token for a new token set
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (session.AuthTokens, error)
}

var _ http.RoundTripper = (*Transport)(nil)

// Transport attaches the session's bearer token to outgoing API requests and
// recovers from expired credentials with a single refresh.
//
// The session is taken from the request context (session.NewContext). Requests
// without a session are forwarded untouched.
type Transport struct {
	Base http.RoundTripper

	mu        sync.RWMutex
	refresher Refresher
	group     singleflight.Group
}

func NewTransport(base http.RoundTripper, refresher Refresher) *Transport {
	return &Transport{Base: base, refresher: refresher}
}

// SetRefresher sets the refresher after construction. The auth service that
// performs refreshes is itself built on a client using this transport.
func (t *Transport) SetRefresher(r Refresher) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refresher = r
}

func (t *Transport) getRefresher() Refresher {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.refresher
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	path := req.URL.Path

	if IsRefreshRoute(path) {
		return t.base().RoundTrip(req)
	}

	if IsPublicRoute(path) {
		if req.Header.Get("Authorization") != "" {
			req = req.Clone(req.Context())
			req.Header.Del("Authorization")
		}
		return t.base().RoundTrip(req)
	}

	sess, ok := session.FromContext(req.Context())
	if !ok {
		return t.base().RoundTrip(req)
	}

	outgoing := req
	if sess.IsAuthenticated() {
		tok := sess.Token()
		if sess.IsExpired() {
			refreshed, err := t.refresh(req.Context(), sess)
			if err != nil {
				return nil, err
			}
			tok = refreshed
		}
		outgoing = authorize(req, tok)
	}

	resp, err := t.base().RoundTrip(outgoing)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	return t.retryUnauthorized(req, resp, sess)
}

// retryUnauthorized refreshes once and replays req. The replay's response is
// returned whatever its status.
func (t *Transport) retryUnauthorized(req *http.Request, unauthorized *http.Response, sess *session.Session) (*http.Response, error) {
	replay, err := rewind(req)
	if err != nil {
		log.Warn().Err(err).Str("path", req.URL.Path).Msg("api request cannot be replayed after 401")
		return unauthorized, nil
	}

	drain(unauthorized)

	tok, err := t.refresh(req.Context(), sess)
	if err != nil {
		return nil, err
	}

	return t.base().RoundTrip(authorize(replay, tok))
}

// refresh obtains new tokens and writes them to the session. Concurrent calls for
// the same refresh token share one request to the API; it runs detached from the
// caller's cancellation so one abandoned request does not fail the others.
func (t *Transport) refresh(ctx context.Context, sess *session.Session) (*oauth2.Token, error) {
	refreshToken := sess.RefreshToken()
	if refreshToken == "" {
		t.expire(sess)
		return nil, fmt.Errorf("[apiclient refresh] %w: %w", apperrors.ErrSessionExpired, apperrors.ErrNoRefreshToken)
	}

	refresher := t.getRefresher()
	if refresher == nil {
		t.expire(sess)
		return nil, fmt.Errorf("[apiclient refresh] %w: no refresher configured", apperrors.ErrSessionExpired)
	}

	v, err, shared := t.group.Do(refreshToken, func() (interface{}, error) {
		return refresher.Refresh(context.WithoutCancel(ctx), refreshToken)
	})
	if err != nil {
		log.Warn().Err(err).Msg("token refresh failed")
		t.expire(sess)
		return nil, fmt.Errorf("[apiclient refresh] %w: %w", apperrors.ErrSessionExpired, err)
	}

	tokens := v.(session.AuthTokens)
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}
	expiresAt := sess.SetAuthCookies(tokens)
	log.Debug().Bool("shared", shared).Msg("token refreshed")
	// a lifetime inside the safety margin leaves the cookies already expired,
	// so the request is authorized from the refresh response itself
	return tokens.OAuth2Token(expiresAt), nil
}

func (t *Transport) expire(sess *session.Session) {
	sess.ClearAll()
	sess.MarkLoginRequired()
}

func authorize(req *http.Request, tok *oauth2.Token) *http.Request {
	out := req.Clone(req.Context())
	if tok != nil {
		tok.SetAuthHeader(out)
	}
	return out
}

// rewind returns a copy of req with a fresh body
func rewind(req *http.Request) (*http.Request, error) {
	out := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return out, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("[apiclient rewind] %w: request body is not rewindable", apperrors.ErrInternal)
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("[apiclient rewind] %w", err)
	}
	out.Body = body
	return out, nil
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	_ = resp.Body.Close()
}
