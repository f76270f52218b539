// Package session keeps the authentication tokens in the user's cookie jar and
// answers questions about them (is the user signed in, has the token expired).
package session

import (
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2"
)

// Cookie names managed by the session
const (
	AccessTokenCookie    = "accessToken"
	IDTokenCookie        = "idToken"
	RefreshTokenCookie   = "refreshToken"
	TokenTypeCookie      = "tokenType"
	TokenExpiresInCookie = "tokenExpiresIn"

	DefaultSafetyMargin = 30 * time.Minute
	defaultTokenType    = "Bearer"
)

// ManagedCookies lists every cookie ClearAll removes
var ManagedCookies = []string{
	AccessTokenCookie,
	IDTokenCookie,
	RefreshTokenCookie,
	TokenTypeCookie,
	TokenExpiresInCookie,
}

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// AuthTokens is the token set issued by the authentication backend
type AuthTokens struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	TokenType    string
	ExpiresIn    int // server-declared lifetime in seconds
}

// Manager is created once per application and builds a Session for each request.
type Manager struct {
	safetyMargin time.Duration
	sealer       *Sealer
	cookieOpts   CookieOptions
}

type Option func(*Manager)

// WithSafetyMargin sets how long before the server-declared expiry a token is treated as expired
func WithSafetyMargin(d time.Duration) Option {
	return func(m *Manager) { m.safetyMargin = d }
}

// WithSealer encrypts every value the session writes
func WithSealer(s *Sealer) Option {
	return func(m *Manager) { m.sealer = s }
}

func WithCookieOptions(opts CookieOptions) Option {
	return func(m *Manager) { m.cookieOpts = opts }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{safetyMargin: DefaultSafetyMargin}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CookieOptions returns the attributes used for cookie-backed stores
func (m *Manager) CookieOptions() CookieOptions {
	return m.cookieOpts
}

// Wrap applies the manager's sealing, if any, to store
func (m *Manager) Wrap(store Store) Store {
	if m.sealer == nil {
		return store
	}
	return NewSealedStore(store, m.sealer)
}

// Load hydrates a session from store
func (m *Manager) Load(store Store) *Session {
	return &Session{
		store:        m.Wrap(store),
		safetyMargin: m.safetyMargin,
	}
}

// Session is the request-scoped view of the auth cookies.
// The store is the source of truth; the session holds no token state of its own.
type Session struct {
	store         Store
	safetyMargin  time.Duration
	loginRequired atomic.Bool
}

func (s *Session) Get(name string) (string, bool) {
	return s.store.Get(name)
}

func (s *Session) Set(name, value string, expiresAt time.Time) {
	s.store.Set(name, value, expiresAt)
}

func (s *Session) Clear(name string) {
	s.store.Clear(name)
}

// ClearAll removes every managed auth cookie
func (s *Session) ClearAll() {
	for _, name := range ManagedCookies {
		s.store.Clear(name)
	}
}

// SetAuthCookies writes the token set with one shared expiry of
// now + (ExpiresIn - safety margin), also recorded in the tokenExpiresIn cookie.
func (s *Session) SetAuthCookies(tokens AuthTokens) time.Time {
	epoch := NowTimeFunc().Unix() + int64(tokens.ExpiresIn) - int64(s.safetyMargin/time.Second)
	expiresAt := time.Unix(epoch, 0)

	tokenType := tokens.TokenType
	if tokenType == "" {
		tokenType = defaultTokenType
	}

	s.store.Set(AccessTokenCookie, tokens.AccessToken, expiresAt)
	s.store.Set(IDTokenCookie, tokens.IDToken, expiresAt)
	s.store.Set(RefreshTokenCookie, tokens.RefreshToken, expiresAt)
	s.store.Set(TokenTypeCookie, tokenType, expiresAt)
	s.store.Set(TokenExpiresInCookie, strconv.FormatInt(epoch, 10), expiresAt)
	s.loginRequired.Store(false)
	return expiresAt
}

// ExpiresAt returns the stored expiry, false when absent or unreadable
func (s *Session) ExpiresAt() (time.Time, bool) {
	raw, ok := s.store.Get(TokenExpiresInCookie)
	if !ok {
		return time.Time{}, false
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(epoch, 0), true
}

// IsExpired is true when no expiry is stored or the current time has reached it
func (s *Session) IsExpired() bool {
	expiresAt, ok := s.ExpiresAt()
	if !ok {
		return true
	}
	return NowTimeFunc().Unix() >= expiresAt.Unix()
}

// IsAuthenticated reports whether an access token is present
func (s *Session) IsAuthenticated() bool {
	_, ok := s.store.Get(AccessTokenCookie)
	return ok
}

func (s *Session) AccessToken() string {
	v, _ := s.store.Get(AccessTokenCookie)
	return v
}

func (s *Session) RefreshToken() string {
	v, _ := s.store.Get(RefreshTokenCookie)
	return v
}

func (s *Session) IDToken() string {
	v, _ := s.store.Get(IDTokenCookie)
	return v
}

func (s *Session) TokenType() string {
	if v, ok := s.store.Get(TokenTypeCookie); ok {
		return v
	}
	return defaultTokenType
}

// Token returns the stored credentials as an oauth2 token, nil when signed out
func (s *Session) Token() *oauth2.Token {
	access, ok := s.store.Get(AccessTokenCookie)
	if !ok {
		return nil
	}
	expiresAt, _ := s.ExpiresAt()
	return AuthTokens{
		AccessToken:  access,
		IDToken:      s.IDToken(),
		RefreshToken: s.RefreshToken(),
		TokenType:    s.TokenType(),
	}.OAuth2Token(expiresAt)
}

// OAuth2Token carries the token set as an oauth2 token expiring at expiresAt
func (t AuthTokens) OAuth2Token(expiresAt time.Time) *oauth2.Token {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = defaultTokenType
	}
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    tokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       expiresAt,
	}
	return tok.WithExtra(map[string]interface{}{"id_token": t.IDToken})
}

// MarkLoginRequired flags the session as unrecoverable; the next page render redirects to login
func (s *Session) MarkLoginRequired() {
	s.loginRequired.Store(true)
}

func (s *Session) LoginRequired() bool {
	return s.loginRequired.Load()
}
