package session

import (
	"net/http"
	"sync"
	"time"
)

var _ Store = (*CookieStore)(nil)

// CookieOptions control the attributes written on every cookie
type CookieOptions struct {
	Path   string
	Domain string
	Secure bool
}

type cookieWrite struct {
	value     string
	expiresAt time.Time
	cleared   bool
}

// CookieStore reads cookies from the incoming request and writes Set-Cookie headers
// on the response. Writes are remembered so later reads in the same request see them.
type CookieStore struct {
	r    *http.Request
	w    http.ResponseWriter
	opts CookieOptions

	mu      sync.Mutex
	written map[string]cookieWrite
}

// NewCookieStore binds a store to one request/response pair
func NewCookieStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStore {
	if opts.Path == "" {
		opts.Path = "/"
	}
	if isSecureRequest(r) {
		opts.Secure = true
	}
	return &CookieStore{
		r:       r,
		w:       w,
		opts:    opts,
		written: make(map[string]cookieWrite),
	}
}

func (c *CookieStore) Get(name string) (string, bool) {
	c.mu.Lock()
	write, ok := c.written[name]
	c.mu.Unlock()

	if ok {
		if write.cleared {
			return "", false
		}
		if !write.expiresAt.IsZero() && !NowTimeFunc().Before(write.expiresAt) {
			return "", false
		}
		return write.value, true
	}

	cookie, err := c.r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (c *CookieStore) Set(name, value string, expiresAt time.Time) {
	c.mu.Lock()
	c.written[name] = cookieWrite{value: value, expiresAt: expiresAt}
	c.mu.Unlock()

	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     c.opts.Path,
		Domain:   c.opts.Domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CookieStore) Clear(name string) {
	c.mu.Lock()
	c.written[name] = cookieWrite{cleared: true}
	c.mu.Unlock()

	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     c.opts.Path,
		Domain:   c.opts.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
