package server

import (
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/session"
	"github.com/jrsteele09/captal-web/viewmodel"
)

const (
	queryError  = "error"
	queryNotice = "notice"
)

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, withQuery(path, queryError, errorMsg))
}

// redirectWithNotice redirects with a confirmation shown on the next page
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	redirectSuccess(w, r, withQuery(path, queryNotice, notice))
}

func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// sessionExpired handles the failure of a refresh: the transport has already
// cleared the cookies, so the user is sent to sign in again. It reports whether
// err was a session expiry.
func sessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apperrors.Is(err, apperrors.ErrSessionExpired) {
		return false
	}
	if sess, ok := session.FromContext(r.Context()); ok && !sess.LoginRequired() {
		sess.ClearAll()
	}
	requestLogger(r).Info().Err(err).Msg("session expired, redirecting to login")
	redirectWithError(w, r, RouteLogin, viewmodel.MsgSessionExpired)
	return true
}
